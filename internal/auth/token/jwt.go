// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

// Package token implements the session codec as a signed stateless JWT.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/accountd/accountd/internal/auth"
)

// Key configuration.
const (
	// MinKeyLen is the minimum HMAC key length in bytes.
	MinKeyLen = 32

	// keyID names the current signing key in the token header so a future
	// rotation can dispatch on it without breaking outstanding sessions.
	keyID = "v1"
)

// DefaultSessionTTL bounds how long an issued token stays valid. Sign-out
// only clears the client-held cookie, so the exp claim is the only thing
// that ever invalidates a captured token.
const DefaultSessionTTL = 24 * time.Hour

// Codec signs and verifies session identities as HS256 JWTs.
type Codec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// claims is the wire shape of a session token payload. The account id
// travels in the registered subject claim.
type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the time source used for the iat and exp claims on
// Encode and for the expiry check on Decode.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec creates a Codec signing with the given key. The key is
// process-wide configuration: it must be stable across restarts wherever
// existing sessions have to survive a deploy.
func NewCodec(key []byte, ttl time.Duration, opts ...Option) (*Codec, error) {
	if len(key) < MinKeyLen {
		return nil, oops.Code("SESSION_KEY_TOO_SHORT").
			With("min_bytes", MinKeyLen).
			Errorf("session signing key must be at least %d bytes", MinKeyLen)
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	c := &Codec{
		key: key,
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Encode signs the identity into a compact JWT.
func (c *Codec) Encode(identity auth.SessionIdentity) (string, error) {
	now := c.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.AccountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	t.Header["kid"] = keyID

	signed, err := t.SignedString(c.key)
	if err != nil {
		return "", oops.Code("SESSION_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}

// Decode verifies the token and reconstructs the identity. Every failure
// mode - bad signature, tampered payload, expired, wrong algorithm, garbage
// subject - collapses into the same CodeSessionInvalid error.
func (c *Codec) Decode(tokenString string) (auth.SessionIdentity, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&parsed,
		func(*jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return auth.SessionIdentity{}, oops.Code(auth.CodeSessionInvalid).
			Errorf("invalid session token")
	}

	// Expiry is checked against the codec's own clock rather than the
	// parser's package-level time source. A token without an exp claim
	// never expires, so it is rejected outright.
	if parsed.ExpiresAt == nil || !c.now().Before(parsed.ExpiresAt.Time) {
		return auth.SessionIdentity{}, oops.Code(auth.CodeSessionInvalid).
			Errorf("invalid session token")
	}

	accountID, err := ulid.Parse(parsed.Subject)
	if err != nil {
		return auth.SessionIdentity{}, oops.Code(auth.CodeSessionInvalid).
			Errorf("invalid session token")
	}

	return auth.SessionIdentity{
		AccountID: accountID,
		Email:     parsed.Email,
	}, nil
}

// Compile-time interface check.
var _ auth.SessionCodec = (*Codec)(nil)
