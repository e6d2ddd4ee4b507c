// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountd/accountd/internal/auth"
	"github.com/accountd/accountd/internal/auth/token"
	"github.com/accountd/accountd/pkg/errutil"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestCodec(t *testing.T, opts ...token.Option) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec(testKey, time.Hour, opts...)
	require.NoError(t, err)
	return codec
}

func testIdentity() auth.SessionIdentity {
	return auth.SessionIdentity{
		AccountID: ulid.Make(),
		Email:     "user@example.com",
	}
}

func TestNewCodec(t *testing.T) {
	t.Run("rejects short key", func(t *testing.T) {
		_, err := token.NewCodec([]byte("too-short"), time.Hour)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least")
	})

	t.Run("zero ttl falls back to default", func(t *testing.T) {
		codec, err := token.NewCodec(testKey, 0)
		require.NoError(t, err)

		encoded, err := codec.Encode(testIdentity())
		require.NoError(t, err)
		_, err = codec.Decode(encoded)
		assert.NoError(t, err)
	})
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	identity := testIdentity()

	encoded, err := codec.Encode(identity)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(encoded, ".")+1, "expected compact JWT")

	decoded, err := codec.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, identity, decoded)
}

func TestCodec_Decode_Invalid(t *testing.T) {
	codec := newTestCodec(t)

	t.Run("garbage token", func(t *testing.T) {
		_, err := codec.Decode("not-a-jwt")
		errutil.AssertErrorCode(t, err, auth.CodeSessionInvalid)
	})

	t.Run("tampered payload", func(t *testing.T) {
		encoded, err := codec.Encode(testIdentity())
		require.NoError(t, err)

		// Flip a byte in the payload segment; the signature no longer matches.
		parts := strings.Split(encoded, ".")
		require.Len(t, parts, 3)
		payload := []byte(parts[1])
		if payload[0] == 'A' {
			payload[0] = 'B'
		} else {
			payload[0] = 'A'
		}
		tampered := parts[0] + "." + string(payload) + "." + parts[2]

		_, err = codec.Decode(tampered)
		errutil.AssertErrorCode(t, err, auth.CodeSessionInvalid)
	})

	t.Run("wrong key", func(t *testing.T) {
		encoded, err := codec.Encode(testIdentity())
		require.NoError(t, err)

		other, err := token.NewCodec([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
		require.NoError(t, err)

		_, err = other.Decode(encoded)
		errutil.AssertErrorCode(t, err, auth.CodeSessionInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		expiredCodec := newTestCodec(t, token.WithClock(func() time.Time { return past }))

		encoded, err := expiredCodec.Encode(testIdentity())
		require.NoError(t, err)

		_, err = codec.Decode(encoded)
		errutil.AssertErrorCode(t, err, auth.CodeSessionInvalid)
	})

	t.Run("decode clock governs expiry", func(t *testing.T) {
		encoded, err := codec.Encode(testIdentity())
		require.NoError(t, err)

		// Same token, read by a codec whose clock sits past the exp claim.
		future := time.Now().Add(2 * time.Hour)
		lateCodec := newTestCodec(t, token.WithClock(func() time.Time { return future }))

		_, err = lateCodec.Decode(encoded)
		errutil.AssertErrorCode(t, err, auth.CodeSessionInvalid)
	})

	t.Run("missing exp rejected", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":   ulid.Make().String(),
			"email": "user@example.com",
		})
		encoded, err := raw.SignedString(testKey)
		require.NoError(t, err)

		_, err = codec.Decode(encoded)
		errutil.AssertErrorCode(t, err, auth.CodeSessionInvalid)
	})

	t.Run("unsigned algorithm rejected", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject: ulid.Make().String(),
		})
		encoded, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = codec.Decode(encoded)
		errutil.AssertErrorCode(t, err, auth.CodeSessionInvalid)
	})

	t.Run("garbage subject rejected", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":   "not-a-ulid",
			"email": "user@example.com",
			"exp":   jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		encoded, err := raw.SignedString(testKey)
		require.NoError(t, err)

		_, err = codec.Decode(encoded)
		errutil.AssertErrorCode(t, err, auth.CodeSessionInvalid)
	})
}
