// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package auth

import (
	"github.com/oklog/ulid/v2"
)

// SessionIdentity is the minimal claim set embedded in a session token:
// the account id and email as of issuance time. It is never persisted; the
// signed token is the complete session state.
type SessionIdentity struct {
	AccountID ulid.ULID `json:"id"`
	Email     string    `json:"email"`
}

// SessionCodec serializes a SessionIdentity into a tamper-evident token
// suitable for a cookie value, and back. Decode is pure: it never touches
// persistence, and any bit flip in the token must make it fail with a
// CodeSessionInvalid error rather than yield a wrong identity.
//
// Implementations are swappable (signed stateless token, server-side store
// keyed by opaque id) without touching the flows above.
type SessionCodec interface {
	Encode(identity SessionIdentity) (string, error)
	Decode(token string) (SessionIdentity, error)
}
