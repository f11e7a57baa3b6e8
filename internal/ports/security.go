package ports

import "time"

// PasswordHasher is a one-way credential hash with per-call salting.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns a non-nil error on any mismatch, including a
	// malformed stored hash. It never panics.
	Compare(hash, password string) error
}

// TokenClaims is the decoded payload of a session token. It is never
// persisted; the token itself is the only session state.
type TokenClaims struct {
	Name      string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenSigner signs and verifies the compact bearer tokens that gate
// every task route.
type TokenSigner interface {
	Sign(claims TokenClaims) (string, error)
	// Verify returns an error for any unusable token: bad signature,
	// malformed input, unexpected algorithm, or expiry.
	Verify(token string) (TokenClaims, error)
}
