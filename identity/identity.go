// Package identity resolves an inbound HTTP request to a stable, opaque
// user identifier. Resolution walks an ordered chain of strategies; the
// first one that recognizes a credential wins, so precedence stays explicit
// and each strategy is testable in isolation.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
)

// ErrUnauthorized indicates no strategy recognized a credential.
var ErrUnauthorized = errors.New("unauthorized")

// Identity is a resolved principal. ID is a one-way hash of the credential,
// safe to use as a namespace key and to log; Email is for display only and
// must never be used for data access.
type Identity struct {
	ID    string
	Email string
}

// Resolver converts request credentials into an Identity.
type Resolver interface {
	Resolve(r *http.Request) (Identity, error)
}

// Strategy is one way of recognizing a credential. It reports ok=false to
// decline without failing the chain.
type Strategy interface {
	Resolve(r *http.Request) (Identity, bool)
}

// Chain tries each strategy in order and returns the first resolution.
type Chain []Strategy

var _ Resolver = Chain(nil)

func (c Chain) Resolve(r *http.Request) (Identity, error) {
	for _, s := range c {
		if id, ok := s.Resolve(r); ok {
			return id, nil
		}
	}
	return Identity{}, ErrUnauthorized
}

// HashCredential derives the opaque user identifier from a credential:
// the hex SHA-256 digest. The mapping is one-way; the credential cannot be
// recovered from the identifier.
func HashCredential(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}
