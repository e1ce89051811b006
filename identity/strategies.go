package identity

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// DefaultUserHeader is the explicit caller-supplied identity header,
// intended for trusted front ends that have already authenticated the user.
const DefaultUserHeader = "X-Lumina-User"

// APIKeyHeader carries the shared-secret API key.
const APIKeyHeader = "X-API-Key"

// AccessEmailHeader is injected by Cloudflare Access after it has
// authenticated the user.
const AccessEmailHeader = "Cf-Access-Authenticated-User-Email"

// UserHeader resolves the explicit identity header. The header value is a
// display identity; the opaque ID is derived by hashing it.
type UserHeader struct {
	// Header overrides DefaultUserHeader when non-empty.
	Header string
}

func (s UserHeader) Resolve(r *http.Request) (Identity, bool) {
	header := s.Header
	if header == "" {
		header = DefaultUserHeader
	}
	v := strings.TrimSpace(r.Header.Get(header))
	if v == "" {
		return Identity{}, false
	}
	return Identity{ID: HashCredential(v), Email: v}, true
}

// APIKey resolves a shared-secret key header. Comparison is constant-time.
type APIKey struct {
	// Key is the configured shared secret. An empty key disables the
	// strategy entirely rather than matching empty headers.
	Key string
	// Email is the display identity reported for key-authenticated
	// callers. Defaults to "api-key".
	Email string
}

func (s APIKey) Resolve(r *http.Request) (Identity, bool) {
	if s.Key == "" {
		return Identity{}, false
	}
	v := r.Header.Get(APIKeyHeader)
	if v == "" {
		return Identity{}, false
	}
	if subtle.ConstantTimeCompare([]byte(v), []byte(s.Key)) != 1 {
		return Identity{}, false
	}
	email := s.Email
	if email == "" {
		email = "api-key"
	}
	return Identity{ID: HashCredential(s.Key), Email: email}, true
}

// AccessEmail resolves the platform-injected authenticated-email header.
type AccessEmail struct{}

func (AccessEmail) Resolve(r *http.Request) (Identity, bool) {
	email := strings.TrimSpace(r.Header.Get(AccessEmailHeader))
	if email == "" {
		return Identity{}, false
	}
	return Identity{ID: HashCredential(email), Email: email}, true
}

// DevFallback resolves every request to a fixed development identity.
// It must only be chained in when explicitly configured.
type DevFallback struct {
	Email  string
	Logger *slog.Logger

	warnOnce sync.Once
}

func (s *DevFallback) Resolve(r *http.Request) (Identity, bool) {
	if s.Email == "" {
		return Identity{}, false
	}
	s.warnOnce.Do(func() {
		logger := s.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("DEV MODE: using fallback identity", "email", s.Email)
	})
	return Identity{ID: HashCredential(s.Email), Email: s.Email}, true
}
