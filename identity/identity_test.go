package identity

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(t *testing.T, headers map[string]string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	return r
}

func TestHashCredential(t *testing.T) {
	id := HashCredential("user@example.com")
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), id)
	// Stable across calls, distinct across inputs.
	assert.Equal(t, id, HashCredential("user@example.com"))
	assert.NotEqual(t, id, HashCredential("other@example.com"))
}

func TestAccessEmail(t *testing.T) {
	var s AccessEmail

	id, ok := s.Resolve(request(t, map[string]string{AccessEmailHeader: "a@b.c"}))
	require.True(t, ok)
	assert.Equal(t, "a@b.c", id.Email)
	assert.Equal(t, HashCredential("a@b.c"), id.ID)

	_, ok = s.Resolve(request(t, nil))
	assert.False(t, ok)
}

func TestUserHeader(t *testing.T) {
	s := UserHeader{}

	id, ok := s.Resolve(request(t, map[string]string{DefaultUserHeader: "front-end-user"}))
	require.True(t, ok)
	assert.Equal(t, "front-end-user", id.Email)

	// Custom header name.
	s = UserHeader{Header: "X-Custom-User"}
	_, ok = s.Resolve(request(t, map[string]string{DefaultUserHeader: "front-end-user"}))
	assert.False(t, ok)
	_, ok = s.Resolve(request(t, map[string]string{"X-Custom-User": "u"}))
	assert.True(t, ok)
}

func TestAPIKey(t *testing.T) {
	s := APIKey{Key: "secret-key", Email: "service@lumina"}

	id, ok := s.Resolve(request(t, map[string]string{APIKeyHeader: "secret-key"}))
	require.True(t, ok)
	assert.Equal(t, "service@lumina", id.Email)

	_, ok = s.Resolve(request(t, map[string]string{APIKeyHeader: "wrong"}))
	assert.False(t, ok)

	// Unconfigured key never matches, even an empty header.
	unset := APIKey{}
	_, ok = unset.Resolve(request(t, nil))
	assert.False(t, ok)
}

func TestDevFallback(t *testing.T) {
	s := &DevFallback{Email: "dev@localhost.local"}

	id, ok := s.Resolve(request(t, nil))
	require.True(t, ok)
	assert.Equal(t, "dev@localhost.local", id.Email)

	disabled := &DevFallback{}
	_, ok = disabled.Resolve(request(t, nil))
	assert.False(t, ok)
}

func TestChain_PrecedenceAndFallthrough(t *testing.T) {
	chain := Chain{
		UserHeader{},
		APIKey{Key: "k"},
		AccessEmail{},
		&DevFallback{Email: "dev@localhost.local"},
	}

	// The explicit header outranks the platform email header.
	id, err := chain.Resolve(request(t, map[string]string{
		DefaultUserHeader: "explicit",
		AccessEmailHeader: "platform@b.c",
	}))
	require.NoError(t, err)
	assert.Equal(t, "explicit", id.Email)

	// Without the explicit header the platform email wins over dev fallback.
	id, err = chain.Resolve(request(t, map[string]string{AccessEmailHeader: "platform@b.c"}))
	require.NoError(t, err)
	assert.Equal(t, "platform@b.c", id.Email)

	// No credential at all still resolves through the dev fallback.
	id, err = chain.Resolve(request(t, nil))
	require.NoError(t, err)
	assert.Equal(t, "dev@localhost.local", id.Email)
}

func TestChain_Unauthorized(t *testing.T) {
	chain := Chain{UserHeader{}, AccessEmail{}}

	_, err := chain.Resolve(request(t, nil))
	require.ErrorIs(t, err, ErrUnauthorized)
}
