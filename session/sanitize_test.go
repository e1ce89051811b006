package session

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"passthrough", "my-app_1.2", "my-app_1.2"},
		{"spaces collapse", "my cool app", "my_cool_app"},
		{"run collapses to one underscore", "a/../b", "a_.._b"},
		{"slashes", "../../etc/passwd", ".._.._etc_passwd"},
		{"unicode", "café", "caf_"},
		{"empty", "", "_"},
		{"blank", "   ", "_"},
		{"only unsafe", "///", "_"},
		{"leading trailing space trimmed", "  app  ", "app"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitize_AlwaysSafe(t *testing.T) {
	safe := regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	inputs := []string{"", " ", "a b c", "ümlaut", "x\x00y", "日本語", "a/b\\c", "normal"}
	for _, in := range inputs {
		out := Sanitize(in)
		assert.Regexp(t, safe, out, "input %q", in)
		assert.NotEmpty(t, out)
	}
}

func TestUserSegment_Truncation(t *testing.T) {
	long := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	assert.Equal(t, "0123456789abcdef01234567", userSegment(long))
	assert.Len(t, userSegment(long), userPrefixLen)

	// Shorter identifiers pass through whole.
	assert.Equal(t, "shortuser", userSegment("shortuser"))
}

func TestPaths_Layout(t *testing.T) {
	user := "0123456789abcdef0123456789abcdef"
	assert.Equal(t, "users/0123456789abcdef01234567/my_app/sessions_index.json", indexKey(user, "my app"))
	assert.Equal(t, "users/0123456789abcdef01234567/my_app/sessions/s1/state.json", stateKey(user, "my app", "s1"))
	assert.Equal(t, "users/0123456789abcdef01234567/my_app/sessions/s1/files", filesDir(user, "my app", "s1"))
}
