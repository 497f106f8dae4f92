package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Run("removes every unsafe character", func(t *testing.T) {
		inputs := []string{
			`<script>alert("x")</script>`,
			`Tom & Jerry's`,
			`<<>>''""&&`,
			"plain text",
			"",
		}
		for _, in := range inputs {
			out := Sanitize(in)
			assert.False(t, strings.ContainsAny(out, `<>'"&`), in)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		inputs := []string{`a<b>c`, `"quoted"`, `&amp;`, "nothing", `<&'">`}
		for _, in := range inputs {
			once := Sanitize(in)
			assert.Equal(t, once, Sanitize(once), in)
		}
	})

	t.Run("returns empty string for non string input", func(t *testing.T) {
		assert.Equal(t, "", Sanitize(42))
		assert.Equal(t, "", Sanitize(nil))
		assert.Equal(t, "", Sanitize([]byte("abc")))
	})

	t.Run("keeps the remaining characters in order", func(t *testing.T) {
		assert.Equal(t, "scriptalert(x)/script", Sanitize(`<script>alert("x")</script>`))
	})
}

func TestIsValidOrganizationName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"single character", "a", true},
		{"single digit", "7", true},
		{"alphanumeric", "octo42", true},
		{"internal hyphen", "my-org", true},
		{"several hyphens", "my--big-org", true},
		{"surrounding whitespace is trimmed", "  my-org  ", true},
		{"unsafe characters are stripped first", "my<org>", true},
		{"leading hyphen", "-org", false},
		{"trailing hyphen", "org-", false},
		{"only hyphen", "-", false},
		{"underscore", "my_org", false},
		{"dot", "my.org", false},
		{"inner space", "my org", false},
		{"empty", "", false},
		{"only unsafe characters", "<>&", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidOrganizationName(tt.input))
		})
	}
}

func TestIsValidToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"classic token", "ghp_" + strings.Repeat("a", 36), true},
		{"exactly twenty characters", strings.Repeat("x", 20), true},
		{"nineteen characters", strings.Repeat("x", 19), false},
		{"surrounding whitespace is trimmed", "  " + strings.Repeat("A1_", 7) + "\n", true},
		{"fine grained token", "github_pat_" + strings.Repeat("Z9", 20), true},
		{"hyphen is rejected", strings.Repeat("a", 20) + "-", false},
		{"inner space is rejected", strings.Repeat("a", 10) + " " + strings.Repeat("a", 10), false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidToken(tt.input))
		})
	}
}
