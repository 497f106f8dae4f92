package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func contains(item string, term string) bool {
	return strings.Contains(item, term)
}

func TestView(t *testing.T) {
	t.Run("has a single page when empty", func(t *testing.T) {
		v := NewView(10, contains)

		assert.Equal(t, 1, v.TotalPages())
		assert.Equal(t, 1, v.Page())
		assert.Empty(t, v.Visible())
		assert.False(t, v.NextPage())
		assert.False(t, v.PrevPage())
	})

	t.Run("windows the filtered items", func(t *testing.T) {
		v := NewView(2, contains)
		v.SetItems([]string{"a", "b", "c", "d", "e"})

		assert.Equal(t, 3, v.TotalPages())
		assert.Equal(t, []string{"a", "b"}, v.Visible())
		assert.True(t, v.NextPage())
		assert.True(t, v.NextPage())
		assert.Equal(t, []string{"e"}, v.Visible())
		assert.False(t, v.NextPage())
		assert.Equal(t, 3, v.Page())
	})

	t.Run("resets to the first page when the term changes", func(t *testing.T) {
		v := NewView(1, contains)
		v.SetItems([]string{"api", "web", "api-docs"})
		v.GoTo(3)

		v.Filter("api")

		assert.Equal(t, 1, v.Page())
		assert.Equal(t, 2, v.TotalPages())
		assert.Equal(t, "api", v.Term())
		assert.Equal(t, []string{"api", "api-docs"}, v.Filtered())
	})

	t.Run("resets to the first page when the items change", func(t *testing.T) {
		v := NewView(1, contains)
		v.SetItems([]string{"a", "b"})
		v.NextPage()

		v.SetItems([]string{"c", "d", "e"})

		assert.Equal(t, 1, v.Page())
		assert.Equal(t, 3, v.TotalPages())
	})

	t.Run("ignores pages out of range", func(t *testing.T) {
		v := NewView(2, contains)
		v.SetItems([]string{"a", "b", "c"})

		assert.False(t, v.GoTo(0))
		assert.False(t, v.GoTo(3))
		assert.True(t, v.GoTo(2))
		assert.Equal(t, 2, v.Page())
	})
}
