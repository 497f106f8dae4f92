package prompt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/errcodes"
	"github.com/mageroni/Agent-Quickstart/internal/pkg/client"
	"github.com/mageroni/Agent-Quickstart/internal/pkg/fs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Get(t *testing.T) {
	t.Run("fetches and memoizes the template", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			assert.Equal(t, "/prompts/documentation.md", r.URL.Path)
			_, _ = w.Write([]byte("  Document everything\n"))
		}))
		defer srv.Close()
		l := NewLoader(srv.URL+"/prompts/", 0)

		text, fellBack := l.Get(context.Background(), domain.UseCaseDocumentation)
		again, _ := l.Get(context.Background(), domain.UseCaseDocumentation)

		assert.Equal(t, "Document everything", text)
		assert.False(t, fellBack)
		assert.Equal(t, text, again)
		assert.Equal(t, 1, calls)
	})

	t.Run("falls back to the default on failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()
		l := NewLoader(srv.URL, 0)

		text, fellBack := l.Get(context.Background(), domain.UseCaseTests)

		assert.True(t, fellBack)
		assert.Equal(t, Default(domain.UseCaseTests), text)
	})

	t.Run("falls back without a base URL", func(t *testing.T) {
		text, fellBack := NewLoader("", 0).Get(context.Background(), domain.UseCaseTechnicalDebt)

		assert.True(t, fellBack)
		assert.Contains(t, text, "technical debt")
	})

	t.Run("does not hold other use cases behind a slow fetch", func(t *testing.T) {
		f := &slowFetcher{
			slow:    "/tests.md",
			started: make(chan struct{}),
			release: make(chan struct{}),
		}
		l := NewLoaderWithFetcher("https://prompts.example", f)

		slowDone := make(chan string)
		go func() {
			text, _ := l.Get(context.Background(), domain.UseCaseTests)
			slowDone <- text
		}()
		<-f.started

		fastDone := make(chan string)
		go func() {
			text, _ := l.Get(context.Background(), domain.UseCaseDocumentation)
			fastDone <- text
		}()

		select {
		case text := <-fastDone:
			assert.Equal(t, "body of /documentation.md", text)
		case <-time.After(2 * time.Second):
			t.Fatal("documentation template waited for the tests template")
		}

		close(f.release)
		assert.Equal(t, "body of /tests.md", <-slowDone)
	})
}

// slowFetcher blocks requests for slow until release is closed.
type slowFetcher struct {
	slow    string
	started chan struct{}
	release chan struct{}
}

func (f *slowFetcher) Do(ctx context.Context, r *client.Request) (*client.Response, error) {
	path := strings.TrimPrefix(r.URL, "https://prompts.example")
	if path == f.slow {
		close(f.started)
		<-f.release
	}

	return &client.Response{Body: []byte("body of " + path)}, nil
}

func TestDefault(t *testing.T) {
	for _, u := range domain.UseCases {
		assert.NotEmpty(t, Default(u), u)
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("returns the trimmed content", func(t *testing.T) {
		text, err := LoadFile(fs.MockFS{Content: []byte("\nDo it\n")}, "p.md")

		require.NoError(t, err)
		assert.Equal(t, "Do it", text)
	})

	t.Run("fails on an empty file", func(t *testing.T) {
		_, err := LoadFile(fs.MockFS{Content: []byte("  ")}, "p.md")

		assert.ErrorIs(t, err, errcodes.ErrEmptyPrompt)
	})

	t.Run("fails when the file cannot be read", func(t *testing.T) {
		vErr := errors.New("read err")

		_, err := LoadFile(fs.MockFS{Err: vErr}, "p.md")

		assert.ErrorIs(t, err, vErr)
	})
}
