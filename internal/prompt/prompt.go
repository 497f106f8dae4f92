// Package prompt provides the issue body templates offered for each use
// case.
package prompt

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/errcodes"
	"github.com/mageroni/Agent-Quickstart/internal/pkg/client"
	"github.com/mageroni/Agent-Quickstart/internal/pkg/fs"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const DefaultTimeout = 10 * time.Second

var defaults = map[domain.UseCase]string{
	domain.UseCaseTests: `Increase the test coverage of this repository.

- Find the modules with the least coverage and add unit tests for them.
- Cover error paths and edge cases, not only the happy path.
- Follow the existing test conventions and tooling of the repository.
- Make sure the whole test suite passes.`,
	domain.UseCaseDocumentation: `Improve the documentation of this repository.

- Write or update the README with setup, usage and contribution steps.
- Document the public API of the main packages or modules.
- Add comments where the code is hard to follow.
- Keep the documentation consistent with the current behavior.`,
	domain.UseCaseTechnicalDebt: `Reduce the technical debt of this repository.

- Remove dead code and unused dependencies.
- Refactor duplicated or overly complex code into smaller units.
- Replace deprecated APIs with their current equivalents.
- Keep behavior unchanged and make sure existing tests pass.`,
}

// Default returns the built-in template of u.
func Default(u domain.UseCase) string {
	return defaults[u]
}

type Fetcher interface {
	Do(ctx context.Context, r *client.Request) (*client.Response, error)
}

// Loader fetches "<base>/<use-case>.md" and remembers what it fetched.
type Loader struct {
	fetcher Fetcher
	baseURL string

	mu      sync.Mutex
	fetched map[domain.UseCase]string
}

func NewLoader(baseURL string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return NewLoaderWithFetcher(baseURL, client.New(&client.Options{Timeout: timeout}))
}

func NewLoaderWithFetcher(baseURL string, f Fetcher) *Loader {
	return &Loader{
		fetcher: f,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		fetched: map[domain.UseCase]string{},
	}
}

// Get returns the template of u. Any fetch failure yields the built-in
// default with fellBack set.
func (l *Loader) Get(ctx context.Context, u domain.UseCase) (text string, fellBack bool) {
	l.mu.Lock()
	t, ok := l.fetched[u]
	l.mu.Unlock()
	if ok {
		return t, false
	}

	t, err := l.fetch(ctx, u)
	if err != nil {
		log.Warn().Err(err).Str("use_case", string(u)).Msg("prompt template unavailable, using default")
		return Default(u), true
	}

	l.mu.Lock()
	l.fetched[u] = t
	l.mu.Unlock()

	return t, false
}

func (l *Loader) fetch(ctx context.Context, u domain.UseCase) (string, error) {
	if !u.IsValid() {
		return "", errcodes.ErrUnknownUseCase
	}
	if l.baseURL == "" {
		return "", errors.New("no prompt base URL configured")
	}

	resp, err := l.fetcher.Do(ctx, &client.Request{
		Method: http.MethodGet,
		URL:    l.baseURL + "/" + string(u) + ".md",
	})
	if err != nil {
		return "", err
	}

	t := strings.TrimSpace(string(resp.Body))
	if t == "" {
		return "", errcodes.ErrEmptyPrompt
	}

	return t, nil
}

// LoadFile reads a local prompt file.
func LoadFile(f fs.Filesystem, path string) (string, error) {
	b, err := f.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read prompt file %s", path)
	}

	t := strings.TrimSpace(string(b))
	if t == "" {
		return "", errcodes.ErrEmptyPrompt
	}

	return t, nil
}
