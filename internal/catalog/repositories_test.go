package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRepositories(n int) []domain.Repository {
	repos := make([]domain.Repository, n)
	for i := range repos {
		repos[i] = domain.Repository{Name: fmt.Sprintf("repo-%04d", i)}
	}
	return repos
}

func repositoryNames(repos []domain.Repository) []string {
	names := []string{}
	for _, r := range repos {
		names = append(names, r.Name)
	}
	return names
}

func newTestCatalog(m *MockRepositoryClient, pacer ratelimit.Pacer) *RepositoryCatalog {
	return NewRepositoryCatalog(m, &RepositoryCatalogOptions{Pacer: pacer})
}

func TestRepositoryCatalog_Load(t *testing.T) {
	t.Run("loads 250 repositories in three requests", func(t *testing.T) {
		m := &MockRepositoryClient{Repositories: makeRepositories(250)}
		pacer := &ratelimit.MockPacer{}
		c := newTestCatalog(m, pacer)

		repos, err := c.Load(context.Background(), "octo")

		require.NoError(t, err)
		assert.Len(t, repos, 250)
		assert.Equal(t, 3, m.ListCalls)
		assert.Equal(t, 2, pacer.Calls)
		assert.Equal(t, 25, c.View().TotalPages())
		assert.Equal(t, "octo", c.Organization())
	})

	t.Run("truncates to the cap", func(t *testing.T) {
		m := &MockRepositoryClient{Repositories: makeRepositories(5200)}
		c := newTestCatalog(m, ratelimit.Unlimited)

		repos, err := c.Load(context.Background(), "octo")

		require.NoError(t, err)
		assert.Len(t, repos, 5000)
		assert.Equal(t, 50, m.ListCalls)
	})

	t.Run("keeps earlier pages when a page fails", func(t *testing.T) {
		vErr := errors.New("boom")
		m := &MockRepositoryClient{Repositories: makeRepositories(500), FailPage: 3, ListErr: vErr}
		c := newTestCatalog(m, ratelimit.Unlimited)

		repos, err := c.Load(context.Background(), "octo")

		assert.ErrorIs(t, err, vErr)
		assert.Len(t, repos, 200)
		assert.Len(t, c.View().Items(), 200)
	})
}

func TestRepositoryCatalog_Search(t *testing.T) {
	loaded := func(m *MockRepositoryClient) *RepositoryCatalog {
		c := newTestCatalog(m, ratelimit.Unlimited)
		_, err := c.Load(context.Background(), "octo")
		require.NoError(t, err)
		return c
	}

	t.Run("matches name and description case-insensitively", func(t *testing.T) {
		m := &MockRepositoryClient{Repositories: []domain.Repository{
			{Name: "Payments"},
			{Name: "web", Description: "the PAYMENT frontend"},
			{Name: "docs"},
		}, Found: []domain.Repository{}}
		c := loaded(m)

		found := c.Search(context.Background(), "payment")

		assert.Equal(t, []string{"Payments", "web"}, repositoryNames(found))
	})

	t.Run("never searches remotely for a single character term", func(t *testing.T) {
		m := &MockRepositoryClient{Repositories: makeRepositories(3)}
		c := loaded(m)

		c.Search(context.Background(), "x")

		assert.Equal(t, 0, m.SearchCalls)
	})

	t.Run("skips the remote search when enough local matches exist", func(t *testing.T) {
		m := &MockRepositoryClient{Repositories: makeRepositories(20)}
		c := loaded(m)

		found := c.Search(context.Background(), "repo")

		assert.Len(t, found, 20)
		assert.Equal(t, 0, m.SearchCalls)
	})

	t.Run("merges remote results after local ones without duplicates", func(t *testing.T) {
		m := &MockRepositoryClient{
			Repositories: []domain.Repository{{Name: "api"}, {Name: "web"}},
			Found:        []domain.Repository{{Name: "api"}, {Name: "api-gateway"}},
		}
		c := loaded(m)

		found := c.Search(context.Background(), "api")

		assert.Equal(t, []string{"api", "api-gateway"}, repositoryNames(found))
		assert.Equal(t, found, c.View().Filtered())
		assert.Equal(t, 1, c.View().Page())
	})

	t.Run("caches remote results per organization and term", func(t *testing.T) {
		m := &MockRepositoryClient{Found: []domain.Repository{{Name: "api"}}}
		c := loaded(m)

		c.Search(context.Background(), "api")
		c.Search(context.Background(), "api")
		c.Search(context.Background(), "web")

		assert.Equal(t, 2, m.SearchCalls)
	})

	t.Run("falls back to local matches when the remote search fails", func(t *testing.T) {
		m := &MockRepositoryClient{
			Repositories: []domain.Repository{{Name: "api"}},
			SearchErr:    errors.New("rate limited"),
		}
		c := loaded(m)

		found := c.Search(context.Background(), "api")

		assert.Equal(t, []string{"api"}, repositoryNames(found))
	})
}

func TestRepositoryCatalog_RemoteSearch(t *testing.T) {
	t.Run("leaves the view untouched", func(t *testing.T) {
		m := &MockRepositoryClient{
			Repositories: []domain.Repository{{Name: "api"}},
			Found:        []domain.Repository{{Name: "api-gateway"}},
		}
		c := newTestCatalog(m, ratelimit.Unlimited)
		_, err := c.Load(context.Background(), "octo")
		require.NoError(t, err)

		found, err := c.RemoteSearch(context.Background(), "api")

		require.NoError(t, err)
		assert.Equal(t, []string{"api-gateway"}, repositoryNames(found))
		assert.Equal(t, []string{"api"}, repositoryNames(c.View().Filtered()))
	})

	t.Run("is not wanted before an organization is loaded", func(t *testing.T) {
		c := newTestCatalog(&MockRepositoryClient{}, ratelimit.Unlimited)
		assert.False(t, c.WantsRemoteSearch("api", 0))
	})
}
