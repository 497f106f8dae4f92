package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/pkg/github"
	"github.com/mageroni/Agent-Quickstart/internal/ratelimit"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

const (
	DefaultPageSize        = 100
	DefaultMaxRepositories = 5000
	DefaultPageDelay       = 100 * time.Millisecond
	DefaultSearchCacheTTL  = 60 * time.Second

	// Remote search kicks in below this many local matches.
	remoteSearchThreshold = 10
	remoteSearchMinLength = 2
)

type RepositoryLister interface {
	ListOrganizationRepositories(ctx context.Context, org string, page, perPage int) ([]domain.Repository, error)
}

type RepositorySearcher interface {
	SearchRepositories(ctx context.Context, org, term string) ([]domain.Repository, error)
}

type RepositoryClient interface {
	RepositoryLister
	RepositorySearcher
}

type RepositoryCatalogOptions struct {
	PageSize        int
	MaxRepositories int
	ViewPageSize    int
	CacheTTL        time.Duration
	// Pacer spaces consecutive page requests. Defaults to DefaultPageDelay.
	Pacer ratelimit.Pacer
}

type RepositoryCatalog struct {
	client   RepositoryClient
	view     *View[domain.Repository]
	cache    *gocache.Cache
	pacer    ratelimit.Pacer
	pageSize int
	max      int
	org      string
}

func NewRepositoryCatalog(c RepositoryClient, o *RepositoryCatalogOptions) *RepositoryCatalog {
	if o == nil {
		o = &RepositoryCatalogOptions{}
	}
	pageSize := o.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	max := o.MaxRepositories
	if max <= 0 {
		max = DefaultMaxRepositories
	}
	ttl := o.CacheTTL
	if ttl <= 0 {
		ttl = DefaultSearchCacheTTL
	}
	pacer := o.Pacer
	if pacer == nil {
		pacer = ratelimit.NewInterval(DefaultPageDelay)
	}

	return &RepositoryCatalog{
		client:   c,
		view:     NewView(o.ViewPageSize, matchRepository),
		cache:    gocache.New(ttl, 2*ttl),
		pacer:    pacer,
		pageSize: pageSize,
		max:      max,
	}
}

func matchRepository(r domain.Repository, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.Description), term)
}

func (c *RepositoryCatalog) View() *View[domain.Repository] {
	return c.view
}

func (c *RepositoryCatalog) Organization() string {
	return c.org
}

// Load fetches the organization's repositories, most recently updated first,
// up to the configured cap. A failing page stops loading; everything fetched
// before it is kept and the error is returned alongside.
func (c *RepositoryCatalog) Load(ctx context.Context, org string) ([]domain.Repository, error) {
	it := github.NewPageIterator(&github.PageIteratorOptions[domain.Repository]{
		Fetch: func(ctx context.Context, page, perPage int) ([]domain.Repository, error) {
			return c.client.ListOrganizationRepositories(ctx, org, page, perPage)
		},
		PerPage: c.pageSize,
		Limit:   c.max,
		Pacer:   c.pacer,
	})

	repos, err := it.GetAll(ctx)
	if err != nil {
		log.Warn().Err(err).
			Str("org", org).
			Int("loaded", len(repos)).
			Int("page", it.Page()).
			Msg("repository loading stopped early")
	}

	c.org = org
	c.view.SetItems(repos)
	log.Debug().Str("org", org).Int("count", len(repos)).Msg("repositories loaded")

	return repos, err
}

// Search filters the loaded catalog. When few local matches exist, an org
// scoped remote search augments them. Remote failures are logged and the
// local matches are used on their own.
func (c *RepositoryCatalog) Search(ctx context.Context, term string) []domain.Repository {
	term = strings.TrimSpace(term)
	c.view.Filter(term)
	local := c.view.Filtered()

	if !c.WantsRemoteSearch(term, len(local)) {
		return local
	}

	remote, err := c.RemoteSearch(ctx, term)
	if err != nil {
		log.Warn().Err(err).Str("org", c.org).Str("term", term).Msg("remote repository search unavailable")
		return local
	}

	merged := MergeByName(local, remote)
	c.view.SetFiltered(term, merged)

	return merged
}

// WantsRemoteSearch reports whether local matches for term are too few.
func (c *RepositoryCatalog) WantsRemoteSearch(term string, localMatches int) bool {
	return localMatches < remoteSearchThreshold &&
		len([]rune(term)) >= remoteSearchMinLength &&
		c.org != ""
}

// RemoteSearch queries the search API for term within the loaded
// organization. It leaves the view untouched so it can run off the UI
// goroutine; results are cached per organization and term.
func (c *RepositoryCatalog) RemoteSearch(ctx context.Context, term string) ([]domain.Repository, error) {
	key := fmt.Sprintf("%s/%s", c.org, term)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]domain.Repository), nil
	}

	repos, err := c.client.SearchRepositories(ctx, c.org, term)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, repos)

	return repos, nil
}

// MergeByName appends the remote repositories missing from local.
func MergeByName(local, remote []domain.Repository) []domain.Repository {
	merged := slices.Clone(local)
	for _, r := range remote {
		exists := slices.IndexFunc(merged, func(m domain.Repository) bool {
			return m.Name == r.Name
		}) >= 0
		if !exists {
			merged = append(merged, r)
		}
	}

	return merged
}
