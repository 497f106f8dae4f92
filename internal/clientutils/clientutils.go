// Package clientutils builds the GitHub client and the services on top of it
// from the loaded configuration.
package clientutils

import (
	"context"

	"github.com/mageroni/Agent-Quickstart/internal/catalog"
	"github.com/mageroni/Agent-Quickstart/internal/configutils"
	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/pkg/github"
	"github.com/mageroni/Agent-Quickstart/internal/prompt"
	"github.com/mageroni/Agent-Quickstart/internal/ratelimit"
	"github.com/mageroni/Agent-Quickstart/internal/workflow"
	"github.com/spf13/viper"
)

type ClientFactory struct {
	Config *viper.Viper
}

// NewClient returns a client authenticated with token, or with the
// configured token when token is empty.
func (cf ClientFactory) NewClient(token string) *github.GithubClient {
	if token == "" {
		token = cf.Config.GetString(configutils.KeyToken)
	}

	return github.New(&github.Options{
		Token:      token,
		APIURL:     cf.Config.GetString(configutils.KeyAPIURL),
		GraphQLURL: cf.Config.GetString(configutils.KeyGraphQLURL),
		Timeout:    cf.Config.GetDuration(configutils.KeyRequestTimeout),
	})
}

func (cf ClientFactory) RepositoryCatalog(c catalog.RepositoryClient) *catalog.RepositoryCatalog {
	return catalog.NewRepositoryCatalog(c, &catalog.RepositoryCatalogOptions{
		PageSize:        cf.Config.GetInt(configutils.KeyPageSize),
		MaxRepositories: cf.Config.GetInt(configutils.KeyMaxRepositories),
		ViewPageSize:    cf.Config.GetInt(configutils.KeyViewPageSize),
		CacheTTL:        cf.Config.GetDuration(configutils.KeySearchCacheTTL),
		Pacer:           ratelimit.NewInterval(cf.Config.GetDuration(configutils.KeyPageDelay)),
	})
}

func (cf ClientFactory) PropertyCatalog(c catalog.PropertySchemaGetter) *catalog.PropertyCatalog {
	return catalog.NewPropertyCatalog(c, cf.Config.GetInt(configutils.KeyViewPageSize))
}

func (cf ClientFactory) Orchestrator(c workflow.Client, observer workflow.Observer) *workflow.Orchestrator {
	return workflow.New(c, &workflow.Options{
		Pacer:    ratelimit.NewInterval(cf.Config.GetDuration(configutils.KeyWorkflowDelay)),
		Observer: observer,
	})
}

func (cf ClientFactory) PromptLoader() *prompt.Loader {
	return prompt.NewLoader(
		cf.Config.GetString(configutils.KeyPromptsBaseURL),
		cf.Config.GetDuration(configutils.KeyPromptsTimeout),
	)
}

// WizardBackend serves the terminal UI with services built for the token
// entered in the wizard.
type WizardBackend struct {
	Factory ClientFactory
	Loader  *prompt.Loader
}

func (cf ClientFactory) WizardBackend() *WizardBackend {
	return &WizardBackend{Factory: cf, Loader: cf.PromptLoader()}
}

func (b *WizardBackend) Catalogs(token string) (*catalog.RepositoryCatalog, *catalog.PropertyCatalog) {
	c := b.Factory.NewClient(token)
	return b.Factory.RepositoryCatalog(c), b.Factory.PropertyCatalog(c)
}

func (b *WizardBackend) Prompt(ctx context.Context, u domain.UseCase) string {
	text, _ := b.Loader.Get(ctx, u)
	return text
}

func (b *WizardBackend) Run(ctx context.Context, r *workflow.Request, observer workflow.Observer) (*workflow.Summary, error) {
	return b.Factory.Orchestrator(b.Factory.NewClient(r.Token), observer).Run(ctx, r)
}
