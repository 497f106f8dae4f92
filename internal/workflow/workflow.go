// Package workflow creates one issue per target repository and hands each
// issue to the coding agent. Repositories are processed one at a time, in
// order, with pacing in between. A failing repository never stops the run.
package workflow

import (
	"context"
	"strings"

	"github.com/mageroni/Agent-Quickstart/internal/bot"
	"github.com/mageroni/Agent-Quickstart/internal/catalog"
	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/domain/issue"
	"github.com/mageroni/Agent-Quickstart/internal/errcodes"
	"github.com/mageroni/Agent-Quickstart/internal/pkg/client"
	"github.com/mageroni/Agent-Quickstart/internal/ratelimit"
	"github.com/mageroni/Agent-Quickstart/internal/selection"
	"github.com/mageroni/Agent-Quickstart/internal/validation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// allRepositoriesPageSize is the single page fetched for MethodAll.
const allRepositoriesPageSize = 100

type Client interface {
	issue.Creator
	bot.Client
	catalog.RepositoryLister
}

type Request struct {
	UseCase      domain.UseCase
	Organization string
	Token        string
	Method       selection.Method
	Repositories []string
	Properties   []selection.PropertyFilter
	Prompt       string
}

type Result struct {
	Repository    string
	Succeeded     bool
	Issue         *issue.Entity
	AgentAssigned bool
	Error         error
	Kind          client.ErrorKind
}

// Observer is told about every processed repository. done counts results
// recorded so far, including r.
type Observer func(done, total int, r Result)

type Options struct {
	// Pacer is consulted before every repository but the first.
	Pacer    ratelimit.Pacer
	Observer Observer
}

type Orchestrator struct {
	client   Client
	creator  *issue.CreateService
	resolver *bot.Resolver
	pacer    ratelimit.Pacer
	observer Observer
}

func New(c Client, o *Options) *Orchestrator {
	if o == nil {
		o = &Options{}
	}
	pacer := o.Pacer
	if pacer == nil {
		pacer = ratelimit.Unlimited
	}

	return &Orchestrator{
		client:   c,
		creator:  issue.NewCreateService(c),
		resolver: bot.NewResolver(c),
		pacer:    pacer,
		observer: o.Observer,
	}
}

// Validate checks the entry preconditions. No network call is made.
func Validate(r *Request) error {
	if r.UseCase == "" {
		return errcodes.ErrMissingUseCase
	}
	if !r.UseCase.IsValid() {
		return errcodes.ErrUnknownUseCase
	}
	if !validation.IsValidOrganizationName(r.Organization) {
		return errcodes.ErrInvalidOrganization
	}
	if !validation.IsValidToken(r.Token) {
		return errcodes.ErrInvalidToken
	}
	if strings.TrimSpace(r.Prompt) == "" {
		return errcodes.ErrEmptyPrompt
	}

	switch r.Method {
	case selection.MethodAll:
	case selection.MethodSelected:
		if len(r.Repositories) == 0 {
			return errcodes.ErrEmptySelection
		}
	case selection.MethodProperties:
		if len(r.Properties) == 0 {
			return errcodes.ErrEmptySelection
		}
	default:
		return errcodes.ErrUnknownSelectionMethod
	}

	return nil
}

// Run processes every target repository of r and returns their results in
// order. An error is returned only when the run could not start.
func (o *Orchestrator) Run(ctx context.Context, r *Request) (*Summary, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	org := strings.TrimSpace(validation.Sanitize(r.Organization))

	targets, err := o.targets(ctx, org, r)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, errcodes.ErrNoTargetRepositories
	}

	log.Info().
		Str("org", org).
		Str("use_case", string(r.UseCase)).
		Int("repositories", len(targets)).
		Msg("workflow started")

	summary := &Summary{}
	for i, repo := range targets {
		if i > 0 {
			if err := o.pacer.Wait(ctx); err != nil {
				o.abandon(summary, targets[i:], err, len(targets))
				break
			}
		}

		res := o.process(ctx, org, repo, r)
		o.record(summary, res, len(targets))
	}

	log.Info().
		Str("org", org).
		Str("status", string(summary.Status())).
		Int("succeeded", summary.SuccessCount).
		Int("failed", summary.FailureCount).
		Msg("workflow finished")
	for _, f := range summary.Failed() {
		log.Warn().Err(f.Error).Str("repository", f.Repository).Msg("repository failed")
	}

	return summary, nil
}

func (o *Orchestrator) targets(ctx context.Context, org string, r *Request) ([]string, error) {
	switch r.Method {
	case selection.MethodAll:
		repos, err := o.client.ListOrganizationRepositories(ctx, org, 1, allRepositoriesPageSize)
		if err != nil {
			return nil, errors.Wrapf(err, "list repositories of %s", org)
		}
		if len(repos) == allRepositoriesPageSize {
			log.Warn().Str("org", org).Msgf("only the first %d repositories are processed", allRepositoriesPageSize)
		}

		names := make([]string, 0, len(repos))
		for _, repo := range repos {
			names = append(names, repo.Name)
		}
		return names, nil
	case selection.MethodProperties:
		log.Warn().
			Str("org", org).
			Int("properties", len(r.Properties)).
			Msg("property matching is not available, using the selected repositories")
	}

	return uniqueNames(r.Repositories), nil
}

func (o *Orchestrator) process(ctx context.Context, org, repo string, r *Request) Result {
	e, err := o.creator.Create(ctx, &issue.CreateOptions{
		Owner:      org,
		Repository: repo,
		UseCase:    r.UseCase,
		Prompt:     r.Prompt,
	})
	if err != nil {
		kind, _ := client.Classify(err)
		return Result{Repository: repo, Error: err, Kind: kind}
	}

	res := Result{Repository: repo, Succeeded: true, Issue: e}
	assigned, err := o.resolver.Assign(ctx, org, repo, e.Number)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("repository", repo).Msg("coding agent assignment failed")
	case !assigned:
		log.Warn().Str("repository", repo).Msg("coding agent not available")
	default:
		res.AgentAssigned = true
	}

	return res
}

func (o *Orchestrator) record(s *Summary, r Result, total int) {
	s.add(r)
	if o.observer != nil {
		o.observer(len(s.Results), total, r)
	}
}

// abandon records every remaining repository as failed with err.
func (o *Orchestrator) abandon(s *Summary, remaining []string, err error, total int) {
	kind, _ := client.Classify(err)
	for _, repo := range remaining {
		o.record(s, Result{Repository: repo, Error: err, Kind: kind}, total)
	}
}

func uniqueNames(names []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}

	return out
}
