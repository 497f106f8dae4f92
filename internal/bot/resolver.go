// Package bot finds the coding agent among a repository's assignable actors
// and assigns it to an issue.
package bot

import (
	"context"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/domain/issue"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const AgentLogin = "copilot-swe-agent"

type Client interface {
	issue.Getter
	SuggestedActors(ctx context.Context, owner, repo, after string) (*domain.ActorPage, error)
	ReplaceActorsForAssignable(ctx context.Context, assignableID string, actorIDs []string) error
}

type Resolver struct {
	client Client
	login  string
}

func NewResolver(c Client) *Resolver {
	return &Resolver{client: c, login: AgentLogin}
}

// Find pages through the suggested actors of the repository until the agent
// login shows up.
func (r *Resolver) Find(ctx context.Context, owner, repo string) (*domain.Actor, error) {
	after := ""
	for {
		page, err := r.client.SuggestedActors(ctx, owner, repo, after)
		if err != nil {
			return nil, errors.Wrap(err, "list suggested actors")
		}

		for _, a := range page.Actors {
			if a.Login == r.login {
				actor := a
				return &actor, nil
			}
		}

		if !page.HasNextPage || page.EndCursor == "" {
			return nil, nil
		}
		after = page.EndCursor
	}
}

// Assign makes the agent the only assignee of the issue. It returns false
// without an error when the agent is not assignable in the repository.
func (r *Resolver) Assign(ctx context.Context, owner, repo string, number issue.EntityID) (bool, error) {
	e, err := r.client.GetIssue(ctx, owner, repo, number)
	if err != nil {
		return false, errors.Wrap(err, "get issue")
	}

	actor, err := r.Find(ctx, owner, repo)
	if err != nil {
		return false, err
	}
	if actor == nil {
		log.Debug().Str("repository", repo).Msg("coding agent is not assignable")
		return false, nil
	}

	if err := r.client.ReplaceActorsForAssignable(ctx, e.NodeID, []string{actor.ID}); err != nil {
		return false, errors.Wrap(err, "assign coding agent")
	}

	return true, nil
}
