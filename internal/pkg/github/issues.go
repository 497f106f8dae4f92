package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/domain/issue"
	"github.com/tidwall/gjson"
)

func parseIssue(repo string, v gjson.Result) *issue.Entity {
	e := &issue.Entity{
		Number:     issue.EntityID(v.Get("number").Int()),
		NodeID:     v.Get("node_id").String(),
		Title:      v.Get("title").String(),
		URL:        v.Get("html_url").String(),
		Repository: repo,
	}
	v.Get("labels.#.name").ForEach(func(key, value gjson.Result) bool {
		e.Labels = append(e.Labels, value.String())
		return true
	})

	return e
}

func issuesPath(owner, repo string) string {
	return fmt.Sprintf("/repos/%s/%s/issues", url.PathEscape(owner), url.PathEscape(repo))
}

func (c *GithubClient) CreateIssue(
	ctx context.Context,
	owner string,
	repo string,
	d *issue.Draft,
) (*issue.Entity, error) {
	r, err := c.RestRequest(ctx, http.MethodPost, issuesPath(owner, repo), &RequestOptions{
		Body: d,
	})
	if err != nil {
		return nil, err
	}

	return parseIssue(repo, r), nil
}

func (c *GithubClient) GetIssue(
	ctx context.Context,
	owner string,
	repo string,
	number issue.EntityID,
) (*issue.Entity, error) {
	r, err := c.RestRequest(ctx, http.MethodGet,
		fmt.Sprintf("%s/%d", issuesPath(owner, repo), number),
		nil,
	)
	if err != nil {
		return nil, err
	}

	return parseIssue(repo, r), nil
}

const suggestedActorsQuery = `query($owner: String!, $name: String!, $after: String) {
  repository(owner: $owner, name: $name) {
    suggestedActors(first: 100, after: $after, capabilities: [CAN_BE_ASSIGNED]) {
      nodes {
        ... on Bot {
          id
          login
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}`

// SuggestedActors returns one page of bot actors assignable in the
// repository. An empty after starts from the first page.
func (c *GithubClient) SuggestedActors(
	ctx context.Context,
	owner string,
	repo string,
	after string,
) (*domain.ActorPage, error) {
	vars := map[string]interface{}{
		"owner": owner,
		"name":  repo,
		"after": nil,
	}
	if after != "" {
		vars["after"] = after
	}

	data, err := c.GraphQLRequest(ctx, suggestedActorsQuery, vars)
	if err != nil {
		return nil, err
	}

	actors := data.Get("repository.suggestedActors")
	page := &domain.ActorPage{
		HasNextPage: actors.Get("pageInfo.hasNextPage").Bool(),
		EndCursor:   actors.Get("pageInfo.endCursor").String(),
	}
	actors.Get("nodes").ForEach(func(key, value gjson.Result) bool {
		// Non-bot nodes come back as empty objects.
		if id := value.Get("id").String(); id != "" {
			page.Actors = append(page.Actors, domain.Actor{
				ID:    id,
				Login: value.Get("login").String(),
			})
		}
		return true
	})

	return page, nil
}

const replaceActorsMutation = `mutation($assignableId: ID!, $actorIds: [ID!]!) {
  replaceActorsForAssignable(input: {assignableId: $assignableId, actorIds: $actorIds}) {
    assignable {
      ... on Issue {
        id
      }
    }
  }
}`

// ReplaceActorsForAssignable sets the assignees of an issue or pull request
// to exactly actorIDs.
func (c *GithubClient) ReplaceActorsForAssignable(
	ctx context.Context,
	assignableID string,
	actorIDs []string,
) error {
	_, err := c.GraphQLRequest(ctx, replaceActorsMutation, map[string]interface{}{
		"assignableId": assignableID,
		"actorIds":     actorIDs,
	})

	return err
}
