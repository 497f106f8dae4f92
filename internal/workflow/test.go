package workflow

import (
	"context"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/domain/issue"
)

// MockClient fails issue creation or agent assignment per repository.
type MockClient struct {
	Repositories []domain.Repository
	ListErr      error
	CreateErrs   map[string]error
	AssignErrs   map[string]error
	NoAgent      bool

	ListCalls int
	Created   []string
	Assigned  []string
}

func (m *MockClient) ListOrganizationRepositories(ctx context.Context, org string, page, perPage int) ([]domain.Repository, error) {
	m.ListCalls++
	return m.Repositories, m.ListErr
}

func (m *MockClient) CreateIssue(ctx context.Context, owner, repo string, d *issue.Draft) (*issue.Entity, error) {
	if err := m.CreateErrs[repo]; err != nil {
		return nil, err
	}
	m.Created = append(m.Created, repo)

	return &issue.Entity{Number: issue.EntityID(len(m.Created)), Title: d.Title, Repository: repo}, nil
}

func (m *MockClient) GetIssue(ctx context.Context, owner, repo string, number issue.EntityID) (*issue.Entity, error) {
	return &issue.Entity{Number: number, NodeID: repo + "-node", Repository: repo}, nil
}

func (m *MockClient) SuggestedActors(ctx context.Context, owner, repo, after string) (*domain.ActorPage, error) {
	if m.NoAgent {
		return &domain.ActorPage{}, nil
	}

	return &domain.ActorPage{Actors: []domain.Actor{{ID: "BOT", Login: "copilot-swe-agent"}}}, nil
}

func (m *MockClient) ReplaceActorsForAssignable(ctx context.Context, assignableID string, actorIDs []string) error {
	for repo, err := range m.AssignErrs {
		if assignableID == repo+"-node" {
			return err
		}
	}
	m.Assigned = append(m.Assigned, assignableID)

	return nil
}
