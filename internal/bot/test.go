package bot

import (
	"context"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/domain/issue"
)

// MockClient serves actor pages keyed by cursor, "" being the first page.
type MockClient struct {
	Issue       *issue.Entity
	IssueErr    error
	Pages       map[string]*domain.ActorPage
	ActorsErr   error
	AssignErr   error
	Cursors     []string
	AssignedTo  string
	AssignedIDs []string
}

func (m *MockClient) GetIssue(ctx context.Context, owner, repo string, number issue.EntityID) (*issue.Entity, error) {
	return m.Issue, m.IssueErr
}

func (m *MockClient) SuggestedActors(ctx context.Context, owner, repo, after string) (*domain.ActorPage, error) {
	m.Cursors = append(m.Cursors, after)
	if m.ActorsErr != nil {
		return nil, m.ActorsErr
	}
	if p, ok := m.Pages[after]; ok {
		return p, nil
	}

	return &domain.ActorPage{}, nil
}

func (m *MockClient) ReplaceActorsForAssignable(ctx context.Context, assignableID string, actorIDs []string) error {
	if m.AssignErr != nil {
		return m.AssignErr
	}
	m.AssignedTo = assignableID
	m.AssignedIDs = actorIDs

	return nil
}
