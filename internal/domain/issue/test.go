package issue

import "context"

type MockIssueCreator struct {
	Drafts []*Draft
	Err    error
}

func (m *MockIssueCreator) CreateIssue(ctx context.Context, owner, repo string, d *Draft) (*Entity, error) {
	m.Drafts = append(m.Drafts, d)
	if m.Err != nil {
		return nil, m.Err
	}

	return &Entity{Number: EntityID(len(m.Drafts)), Title: d.Title, Repository: repo}, nil
}
