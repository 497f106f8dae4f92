package catalog

import (
	"context"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
)

// MockRepositoryClient serves repositories from memory and counts calls.
type MockRepositoryClient struct {
	Repositories []domain.Repository
	// FailPage makes the given page number fail with ListErr.
	FailPage    int
	ListErr     error
	ListCalls   int
	Found       []domain.Repository
	SearchErr   error
	SearchCalls int
}

func (m *MockRepositoryClient) ListOrganizationRepositories(
	ctx context.Context,
	org string,
	page int,
	perPage int,
) ([]domain.Repository, error) {
	m.ListCalls++
	if m.FailPage == page {
		return nil, m.ListErr
	}

	start := (page - 1) * perPage
	if start >= len(m.Repositories) {
		return []domain.Repository{}, nil
	}
	end := start + perPage
	if end > len(m.Repositories) {
		end = len(m.Repositories)
	}

	return m.Repositories[start:end], nil
}

func (m *MockRepositoryClient) SearchRepositories(ctx context.Context, org, term string) ([]domain.Repository, error) {
	m.SearchCalls++
	return m.Found, m.SearchErr
}

type MockPropertySchemaGetter struct {
	Properties []domain.Property
	Err        error
}

func (m *MockPropertySchemaGetter) GetPropertySchema(ctx context.Context, org string) ([]domain.Property, error) {
	return m.Properties, m.Err
}
