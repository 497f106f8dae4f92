package issue

import (
	"context"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
)

type Creator interface {
	CreateIssue(ctx context.Context, owner, repo string, d *Draft) (*Entity, error)
}

type Getter interface {
	GetIssue(ctx context.Context, owner, repo string, number EntityID) (*Entity, error)
}

type CreateOptions struct {
	Owner      string
	Repository string
	UseCase    domain.UseCase
	Prompt     string
}
