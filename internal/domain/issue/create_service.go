package issue

import (
	"context"
	"fmt"

	"github.com/mageroni/Agent-Quickstart/internal/validation"
)

const AgentLabel = "copilot-agent"

type CreateService struct {
	creator Creator
}

func NewCreateService(c Creator) *CreateService {
	return &CreateService{c}
}

func (cs *CreateService) Create(ctx context.Context, o *CreateOptions) (*Entity, error) {
	return cs.creator.CreateIssue(ctx, o.Owner, o.Repository, NewDraft(o))
}

// NewDraft derives the issue title, body and labels for a use case.
func NewDraft(o *CreateOptions) *Draft {
	return &Draft{
		Title:  fmt.Sprintf("%s: Copilot agent task", o.UseCase.DisplayName()),
		Body:   validation.Sanitize(o.Prompt),
		Labels: []string{AgentLabel, string(o.UseCase)},
	}
}
