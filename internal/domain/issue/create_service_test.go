package issue

import (
	"context"
	"errors"
	"testing"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/stretchr/testify/assert"
)

func Test_CreateService_Create(t *testing.T) {
	t.Run("Creates an issue with the derived draft", func(t *testing.T) {
		m := &MockIssueCreator{}
		s := NewCreateService(m)
		e, err := s.Create(context.Background(), &CreateOptions{
			Owner:      "octo",
			Repository: "api",
			UseCase:    domain.UseCaseDocumentation,
			Prompt:     "Write <docs> & guides",
		})

		assert.NoError(t, err)
		assert.Equal(t, "api", e.Repository)
		assert.Len(t, m.Drafts, 1)
		assert.Equal(t, "Improve Documentation: Copilot agent task", m.Drafts[0].Title)
		assert.Equal(t, "Write docs  guides", m.Drafts[0].Body)
		assert.Equal(t, []string{"copilot-agent", "documentation"}, m.Drafts[0].Labels)
	})

	t.Run("Returns the creator error", func(t *testing.T) {
		vErr := errors.New("create failed")
		s := NewCreateService(&MockIssueCreator{Err: vErr})
		e, err := s.Create(context.Background(), &CreateOptions{UseCase: domain.UseCaseTests})

		assert.Nil(t, e)
		assert.EqualError(t, err, vErr.Error())
	})
}
