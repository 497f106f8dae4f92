package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/domain/issue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Assign(t *testing.T) {
	t.Run("assigns the agent found on a later page", func(t *testing.T) {
		m := &MockClient{
			Issue: &issue.Entity{Number: 3, NodeID: "I_3"},
			Pages: map[string]*domain.ActorPage{
				"": {
					Actors:      []domain.Actor{{ID: "BOT_1", Login: "dependabot"}},
					HasNextPage: true,
					EndCursor:   "c1",
				},
				"c1": {
					Actors: []domain.Actor{{ID: "BOT_2", Login: AgentLogin}},
				},
			},
		}

		ok, err := NewResolver(m).Assign(context.Background(), "octo", "api", 3)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"", "c1"}, m.Cursors)
		assert.Equal(t, "I_3", m.AssignedTo)
		assert.Equal(t, []string{"BOT_2"}, m.AssignedIDs)
	})

	t.Run("reports false when the agent is not assignable", func(t *testing.T) {
		m := &MockClient{
			Issue: &issue.Entity{NodeID: "I_3"},
			Pages: map[string]*domain.ActorPage{
				"": {Actors: []domain.Actor{{ID: "BOT_1", Login: "dependabot"}}},
			},
		}

		ok, err := NewResolver(m).Assign(context.Background(), "octo", "api", 3)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, m.AssignedIDs)
	})

	t.Run("propagates API errors", func(t *testing.T) {
		vErr := errors.New("forbidden")

		_, err := NewResolver(&MockClient{IssueErr: vErr}).Assign(context.Background(), "octo", "api", 3)
		assert.ErrorIs(t, err, vErr)

		_, err = NewResolver(&MockClient{
			Issue:     &issue.Entity{NodeID: "I_3"},
			ActorsErr: vErr,
		}).Assign(context.Background(), "octo", "api", 3)
		assert.ErrorIs(t, err, vErr)

		_, err = NewResolver(&MockClient{
			Issue:     &issue.Entity{NodeID: "I_3"},
			Pages:     map[string]*domain.ActorPage{"": {Actors: []domain.Actor{{ID: "B", Login: AgentLogin}}}},
			AssignErr: vErr,
		}).Assign(context.Background(), "octo", "api", 3)
		assert.ErrorIs(t, err, vErr)
	})
}
