package domain

import (
	"testing"

	"github.com/mageroni/Agent-Quickstart/internal/errcodes"
	"github.com/stretchr/testify/assert"
)

func TestParseUseCase(t *testing.T) {
	t.Run("accepts every known use case", func(t *testing.T) {
		for _, u := range UseCases {
			parsed, err := ParseUseCase(string(u))
			assert.NoError(t, err)
			assert.Equal(t, u, parsed)
			assert.NotEmpty(t, parsed.DisplayName())
		}
	})

	t.Run("is case insensitive and trims input", func(t *testing.T) {
		u, err := ParseUseCase("  Technical-Debt ")
		assert.NoError(t, err)
		assert.Equal(t, UseCaseTechnicalDebt, u)
	})

	t.Run("fails on empty input", func(t *testing.T) {
		_, err := ParseUseCase("")
		assert.ErrorIs(t, err, errcodes.ErrMissingUseCase)
	})

	t.Run("fails on unknown input", func(t *testing.T) {
		_, err := ParseUseCase("security")
		assert.ErrorIs(t, err, errcodes.ErrUnknownUseCase)
	})
}
