package domain

import (
	"strings"
	"time"

	"github.com/mageroni/Agent-Quickstart/internal/errcodes"
)

type UseCase string

const (
	UseCaseTests         UseCase = "tests"
	UseCaseDocumentation UseCase = "documentation"
	UseCaseTechnicalDebt UseCase = "technical-debt"
)

var UseCases = []UseCase{
	UseCaseTests,
	UseCaseDocumentation,
	UseCaseTechnicalDebt,
}

func (u UseCase) IsValid() bool {
	for _, v := range UseCases {
		if u == v {
			return true
		}
	}

	return false
}

func (u UseCase) DisplayName() string {
	switch u {
	case UseCaseTests:
		return "Increase Test Coverage"
	case UseCaseDocumentation:
		return "Improve Documentation"
	case UseCaseTechnicalDebt:
		return "Reduce Technical Debt"
	}

	return ""
}

func (u UseCase) Description() string {
	switch u {
	case UseCaseTests:
		return "Ask the agent to add missing unit and integration tests"
	case UseCaseDocumentation:
		return "Ask the agent to write READMEs, guides and code comments"
	case UseCaseTechnicalDebt:
		return "Ask the agent to refactor and clean up outdated code"
	}

	return ""
}

func ParseUseCase(s string) (UseCase, error) {
	u := UseCase(strings.ToLower(strings.TrimSpace(s)))
	if u == "" {
		return "", errcodes.ErrMissingUseCase
	}
	if !u.IsValid() {
		return "", errcodes.ErrUnknownUseCase
	}

	return u, nil
}

type Repository struct {
	Name        string
	FullName    string
	Description string
	Private     bool
	Archived    bool
	Language    string
	URL         string
	Updated     time.Time
}

type PropertyValueType string

const (
	PropertyString       PropertyValueType = "string"
	PropertySingleSelect PropertyValueType = "single_select"
	PropertyMultiSelect  PropertyValueType = "multi_select"
	PropertyTrueFalse    PropertyValueType = "true_false"
)

// Property is one entry of an organization's custom property schema.
type Property struct {
	Name          string
	ValueType     PropertyValueType
	Required      bool
	DefaultValue  string
	Description   string
	AllowedValues []string
}

// Actor is an assignable user or bot returned by the suggested actors query.
type Actor struct {
	ID    string
	Login string
}

type ActorPage struct {
	Actors      []Actor
	HasNextPage bool
	EndCursor   string
}
