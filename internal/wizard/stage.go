package wizard

import (
	"fmt"
	"strings"
)

type Stage int

const (
	StageUseCase Stage = iota + 1
	StageAuth
	StageRepositories
	StagePrompt
)

var Stages = []Stage{StageUseCase, StageAuth, StageRepositories, StagePrompt}

func (s Stage) IsValid() bool {
	return s >= StageUseCase && s <= StagePrompt
}

// Fragment is the stable identifier used by --step and history entries.
func (s Stage) Fragment() string {
	switch s {
	case StageUseCase:
		return "use-case"
	case StageAuth:
		return "auth"
	case StageRepositories:
		return "repositories"
	case StagePrompt:
		return "prompt"
	}

	return ""
}

func (s Stage) Title() string {
	switch s {
	case StageUseCase:
		return "Choose a use case"
	case StageAuth:
		return "Connect to GitHub"
	case StageRepositories:
		return "Select repositories"
	case StagePrompt:
		return "Review and run"
	}

	return ""
}

func (s Stage) String() string {
	return fmt.Sprintf("%d:%s", int(s), s.Fragment())
}

// ParseFragment accepts a fragment with or without a leading '#'.
func ParseFragment(f string) (Stage, bool) {
	f = strings.TrimPrefix(strings.TrimSpace(f), "#")
	for _, s := range Stages {
		if s.Fragment() == f {
			return s, true
		}
	}

	return 0, false
}

// GateError is returned when a stage is entered before its prerequisites
// are met.
type GateError struct {
	Stage       Stage
	Requirement string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("Please complete %s first", e.Requirement)
}
