package errcodes

import "errors"

var (
	ErrMissingUseCase         = errors.New("use case is missing")
	ErrUnknownUseCase         = errors.New("use case is unknown, expected (tests, documentation, technical-debt)")
	ErrInvalidOrganization    = errors.New("organization name is invalid")
	ErrInvalidToken           = errors.New("token must be at least 20 alphanumeric or underscore characters")
	ErrEmptyPrompt            = errors.New("prompt is empty")
	ErrEmptySelection         = errors.New("no repositories or properties selected")
	ErrNoTargetRepositories   = errors.New("no repositories found to process")
	ErrUnknownSelectionMethod = errors.New("selection method is unknown, expected (all, selected, properties)")
	ErrInvalidPropertyFilter  = errors.New("property filter must be in the form of 'name=value'")
)

// IsValidation reports whether err is one of the input validation errors
// above. Validation errors block a transition or a run and never reach the
// network.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrMissingUseCase,
		ErrUnknownUseCase,
		ErrInvalidOrganization,
		ErrInvalidToken,
		ErrEmptyPrompt,
		ErrEmptySelection,
		ErrUnknownSelectionMethod,
		ErrInvalidPropertyFilter,
	} {
		if errors.Is(err, v) {
			return true
		}
	}

	return false
}
