// Package session owns the state of one wizard run. All inputs go through
// the same validating setters, whether typed by the user or restored from a
// history snapshot.
package session

import (
	"encoding/json"
	"strings"

	"github.com/mageroni/Agent-Quickstart/internal/catalog"
	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/mageroni/Agent-Quickstart/internal/errcodes"
	"github.com/mageroni/Agent-Quickstart/internal/selection"
	"github.com/mageroni/Agent-Quickstart/internal/validation"
	"github.com/pkg/errors"
)

type Session struct {
	useCase      domain.UseCase
	organization string
	token        string
	prompt       string
	selection    *selection.Selection
	repositories *catalog.RepositoryCatalog
	properties   *catalog.PropertyCatalog
}

func New() *Session {
	return &Session{selection: selection.New()}
}

func (s *Session) UseCase() domain.UseCase {
	return s.useCase
}

// SetUseCase accepts only known use cases. An empty value clears the choice.
func (s *Session) SetUseCase(u domain.UseCase) error {
	if u != "" && !u.IsValid() {
		return errors.Wrapf(errcodes.ErrUnknownUseCase, "use case %q", u)
	}
	s.useCase = u

	return nil
}

// SetOrganizationInput stores the raw organization field.
func (s *Session) SetOrganizationInput(v string) {
	s.organization = v
}

func (s *Session) OrganizationInput() string {
	return s.organization
}

// Organization returns the sanitized organization name, or "" while the
// input is invalid.
func (s *Session) Organization() string {
	if !validation.IsValidOrganizationName(s.organization) {
		return ""
	}

	return strings.TrimSpace(validation.Sanitize(s.organization))
}

func (s *Session) SetTokenInput(v string) {
	s.token = v
}

func (s *Session) TokenInput() string {
	return s.token
}

// Token returns the trimmed token, or "" while the input is invalid.
func (s *Session) Token() string {
	if !validation.IsValidToken(s.token) {
		return ""
	}

	return strings.TrimSpace(s.token)
}

// HasCredentials reports whether both organization and token are valid.
func (s *Session) HasCredentials() bool {
	return s.Organization() != "" && s.Token() != ""
}

func (s *Session) Prompt() string {
	return s.prompt
}

func (s *Session) SetPrompt(p string) {
	s.prompt = p
}

func (s *Session) Selection() *selection.Selection {
	return s.selection
}

// AttachCatalogs installs the catalogs loaded for the current organization.
func (s *Session) AttachCatalogs(r *catalog.RepositoryCatalog, p *catalog.PropertyCatalog) {
	s.repositories = r
	s.properties = p
}

func (s *Session) RepositoryCatalog() *catalog.RepositoryCatalog {
	return s.repositories
}

func (s *Session) PropertyCatalog() *catalog.PropertyCatalog {
	return s.properties
}

// Reset wipes every input, the selection and the loaded catalogs.
func (s *Session) Reset() {
	*s = *New()
}

// Snapshot is the serializable part of a session recorded with every
// history entry.
type Snapshot struct {
	Stage        int                        `json:"stage"`
	UseCase      domain.UseCase             `json:"useCase,omitempty"`
	Organization string                     `json:"organization,omitempty"`
	Token        string                     `json:"token,omitempty"`
	Method       selection.Method           `json:"method,omitempty"`
	Repositories []string                   `json:"repositories,omitempty"`
	Properties   []selection.PropertyFilter `json:"properties,omitempty"`
	Prompt       string                     `json:"prompt,omitempty"`
}

func (s *Session) Snapshot(stage int) Snapshot {
	return Snapshot{
		Stage:        stage,
		UseCase:      s.useCase,
		Organization: s.organization,
		Token:        s.token,
		Method:       s.selection.Method(),
		Repositories: s.selection.Repositories(),
		Properties:   s.selection.Properties(),
		Prompt:       s.prompt,
	}
}

func (sn Snapshot) Encode() (string, error) {
	b, err := json.Marshal(sn)
	if err != nil {
		return "", errors.Wrap(err, "encode snapshot")
	}

	return string(b), nil
}

func DecodeSnapshot(v string) (Snapshot, error) {
	var sn Snapshot
	if err := json.Unmarshal([]byte(v), &sn); err != nil {
		return Snapshot{}, errors.Wrap(err, "decode snapshot")
	}

	return sn, nil
}

// Restore rebuilds the session from sn. Fields failing validation are
// dropped: an unknown use case is cleared, an invalid organization or token
// is restored as an empty input, an unknown method falls back to the
// default one. Catalogs are kept when the organization is unchanged.
func (s *Session) Restore(sn Snapshot) {
	catalogOrg := s.Organization()
	repos, props := s.repositories, s.properties
	s.Reset()

	if err := s.SetUseCase(sn.UseCase); err != nil {
		s.useCase = ""
	}

	if validation.IsValidOrganizationName(sn.Organization) {
		s.SetOrganizationInput(sn.Organization)
	}
	if validation.IsValidToken(sn.Token) {
		s.SetTokenInput(sn.Token)
	}

	_ = s.selection.SetMethod(sn.Method)
	for _, r := range sn.Repositories {
		s.selection.Add(validation.Sanitize(r))
	}
	for _, p := range sn.Properties {
		s.selection.SetProperty(validation.Sanitize(p.Name), validation.Sanitize(p.Value))
	}

	s.prompt = sn.Prompt

	if catalogOrg != "" && catalogOrg == s.Organization() {
		s.AttachCatalogs(repos, props)
	}
}
