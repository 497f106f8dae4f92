// Package selection tracks the repositories and custom property filters
// chosen as workflow targets.
package selection

import (
	"strings"

	"github.com/mageroni/Agent-Quickstart/internal/errcodes"
	"golang.org/x/exp/slices"
)

type Method string

const (
	MethodAll        Method = "all"
	MethodSelected   Method = "selected"
	MethodProperties Method = "properties"
)

var Methods = []Method{MethodAll, MethodSelected, MethodProperties}

func (m Method) IsValid() bool {
	return slices.Contains(Methods, m)
}

func (m Method) DisplayName() string {
	switch m {
	case MethodAll:
		return "All repositories"
	case MethodSelected:
		return "Selected repositories"
	case MethodProperties:
		return "Repositories by custom property"
	}

	return ""
}

func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", errcodes.ErrUnknownSelectionMethod
	}

	return m, nil
}

// PropertyFilter is a chosen (custom property, value) pair.
type PropertyFilter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ParsePropertyFilter reads a "name=value" pair.
func ParsePropertyFilter(s string) (PropertyFilter, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return PropertyFilter{}, errcodes.ErrInvalidPropertyFilter
	}

	return PropertyFilter{Name: name, Value: strings.TrimSpace(value)}, nil
}

// Selection keeps insertion order for both repositories and properties.
// Repository names and property names are unique.
type Selection struct {
	method       Method
	repositories []string
	properties   []PropertyFilter
}

func New() *Selection {
	return &Selection{method: MethodSelected}
}

func (s *Selection) Method() Method {
	return s.method
}

func (s *Selection) SetMethod(m Method) error {
	if !m.IsValid() {
		return errcodes.ErrUnknownSelectionMethod
	}
	s.method = m

	return nil
}

func (s *Selection) Has(name string) bool {
	return slices.Contains(s.repositories, name)
}

// Add appends name unless it is already selected or empty.
func (s *Selection) Add(name string) bool {
	if name == "" || s.Has(name) {
		return false
	}
	s.repositories = append(s.repositories, name)

	return true
}

func (s *Selection) Remove(name string) bool {
	i := slices.Index(s.repositories, name)
	if i < 0 {
		return false
	}
	s.repositories = slices.Delete(s.repositories, i, i+1)

	return true
}

// Toggle flips the selection of name and reports whether it is now selected.
func (s *Selection) Toggle(name string) bool {
	if s.Remove(name) {
		return false
	}

	return s.Add(name)
}

// SelectPage selects every name of a visible page. When all of them are
// already selected they are deselected instead.
func (s *Selection) SelectPage(names []string) {
	all := len(names) > 0
	for _, n := range names {
		if !s.Has(n) {
			all = false
			break
		}
	}

	for _, n := range names {
		if all {
			s.Remove(n)
		} else {
			s.Add(n)
		}
	}
}

func (s *Selection) Repositories() []string {
	return slices.Clone(s.repositories)
}

func (s *Selection) ClearRepositories() {
	s.repositories = nil
}

// SetProperty selects value for the property, replacing a previous value in
// place.
func (s *Selection) SetProperty(name, value string) {
	if name == "" {
		return
	}

	i := slices.IndexFunc(s.properties, func(p PropertyFilter) bool {
		return p.Name == name
	})
	if i >= 0 {
		s.properties[i].Value = value
		return
	}
	s.properties = append(s.properties, PropertyFilter{Name: name, Value: value})
}

func (s *Selection) RemoveProperty(name string) bool {
	i := slices.IndexFunc(s.properties, func(p PropertyFilter) bool {
		return p.Name == name
	})
	if i < 0 {
		return false
	}
	s.properties = slices.Delete(s.properties, i, i+1)

	return true
}

func (s *Selection) Properties() []PropertyFilter {
	return slices.Clone(s.properties)
}

func (s *Selection) ClearProperties() {
	s.properties = nil
}

// HasEffectiveSelection reports whether the active method has something to
// target.
func (s *Selection) HasEffectiveSelection() bool {
	switch s.method {
	case MethodAll:
		return true
	case MethodSelected:
		return len(s.repositories) > 0
	case MethodProperties:
		return len(s.properties) > 0
	}

	return false
}

func (s *Selection) Reset() {
	*s = *New()
}
