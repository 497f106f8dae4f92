package catalog

import (
	"context"
	"strings"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/rs/zerolog/log"
)

type PropertySchemaGetter interface {
	GetPropertySchema(ctx context.Context, org string) ([]domain.Property, error)
}

// ExampleProperties is served when the organization's schema cannot be read.
var ExampleProperties = []domain.Property{
	{
		Name:          "team",
		ValueType:     domain.PropertySingleSelect,
		Description:   "Owning team",
		AllowedValues: []string{"platform", "frontend", "backend", "data"},
	},
	{
		Name:          "environment",
		ValueType:     domain.PropertySingleSelect,
		Description:   "Deployment environment",
		AllowedValues: []string{"production", "staging", "development"},
	},
	{
		Name:          "service-tier",
		ValueType:     domain.PropertySingleSelect,
		Description:   "Criticality of the service",
		AllowedValues: []string{"tier-1", "tier-2", "tier-3"},
	},
	{
		Name:          "compliance",
		ValueType:     domain.PropertyTrueFalse,
		Description:   "Subject to compliance review",
		AllowedValues: []string{"true", "false"},
	},
	{
		Name:        "language",
		ValueType:   domain.PropertyString,
		Description: "Primary programming language",
	},
}

type PropertyCatalog struct {
	client   PropertySchemaGetter
	view     *View[domain.Property]
	fellBack bool
}

func NewPropertyCatalog(c PropertySchemaGetter, viewPageSize int) *PropertyCatalog {
	return &PropertyCatalog{
		client: c,
		view:   NewView(viewPageSize, matchProperty),
	}
}

func matchProperty(p domain.Property, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

func (c *PropertyCatalog) View() *View[domain.Property] {
	return c.view
}

// FellBack reports whether the last Load served ExampleProperties.
func (c *PropertyCatalog) FellBack() bool {
	return c.fellBack
}

// Load reads the organization's custom property schema. It never fails: on
// any error the example properties are served instead.
func (c *PropertyCatalog) Load(ctx context.Context, org string) []domain.Property {
	props, err := c.client.GetPropertySchema(ctx, org)
	if err != nil {
		log.Warn().Err(err).Str("org", org).Msg("custom properties unavailable, using examples")
		props = append([]domain.Property{}, ExampleProperties...)
		c.fellBack = true
	} else {
		c.fellBack = false
	}

	c.view.SetItems(props)

	return props
}

func (c *PropertyCatalog) Search(term string) []domain.Property {
	c.view.Filter(strings.TrimSpace(term))
	return c.view.Filtered()
}

// Find returns the property called name from the loaded catalog.
func (c *PropertyCatalog) Find(name string) (domain.Property, bool) {
	for _, p := range c.view.Items() {
		if p.Name == name {
			return p, true
		}
	}

	return domain.Property{}, false
}
