package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mageroni/Agent-Quickstart/internal/domain"
	"github.com/tidwall/gjson"
)

const searchPageSize = 50

func parseRepository(v gjson.Result) domain.Repository {
	return domain.Repository{
		Name:        v.Get("name").String(),
		FullName:    v.Get("full_name").String(),
		Description: v.Get("description").String(),
		Private:     v.Get("private").Bool(),
		Archived:    v.Get("archived").Bool(),
		Language:    v.Get("language").String(),
		URL:         v.Get("html_url").String(),
		Updated:     v.Get("updated_at").Time(),
	}
}

func parseRepositories(list gjson.Result) []domain.Repository {
	repos := []domain.Repository{}
	list.ForEach(func(key, value gjson.Result) bool {
		repos = append(repos, parseRepository(value))
		return true
	})

	return repos
}

// ListOrganizationRepositories fetches a single page of the organization's
// repositories, most recently updated first.
func (c *GithubClient) ListOrganizationRepositories(
	ctx context.Context,
	org string,
	page int,
	perPage int,
) ([]domain.Repository, error) {
	r, err := c.RestRequest(ctx, http.MethodGet,
		fmt.Sprintf("/orgs/%s/repos", url.PathEscape(org)),
		&RequestOptions{
			Query: map[string]string{
				"per_page": fmt.Sprint(perPage),
				"page":     fmt.Sprint(page),
				"sort":     "updated",
			},
		},
	)
	if err != nil {
		return nil, err
	}

	return parseRepositories(r), nil
}

// SearchRepositories runs a full-text repository search scoped to org.
func (c *GithubClient) SearchRepositories(
	ctx context.Context,
	org string,
	term string,
) ([]domain.Repository, error) {
	r, err := c.RestRequest(ctx, http.MethodGet, "/search/repositories",
		&RequestOptions{
			Query: map[string]string{
				"q":        fmt.Sprintf("%s org:%s", term, org),
				"per_page": fmt.Sprint(searchPageSize),
			},
		},
	)
	if err != nil {
		return nil, err
	}

	return parseRepositories(r.Get("items")), nil
}

func parseProperty(v gjson.Result) domain.Property {
	p := domain.Property{
		Name:        v.Get("property_name").String(),
		ValueType:   domain.PropertyValueType(v.Get("value_type").String()),
		Required:    v.Get("required").Bool(),
		Description: v.Get("description").String(),
	}

	if dv := v.Get("default_value"); dv.IsArray() {
		var values []string
		for _, d := range dv.Array() {
			values = append(values, d.String())
		}
		p.DefaultValue = strings.Join(values, ",")
	} else {
		p.DefaultValue = dv.String()
	}

	for _, av := range v.Get("allowed_values").Array() {
		p.AllowedValues = append(p.AllowedValues, av.String())
	}

	return p
}

// GetPropertySchema fetches the organization's custom property definitions.
func (c *GithubClient) GetPropertySchema(ctx context.Context, org string) ([]domain.Property, error) {
	r, err := c.RestRequest(ctx, http.MethodGet,
		fmt.Sprintf("/orgs/%s/properties/schema", url.PathEscape(org)),
		nil,
	)
	if err != nil {
		return nil, err
	}

	props := []domain.Property{}
	r.ForEach(func(key, value gjson.Result) bool {
		props = append(props, parseProperty(value))
		return true
	})

	return props, nil
}

type User struct {
	Login string
	Name  string
	Type  string
}

func (c *GithubClient) CurrentUser(ctx context.Context) (*User, error) {
	r, err := c.RestRequest(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return nil, err
	}

	return &User{
		Login: r.Get("login").String(),
		Name:  r.Get("name").String(),
		Type:  r.Get("type").String(),
	}, nil
}
