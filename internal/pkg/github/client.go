package github

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mageroni/Agent-Quickstart/internal/pkg/client"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const (
	DefaultAPIURL     = "https://api.github.com"
	DefaultGraphQLURL = "https://api.github.com/graphql"
	acceptHeader      = "application/vnd.github.v3+json"
)

type Options struct {
	Token      string
	APIURL     string
	GraphQLURL string
	Timeout    time.Duration
	Transport  http.RoundTripper
}

// GithubClient issues authenticated REST and GraphQL calls. It keeps no
// cache, caching lives with the callers.
type GithubClient struct {
	http       *client.Client
	token      string
	apiURL     string
	graphqlURL string
}

type RequestOptions struct {
	Query map[string]string
	Body  interface{}
}

func New(o *Options) *GithubClient {
	apiURL := strings.TrimSuffix(o.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	graphqlURL := o.GraphQLURL
	if graphqlURL == "" {
		graphqlURL = DefaultGraphQLURL
	}

	return &GithubClient{
		http: client.New(&client.Options{
			Timeout:   o.Timeout,
			Transport: o.Transport,
		}),
		token:      strings.TrimSpace(o.Token),
		apiURL:     apiURL,
		graphqlURL: graphqlURL,
	}
}

func (c *GithubClient) missingToken(url string) error {
	if c.token != "" {
		return nil
	}

	return &client.APIError{
		Status:  http.StatusUnauthorized,
		URL:     url,
		Message: "no GitHub token set",
	}
}

func (c *GithubClient) RestRequest(
	ctx context.Context,
	method string,
	path string,
	o *RequestOptions,
) (gjson.Result, error) {
	url := c.apiURL + path
	if err := c.missingToken(url); err != nil {
		return gjson.Result{}, err
	}
	if o == nil {
		o = &RequestOptions{}
	}

	log.WithFields(log.Fields{
		"method": method,
		"path":   path,
	}).Debug("github rest request")

	resp, err := c.http.Do(ctx, &client.Request{
		Method: method,
		URL:    url,
		Query:  o.Query,
		Body:   o.Body,
		Headers: map[string]string{
			"Authorization": "token " + c.token,
			"Accept":        acceptHeader,
		},
	})
	if err != nil {
		log.WithError(err).WithField("path", path).Debug("github rest request failed")
		return gjson.Result{}, err
	}

	return gjson.ParseBytes(resp.Body), nil
}

type graphqlPayload struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLRequest returns the "data" object of the response. A response
// carrying an "errors" array fails with status 400 and every message joined.
func (c *GithubClient) GraphQLRequest(
	ctx context.Context,
	query string,
	variables map[string]interface{},
) (gjson.Result, error) {
	if err := c.missingToken(c.graphqlURL); err != nil {
		return gjson.Result{}, err
	}

	log.WithField("variables", variables).Debug("github graphql request")

	resp, err := c.http.Do(ctx, &client.Request{
		Method: http.MethodPost,
		URL:    c.graphqlURL,
		Body:   graphqlPayload{Query: query, Variables: variables},
		Headers: map[string]string{
			"Authorization": "Bearer " + c.token,
			"Accept":        acceptHeader,
			"Content-Type":  "application/json",
		},
	})
	if err != nil {
		return gjson.Result{}, err
	}

	parsed := gjson.ParseBytes(resp.Body)
	if errs := parsed.Get("errors"); errs.IsArray() && len(errs.Array()) > 0 {
		var messages []string
		errs.ForEach(func(key, value gjson.Result) bool {
			messages = append(messages, value.Get("message").String())
			return true
		})

		return gjson.Result{}, &client.APIError{
			Status:  http.StatusBadRequest,
			URL:     c.graphqlURL,
			Message: strings.Join(messages, "; "),
		}
	}

	return parsed.Get("data"), nil
}
