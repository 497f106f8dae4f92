// Package client wraps outbound HTTP calls with a uniform timeout and a
// single error type, so callers only ever see *APIError.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const DefaultTimeout = 30 * time.Second

const (
	StatusNetworkError = 0
	StatusTimeout      = http.StatusRequestTimeout
)

type Options struct {
	Timeout time.Duration
	Headers map[string]string
	// Transport replaces the default round tripper, tests only.
	Transport http.RoundTripper
}

type Client struct {
	rc      *resty.Client
	timeout time.Duration
}

type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   map[string]string
	Body    interface{}
}

type Response struct {
	Status int
	Body   []byte
}

func New(o *Options) *Client {
	if o == nil {
		o = &Options{}
	}

	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rc := resty.New().SetHeaders(o.Headers)
	if o.Transport != nil {
		rc.SetTransport(o.Transport)
	}

	return &Client{
		rc:      rc,
		timeout: timeout,
	}
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Do sends r and returns the response of a 2xx status. Timeouts, network
// failures and non-2xx responses are all reported as *APIError. Nothing is
// retried.
func (c *Client) Do(ctx context.Context, r *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := c.rc.R().
		SetContext(ctx).
		SetHeaders(r.Headers).
		SetQueryParams(r.Query)
	if r.Body != nil {
		req.SetBody(r.Body)
	}

	resp, err := req.Execute(r.Method, r.URL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, &APIError{
				Status:  StatusTimeout,
				URL:     r.URL,
				Message: fmt.Sprintf("request timed out after %s", c.timeout),
			}
		}

		return nil, &APIError{
			Status:  StatusNetworkError,
			URL:     r.URL,
			Message: err.Error(),
		}
	}

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &APIError{
			Status:  resp.StatusCode(),
			URL:     r.URL,
			Message: errorMessage(resp),
		}
	}

	return &Response{
		Status: resp.StatusCode(),
		Body:   resp.Body(),
	}, nil
}

func errorMessage(resp *resty.Response) string {
	body := resp.Body()
	if gjson.ValidBytes(body) {
		if m := gjson.GetBytes(body, "message"); m.Exists() && m.String() != "" {
			return m.String()
		}
	}

	if len(body) > 0 && len(body) < 512 {
		return string(body)
	}

	return http.StatusText(resp.StatusCode())
}
