package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Client_Do(t *testing.T) {
	t.Run("returns the body of a successful response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "yes", r.Header.Get("X-Test"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		c := New(&Options{Headers: map[string]string{"X-Test": "yes"}})
		resp, err := c.Do(context.Background(), &Request{
			Method: http.MethodGet,
			URL:    srv.URL,
			Query:  map[string]string{"page": "2"},
		})

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Status)
		assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
	})

	t.Run("fails with the response status and message on non 2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"Resource not accessible by integration"}`))
		}))
		defer srv.Close()

		_, err := New(nil).Do(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusForbidden, apiErr.Status)
		assert.Equal(t, srv.URL, apiErr.URL)
		assert.Equal(t, "Resource not accessible by integration", apiErr.Message)
		assert.Equal(t, KindPermissions, apiErr.Kind())
	})

	t.Run("fails with status 408 when the timeout elapses", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		c := New(&Options{Timeout: 20 * time.Millisecond})
		_, err := c.Do(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, StatusTimeout, apiErr.Status)
		assert.Equal(t, KindTimeout, apiErr.Kind())
	})

	t.Run("fails with status 0 on network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := New(nil).Do(context.Background(), &Request{Method: http.MethodGet, URL: url})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, StatusNetworkError, apiErr.Status)
		assert.Equal(t, KindNetwork, apiErr.Kind())
	})

	t.Run("uses the default timeout when none is given", func(t *testing.T) {
		assert.Equal(t, DefaultTimeout, New(&Options{}).Timeout())
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusUnauthorized, KindAuth},
		{http.StatusForbidden, KindPermissions},
		{http.StatusNotFound, KindNotFound},
		{http.StatusRequestTimeout, KindTimeout},
		{0, KindNetwork},
		{http.StatusBadRequest, KindAPI},
		{http.StatusInternalServerError, KindAPI},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			kind, msg := Classify(errors.Wrap(&APIError{Status: tt.status, Message: "boom"}, "wrapped"))
			assert.Equal(t, tt.kind, kind)
			assert.NotEmpty(t, msg)
		})
	}

	t.Run("unknown errors keep their message", func(t *testing.T) {
		kind, msg := Classify(errors.New("plain"))
		assert.Equal(t, KindUnknown, kind)
		assert.Equal(t, "plain", msg)
	})

	t.Run("nil error has no classification", func(t *testing.T) {
		kind, msg := Classify(nil)
		assert.Equal(t, ErrorKind(""), kind)
		assert.Equal(t, "", msg)
	})
}
