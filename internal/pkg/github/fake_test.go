package github

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// recordedRequest is a request captured by a fakeGithub server.
type recordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Accept        string
	Body          string
}

// fakeGithub is an httptest server answering from a handler function and
// recording every request it receives.
type fakeGithub struct {
	*httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeGithub(handler http.HandlerFunc) *fakeGithub {
	f := &fakeGithub{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Accept:        r.Header.Get("Accept"),
			Body:          string(body),
		})
		f.mu.Unlock()
		handler(w, r)
	}))

	return f
}

func (f *fakeGithub) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]recordedRequest{}, f.requests...)
}

func (f *fakeGithub) client(token string) *GithubClient {
	return New(&Options{
		Token:      token,
		APIURL:     f.URL,
		GraphQLURL: f.URL + "/graphql",
	})
}
