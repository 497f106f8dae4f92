package client

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	KindAuth        ErrorKind = "auth"
	KindPermissions ErrorKind = "permissions"
	KindNotFound    ErrorKind = "not_found"
	KindTimeout     ErrorKind = "timeout"
	KindNetwork     ErrorKind = "network"
	KindAPI         ErrorKind = "api"
	KindUnknown     ErrorKind = "unknown"
)

// APIError is returned for every failed call: HTTP status errors, GraphQL
// errors (400), timeouts (408), network failures (0) and a missing token
// (401).
type APIError struct {
	Status  int
	URL     string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d, %s)", e.Message, e.Status, e.URL)
}

func (e *APIError) Kind() ErrorKind {
	switch e.Status {
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusForbidden:
		return KindPermissions
	case http.StatusNotFound:
		return KindNotFound
	case StatusTimeout:
		return KindTimeout
	case StatusNetworkError:
		return KindNetwork
	default:
		return KindAPI
	}
}

func (e *APIError) UserMessage() string {
	switch e.Kind() {
	case KindAuth:
		return "Authentication failed. Please check your token."
	case KindPermissions:
		return "Permission denied. Make sure your token has the repo and read:org scopes."
	case KindNotFound:
		return "Resource not found. Please check the organization and repository names."
	case KindTimeout:
		return "The request timed out. Please try again."
	case KindNetwork:
		return "Network error. Please check your connection."
	default:
		return fmt.Sprintf("GitHub API error: %s", e.Message)
	}
}

// Classify returns the kind and a human-readable message for any error.
func Classify(err error) (ErrorKind, string) {
	if err == nil {
		return "", ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind(), apiErr.UserMessage()
	}

	return KindUnknown, err.Error()
}
