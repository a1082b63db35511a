package system

import "net/http"

// Client is an interface for an HTTP client that can be used to make requests. Allows mocking the client in tests and substituting implementations.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ Client = (*http.Client)(nil)
