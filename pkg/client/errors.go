package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrTransport wraps network failures reaching any endpoint.
	ErrTransport = errors.New("transport error")
	// ErrServer is matched by APIErrors carrying a 5xx status.
	ErrServer = errors.New("server error")
	// ErrClient is matched by APIErrors carrying a 4xx status.
	ErrClient = errors.New("client error")
	// ErrInvalidResponse reports a body that is not the expected GeoJSON or JSON shape.
	ErrInvalidResponse = errors.New("invalid response format")
	// ErrNotFound reports an item lookup that did not yield a single feature.
	ErrNotFound = errors.New("feature not found")
)

// APIError represents a non-2xx response from the catalog.
type APIError struct {
	Method string
	URL    string
	Status int
	Title  string
	Detail string
	Raw    []byte
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: status %d for %s %s", e.class(), e.Status, e.Method, e.URL)
	switch {
	case e.Title != "" && e.Detail != "":
		return fmt.Sprintf("%s: %s (%s)", msg, e.Title, e.Detail)
	case e.Title != "":
		return fmt.Sprintf("%s: %s", msg, e.Title)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

// Unwrap exposes the status class so callers can use errors.Is.
func (e *APIError) Unwrap() error { return e.class() }

// Temporary reports whether the failure is on the server side and may
// succeed later.
func (e *APIError) Temporary() bool {
	if e == nil {
		return false
	}
	return e.Status >= 500 && e.Status < 600
}

func (e *APIError) class() error {
	switch {
	case e.Status >= 500:
		return ErrServer
	case e.Status >= 400:
		return ErrClient
	default:
		return ErrInvalidResponse
	}
}

// checkResponse turns a non-2xx response into an *APIError. The body is
// consumed but not closed.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	apiErr := &APIError{Status: resp.StatusCode, Raw: data}
	if resp.Request != nil {
		apiErr.Method = resp.Request.Method
		apiErr.URL = resp.Request.URL.String()
	}

	var payload struct {
		Title       string `json:"title"`
		Detail      string `json:"detail"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		apiErr.Title = payload.Title
		apiErr.Detail = payload.Detail
		if apiErr.Detail == "" {
			apiErr.Detail = payload.Description
		}
	}
	if apiErr.Title == "" && apiErr.Detail == "" {
		// Fallback to plain message.
		apiErr.Detail = strings.TrimSpace(string(data))
	}
	return apiErr
}
