package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// ErrNotFound is matched by API errors with status 404.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx answer of the server.
type APIError struct {
	// StatusCode is the HTTP status.
	StatusCode int
	// Type is the server-side exception type, if reported.
	Type string
	// Message is the server message or the raw body.
	Message string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("server returned %d %s: %s", e.StatusCode, e.Type, e.Message)
	}

	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404 answers.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// errorBody is the JSON error document of the server.
type errorBody struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

// checkResponse turns transport failures and error statuses into errors.
func checkResponse(what string, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}

	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		Message:    resp.String(),
	}

	var body errorBody
	if json.Unmarshal(resp.Body(), &body) == nil && body.Msg != "" {
		apiErr.Type = body.Type
		apiErr.Message = body.Msg
	}

	return fmt.Errorf("%s: %w", what, apiErr)
}
