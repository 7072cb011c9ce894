package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSemantic marks a 2xx response that lacks a field the operation
	// treats as its success discriminant.
	ErrSemantic = errors.New("unexpected response")
)

// TransportError is a failure to get any HTTP response at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrUnavailable }

// APIError is a non-2xx response. Message and Errors hold whatever the body
// carried; BodyUnparsed is set when the body was not a JSON object.
type APIError struct {
	Op           string
	StatusCode   int
	Message      string
	Errors       []string
	BodyUnparsed bool
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && len(e.Errors) > 0 {
		msg = strings.Join(e.Errors, ", ")
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Op, e.StatusCode, msg)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// SemanticError is a 2xx response that failed validation. ServerMessage is
// the body's "error" field, if any.
type SemanticError struct {
	Op            string
	Field         string
	ServerMessage string
	Err           error
}

func (e *SemanticError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: invalid %s: %v", e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: missing %s", e.Op, e.Field)
}

func (e *SemanticError) Unwrap() error { return e.Err }

func (e *SemanticError) Is(target error) bool { return target == ErrSemantic }

// parseAPIError builds an APIError from a non-2xx response body.
func parseAPIError(op string, statusCode int, body []byte) *APIError {
	apiErr := &APIError{Op: op, StatusCode: statusCode}

	var payload struct {
		Error   string   `json:"error"`
		Message string   `json:"message"`
		Detail  string   `json:"detail"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.BodyUnparsed = true
		return apiErr
	}

	switch {
	case payload.Error != "":
		apiErr.Message = payload.Error
	case payload.Detail != "":
		apiErr.Message = payload.Detail
	default:
		apiErr.Message = payload.Message
	}
	apiErr.Errors = payload.Errors
	return apiErr
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// AsSemanticError unwraps err to a *SemanticError.
func AsSemanticError(err error) (*SemanticError, bool) {
	var semErr *SemanticError
	if errors.As(err, &semErr) {
		return semErr, true
	}
	return nil, false
}
