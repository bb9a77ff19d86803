package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend. When the body carried a
// JSON {message}, Message holds it verbatim; otherwise Message is a generic
// templated string with the status code.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// errorBody matches the backend's error response shape.
type errorBody struct {
	Message string `json:"message"`
}

// decodeError reads the body of a non-2xx response and converts it into an
// APIError. The body is fully consumed and closed.
func decodeError(resp *http.Response) *APIError {
	defer resp.Body.Close()

	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("request failed with status %d", resp.StatusCode),
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return apiErr
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return apiErr
	}

	var body errorBody
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		apiErr.Message = body.Message
	}

	return apiErr
}

// IsServerError reports whether err is a structured backend error, as
// opposed to a transport-level failure.
func IsServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
