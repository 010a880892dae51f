package propertyapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the Property API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("property api %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("property api %d: %s", e.Status, e.Message)
}

// Message returns the API's own error text, or fallback for anything else.
func Message(err error, fallback string) string {
	var ae *APIError
	if errors.As(err, &ae) && strings.TrimSpace(ae.Message) != "" {
		return ae.Message
	}
	return fallback
}

// StatusOf returns the HTTP status behind err, or 502 for transport failures.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) && ae.Status > 0 {
		return ae.Status
	}
	return http.StatusBadGateway
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func parseError(status int, body []byte) *APIError {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return &APIError{Status: status}
	}
	return &APIError{Status: status, Code: eb.Code, Message: eb.Error}
}
