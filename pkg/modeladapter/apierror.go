package modeladapter

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-success response from the provider. It carries the HTTP
// status and, when the body follows the standard OpenAI error envelope, the
// provider's message and error code. No retry is attempted at any layer.
type APIError struct {
	Status  int
	Code    string
	Type    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// errorEnvelope is the OpenAI error body: {"error":{"message","type","code"}}.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// parseAPIError builds an *APIError from a non-2xx response body. Bodies that
// don't match the error envelope are carried verbatim in Message.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		apiErr.Message = env.Error.Message
		apiErr.Type = env.Error.Type
		apiErr.Code = env.Error.Code
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))

	return apiErr
}
