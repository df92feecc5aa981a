package api

import (
	"encoding/json"
	"strings"
)

// ErrorEnvelope is the JSON error body returned by the compliance API,
// e.g. {"error":true,"message":"Project not found","status":404}
type ErrorEnvelope struct {
	Error      bool     `json:"error,omitempty"`
	Message    string   `json:"message,omitempty"`
	Status     int      `json:"status,omitempty"`
	Validation []string `json:"validation,omitempty"`
}

// ParseErrorEnvelope extracts the server message from an error body.
// It returns "" when the body is empty, not JSON, or has no message.
func ParseErrorEnvelope(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return strings.TrimSpace(envelope.Message)
}
