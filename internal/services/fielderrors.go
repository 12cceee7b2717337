// file: internal/services/fielderrors.go
package services

import (
	"encoding/json"
)

// Field-error keys recognized per form. The backend reports
// validation failures DRF-style: {"field": ["message", ...]}.
var (
	reviewFieldKeys = map[string]string{
		"lab":           "lab",
		"position":      "position",
		"duration":      "duration",
		"rating":        "rating",
		"review_text":   "reviewText",
		"ratings_input": "categoryRatings",
	}
	registerFieldKeys = map[string]string{
		"email":      "email",
		"password":   "password",
		"name":       "name",
		"university": "university",
		"department": "department",
		"position":   "position",
	}
)

// parseFieldErrors extracts field-level messages out of a 400 body.
// keys maps backend field names to the form field names used by the
// templates; unknown fields are dropped. Returns nil when the body is
// not the expected shape.
func parseFieldErrors(body string, keys map[string]string) map[string]string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil
	}

	fields := make(map[string]string)
	for backendKey, formKey := range keys {
		raw, ok := payload[backendKey]
		if !ok {
			continue
		}
		var messages []string
		if err := json.Unmarshal(raw, &messages); err == nil && len(messages) > 0 {
			fields[formKey] = messages[0]
			continue
		}
		var message string
		if err := json.Unmarshal(raw, &message); err == nil && message != "" {
			fields[formKey] = message
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
