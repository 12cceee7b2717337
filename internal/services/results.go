// file: internal/services/results.go
package services

import (
	"encoding/json"
	"fmt"
)

// envelope is the paginated list shape the backend serves; some
// endpoints return a bare array instead.
type envelope struct {
	Results json.RawMessage `json:"results"`
	Count   int             `json:"count"`
	Next    *string         `json:"next"`
}

// decodeResults decodes a list response that is either a bare JSON
// array or wrapped in a {"results": [...]} envelope.
func decodeResults[T any](body []byte) ([]T, error) {
	items, _, _, err := decodePage[T](body)
	return items, err
}

// decodePage decodes a list response and returns the envelope's count
// and next-page indicator when present. Bare arrays report their own
// length and no next page.
func decodePage[T any](body []byte) (items []T, count int, hasMore bool, err error) {
	var env envelope
	if jsonErr := json.Unmarshal(body, &env); jsonErr == nil && env.Results != nil {
		if err = json.Unmarshal(env.Results, &items); err != nil {
			return nil, 0, false, fmt.Errorf("decode results: %w", err)
		}
		return items, env.Count, env.Next != nil, nil
	}

	if err = json.Unmarshal(body, &items); err != nil {
		return nil, 0, false, fmt.Errorf("decode list: %w", err)
	}
	return items, len(items), false, nil
}
