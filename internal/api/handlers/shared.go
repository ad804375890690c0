// Package handlers contains the HTTP layer adapters. Handlers parse and
// validate requests, delegate to services and translate domain errors into
// status codes.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// parseJSON decodes the request body into T. Unknown fields are rejected so
// typos in payloads fail loudly instead of silently dropping data.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("invalid JSON body: %w", err)
	}
	return v, nil
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
