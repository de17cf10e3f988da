package slack

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// APIError means the service answered but flagged the request as
// failed. The error shape of emoji.adminList is not modeled, so the
// unrecognized response fields are the only diagnostic available.
type APIError struct {
	Fields map[string]json.RawMessage
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return "API responded with errors (empty response)"
	}
	parts := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(parts)
	return "API responded with errors: " + strings.Join(parts, " ")
}

// TransportError covers everything that kept a well-formed response
// from arriving: connection failures, timeouts, undecodable bodies and
// non-2xx statuses.
type TransportError struct {
	URL    string
	Status int   // 0 when the request never completed
	Err    error // nil for pure status failures
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("API communication error for %s: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("API communication error for %s: unexpected status %d", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
