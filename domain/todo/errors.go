package todo

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when no todo exists for the requested id.
	ErrNotFound = errors.New("todo not found")
	// ErrForbidden is returned when the actor is not the owner of the
	// targeted todo. The todo is never mutated in that case.
	ErrForbidden = errors.New("actor is not the owner of this todo")
)

// ValidationError reports one or more invalid fields on a create request.
// Fields maps the field name to a human-readable message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
