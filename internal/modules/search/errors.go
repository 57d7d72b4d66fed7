package search

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidPagination = errors.New("invalid_pagination")
	ErrInvalidFilter     = errors.New("invalid_filter")
)

// QueryError lists the search parameters that failed validation, keyed by field.
type QueryError struct {
	Fields map[string]string
}

func (e *QueryError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid search filters: " + strings.Join(parts, ", ")
}

func (e *QueryError) Is(target error) bool { return target == ErrInvalidFilter }
