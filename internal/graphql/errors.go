package graphql

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	gql "github.com/hasura/go-graphql-client"
)

type Kind string

const (
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindNetwork      Kind = "NETWORK"
	KindGraphQL      Kind = "GRAPHQL"
	KindValidation   Kind = "VALIDATION"
)

// Error is returned by Client.Request for every failed call. Kind is decided from the
// HTTP status and GraphQL error extensions, never from the message text.
type Error struct {
	Kind       Kind
	Operation  string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("graphql %s: %s: %s", e.Operation, strings.ToLower(string(e.Kind)), e.Message)
	}
	return fmt.Sprintf("graphql: %s: %s", strings.ToLower(string(e.Kind)), e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }

// KindOf returns the kind of a wrapped *Error, or "" for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func classify(operation string, status int, err error) *Error {
	out := &Error{
		Kind:       KindGraphQL,
		Operation:  operation,
		StatusCode: status,
		Message:    err.Error(),
		Err:        err,
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		out.Kind = KindUnauthorized
		out.Message = http.StatusText(status)
		return out
	case status == 0:
		out.Kind = KindNetwork
		return out
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout:
		out.Kind = KindNetwork
		out.Message = http.StatusText(status)
		return out
	}

	var gqlErrs gql.Errors
	if errors.As(err, &gqlErrs) && len(gqlErrs) > 0 {
		out.Message = gqlErrs[0].Message
		for _, e := range gqlErrs {
			switch extensionCode(e.Extensions) {
			case "UNAUTHENTICATED", "UNAUTHORIZED", "FORBIDDEN":
				out.Kind = KindUnauthorized
				out.Message = e.Message
				return out
			case "BAD_USER_INPUT", "GRAPHQL_VALIDATION_FAILED":
				out.Kind = KindValidation
				out.Message = e.Message
			}
		}
	}
	return out
}

func extensionCode(ext map[string]any) string {
	if ext == nil {
		return ""
	}
	code, _ := ext["code"].(string)
	return strings.ToUpper(code)
}
