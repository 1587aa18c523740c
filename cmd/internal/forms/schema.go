package forms

import (
	"errors"
	"fmt"
	"io"
	"sort"

	v1 "warasin/contracts/api/v1"
)

// ErrInvalidBody is returned when the submitted JSON cannot be decoded into the form.
var ErrInvalidBody = errors.New("invalid request body")

// Schema names.
const (
	SchemaAdminLogin         = "admin-login"
	SchemaMotivationCategory = "motivation-category"
	SchemaMotivation         = "motivation"
)

// Schema decodes and validates one form.
type Schema struct {
	Name  string
	check func(r io.Reader) (any, error)
}

// Check decodes r strictly and validates it.
// The error is ErrInvalidBody (wrapped) for undecodable input and Errors for rule violations.
func (s Schema) Check(r io.Reader) (any, error) {
	return s.check(r)
}

func newSchema[T any](name string, validate func(T) error) Schema {
	return Schema{
		Name: name,
		check: func(r io.Reader) (any, error) {
			req, err := v1.DecodeRequest[T](r)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
			}
			return req, validate(req)
		},
	}
}

var schemas = map[string]Schema{
	SchemaAdminLogin:         newSchema(SchemaAdminLogin, ValidateAdminLogin),
	SchemaMotivationCategory: newSchema(SchemaMotivationCategory, ValidateMotivationCategory),
	SchemaMotivation:         newSchema(SchemaMotivation, ValidateMotivation),
}

// Lookup returns the schema registered under name.
func Lookup(name string) (Schema, bool) {
	s, ok := schemas[name]
	return s, ok
}

// Names returns the registered schema names, sorted.
func Names() []string {
	out := make([]string, 0, len(schemas))
	for name := range schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
