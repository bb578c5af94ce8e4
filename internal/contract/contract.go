// Package contract validates third-party JSON responses against the shapes
// the rest of the program relies on.
package contract

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"
)

// ViolationError lists every rule a response body broke.
type ViolationError struct {
	Contract   string
	Violations []string
}

func (e *ViolationError) Error() string {
	return "contract " + e.Contract + ": response does not match: " + strings.Join(e.Violations, "; ")
}

// Schema is a compiled JSON Schema for one response shape.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// MustCompile compiles a JSON Schema document and panics if it is invalid.
// Intended for package-level schema variables.
func MustCompile(name, doc string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic("contract " + name + ": " + err.Error())
	}
	return &Schema{name: name, schema: s}
}

// Name returns the contract name used in error messages.
func (s *Schema) Name() string {
	return s.name
}

// Validate checks a raw JSON body. Malformed JSON is reported as a plain
// error; a well-formed body that breaks the schema returns *ViolationError.
func (s *Schema) Validate(body []byte) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return eris.Wrapf(err, "contract %s: parse body", s.name)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		violations[i] = desc.String()
	}
	return &ViolationError{Contract: s.name, Violations: violations}
}
