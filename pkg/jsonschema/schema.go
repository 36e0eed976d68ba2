// Package jsonschema validates JSON documents against JSON Schemas.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationErrors collects every schema violation of a document.
type ValidationErrors []error

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Schema is a compiled JSON Schema. It is safe for concurrent use.
type Schema struct {
	name   string
	schema *jsonschema.Schema
}

// Compile compiles the schema source registered under name.
func Compile(name, source string) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", name, err)
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", name, err)
	}
	return &Schema{name: name, schema: schema}, nil
}

// MustCompile is like Compile but panics on error. It is meant for schemas
// embedded in the binary.
func MustCompile(name, source string) *Schema {
	s, err := Compile(name, source)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the name the schema was compiled under.
func (s *Schema) Name() string {
	return s.name
}

// Validate checks a decoded document (the output of json.Unmarshal into an
// interface{}) and returns every violation, or nil.
func (s *Schema) Validate(doc interface{}) ValidationErrors {
	err := s.schema.Validate(doc)
	if err == nil {
		return nil
	}
	if verr, ok := err.(*jsonschema.ValidationError); ok {
		return flatten(verr)
	}
	return ValidationErrors{err}
}

// ValidateJSON decodes data and validates it. It returns nil, a decode error,
// or ValidationErrors.
func (s *Schema) ValidateJSON(data []byte) error {
	doc, err := decode(data)
	if err != nil {
		return err
	}
	if errs := s.Validate(doc); len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateValue validates the JSON encoding of v.
func (s *Schema) ValidateValue(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	return s.ValidateJSON(data)
}

// Validate reports whether jsonStr satisfies schemaStr. An error is returned
// only when either input cannot be parsed.
func Validate(jsonStr, schemaStr string) (bool, error) {
	s, err := Compile("schema.json", schemaStr)
	if err != nil {
		return false, err
	}
	doc, err := decode([]byte(jsonStr))
	if err != nil {
		return false, err
	}
	return len(s.Validate(doc)) == 0, nil
}

// decode parses data keeping numbers as json.Number, as the validator expects.
func decode(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return doc, nil
}

// flatten collects the leaf messages of a validation error tree.
func flatten(err *jsonschema.ValidationError) ValidationErrors {
	var errs ValidationErrors
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return ValidationErrors{fmt.Errorf("%s: %s", location, err.Message)}
	}
	for _, cause := range err.Causes {
		errs = append(errs, flatten(cause)...)
	}
	return errs
}
