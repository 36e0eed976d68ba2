package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wesleyorama2/figures/internal/bench/executor"
	"github.com/wesleyorama2/figures/pkg/jsonschema"
)

// MaxCount bounds Count. Each strategy keeps count areas per kind in memory.
const MaxCount = 10_000_000

// SchemaJSON is the JSON Schema every configuration document must satisfy.
const SchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"name": { "type": "string" },
		"description": { "type": "string" },
		"count": { "type": "integer", "minimum": 0, "maximum": 10000000 },
		"seed": { "type": "integer" },
		"strategies": {
			"type": "array",
			"items": {
				"type": "object",
				"additionalProperties": false,
				"required": ["executor"],
				"properties": {
					"name": { "type": "string" },
					"executor": { "enum": ["sequential", "threads", "processes", "mixed"] },
					"workers": { "type": "integer", "minimum": 0 },
					"threads": { "type": "integer", "minimum": 0 },
					"chunkSize": { "type": "integer", "minimum": 0 }
				}
			}
		},
		"options": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"skipVerify": { "type": "boolean" }
			}
		}
	}
}`

var schema = jsonschema.MustCompile("figures-config.json", SchemaJSON)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateDocument checks a JSON-encoded configuration document against
// SchemaJSON.
func ValidateDocument(doc []byte) error {
	err := schema.ValidateJSON(doc)
	if err == nil {
		return nil
	}

	var schemaErrs jsonschema.ValidationErrors
	if !errors.As(err, &schemaErrs) {
		return err
	}
	errs := &ValidationErrors{}
	for _, e := range schemaErrs {
		errs.Add("", e.Error())
	}
	return errs
}

// Validate validates the configuration.
//
// Returns nil if valid, or a ValidationErrors containing all validation errors.
func (c *BenchConfig) Validate() error {
	errs := &ValidationErrors{}

	if c.Count < 0 {
		errs.Add("count", "count cannot be negative")
	}
	if c.Count > MaxCount {
		errs.Add("count", fmt.Sprintf("count cannot exceed %d", MaxCount))
	}

	if len(c.Strategies) == 0 {
		errs.Add("strategies", "at least one strategy is required")
	}

	seen := make(map[string]bool, len(c.Strategies))
	for i, s := range c.Strategies {
		prefix := fmt.Sprintf("strategies[%d]", i)
		validateStrategy(prefix, &s, errs)

		if s.Name != "" {
			if seen[s.Name] {
				errs.Add(prefix+".name", fmt.Sprintf("duplicate strategy name: %s", s.Name))
			}
			seen[s.Name] = true
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// validateStrategy validates a single strategy configuration.
func validateStrategy(prefix string, s *StrategyConfig, errs *ValidationErrors) {
	if s.Executor == "" {
		errs.Add(prefix+".executor", "executor type is required")
		return
	}
	if !executor.IsValidExecutorType(s.Executor) {
		errs.Add(prefix+".executor", fmt.Sprintf("unknown executor type: %s", s.Executor))
		return
	}

	if s.Workers < 0 {
		errs.Add(prefix+".workers", "workers cannot be negative")
	}
	if s.Threads < 0 {
		errs.Add(prefix+".threads", "threads cannot be negative")
	}
	if s.ChunkSize < 0 {
		errs.Add(prefix+".chunkSize", "chunkSize cannot be negative")
	}

	typ := executor.Type(s.Executor)
	if typ == executor.TypeSequential && s.Workers > 1 {
		errs.Add(prefix+".workers", "sequential executor runs on a single goroutine")
	}
	if s.Threads != 0 && typ != executor.TypeMixed {
		errs.Add(prefix+".threads", "threads only applies to the mixed executor")
	}
	if s.ChunkSize != 0 && typ != executor.TypeProcesses {
		errs.Add(prefix+".chunkSize", "chunkSize only applies to the processes executor")
	}
}

// Select keeps only the strategies whose name or executor type is listed,
// in the listed order. An unknown entry is an error.
func (c *BenchConfig) Select(names []string) error {
	if len(names) == 0 {
		return nil
	}

	selected := make([]StrategyConfig, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		found := false
		for _, s := range c.Strategies {
			if s.Name == name || s.Executor == name {
				selected = append(selected, s)
				found = true
			}
		}
		if !found {
			return &ValidationError{Field: "strategies", Message: fmt.Sprintf("no strategy named %q", name)}
		}
	}
	if len(selected) == 0 {
		return &ValidationError{Field: "strategies", Message: "no strategies selected"}
	}
	c.Strategies = selected
	return nil
}
