package jsonschema

import (
	"errors"
	"strings"
	"testing"
)

const personSchema = `{
	"type": "object",
	"required": ["id", "name"],
	"additionalProperties": false,
	"properties": {
		"id": { "type": "integer", "minimum": 0 },
		"name": { "type": "string", "minLength": 1 }
	}
}`

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		schema  string
		want    bool
		wantErr bool
	}{
		{
			name:   "valid document",
			json:   `{"id": 1, "name": "square"}`,
			schema: personSchema,
			want:   true,
		},
		{
			name:   "wrong type",
			json:   `{"id": "one", "name": "square"}`,
			schema: personSchema,
			want:   false,
		},
		{
			name:   "missing required property",
			json:   `{"id": 1}`,
			schema: personSchema,
			want:   false,
		},
		{
			name:    "invalid JSON",
			json:    `{"id": 1,`,
			schema:  personSchema,
			wantErr: true,
		},
		{
			name:    "invalid schema",
			json:    `{}`,
			schema:  `{"type": 12}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.json, tt.schema)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSchema_ValidateJSON_CollectsAllErrors(t *testing.T) {
	s := MustCompile("person.json", personSchema)

	err := s.ValidateJSON([]byte(`{"id": -1, "name": "", "extra": true}`))
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("ValidateJSON() error = %v, want ValidationErrors", err)
	}
	if len(verrs) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(verrs), verrs)
	}

	msg := verrs.Error()
	for _, want := range []string{"/id", "/name", "extra"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestSchema_ValidateValue(t *testing.T) {
	s := MustCompile("person.json", personSchema)

	type person struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := s.ValidateValue(person{ID: 3, Name: "rectangle"}); err != nil {
		t.Errorf("ValidateValue() error = %v", err)
	}
	if err := s.ValidateValue(person{ID: 3}); err == nil {
		t.Error("ValidateValue() expected error for empty name")
	}
}

func TestSchema_LargeIntegers(t *testing.T) {
	s := MustCompile("seed.json", `{"type": "integer"}`)
	if err := s.ValidateJSON([]byte(`9007199254740993`)); err != nil {
		t.Errorf("ValidateJSON() error = %v", err)
	}
}

func TestMustCompile_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile() did not panic on an invalid schema")
		}
	}()
	MustCompile("bad.json", `{"type": `)
}

func TestValidationErrors_Error(t *testing.T) {
	if (ValidationErrors{}).Error() != "" {
		t.Error("empty ValidationErrors should have an empty message")
	}
	errs := ValidationErrors{errors.New("a"), errors.New("b")}
	if errs.Error() != "a; b" {
		t.Errorf("Error() = %q, want %q", errs.Error(), "a; b")
	}
	if s := MustCompile("x.json", `{}`); s.Name() != "x.json" {
		t.Errorf("Name() = %q", s.Name())
	}
}
