package jsonpath

import (
	"testing"
)

const report = `{
	"name": "figures",
	"count": 10000,
	"verified": true,
	"notes": null,
	"strategies": [
		{"name": "sequential", "durationSeconds": 0.012, "checksums": {"square": 1.5}},
		{"name": "threads", "durationSeconds": 0.034, "checksums": {"square": 1.5}}
	],
	"dotted.key": "x"
}`

func TestCompile(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "$", want: "@this"},
		{path: "$.name", want: "name"},
		{path: "$.strategies[1].name", want: "strategies.1.name"},
		{path: "$['strategies'][0][\"checksums\"]", want: "strategies.0.checksums"},
		{path: "$['dotted.key']", want: `dotted\.key`},
		{path: "$[0]", want: "0"},
		{path: "", wantErr: true},
		{path: "name", wantErr: true},
		{path: "$.strategies[0", wantErr: true},
		{path: "$..name", wantErr: true},
		{path: "$[]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Compile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Compile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Compile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "string", path: "$.name", want: "figures"},
		{name: "number", path: "$.count", want: "10000"},
		{name: "bool", path: "$.verified", want: "true"},
		{name: "null", path: "$.notes", want: "null"},
		{name: "array element field", path: "$.strategies[1].durationSeconds", want: "0.034"},
		{name: "object", path: "$.strategies[0].checksums", want: `{"square": 1.5}`},
		{name: "quoted dotted key", path: "$['dotted.key']", want: "x"},
		{name: "missing", path: "$.strategies[5].name", wantErr: true},
		{name: "bad path", path: "strategies", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract([]byte(report), tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Extract() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookup_InvalidDocument(t *testing.T) {
	if _, err := Lookup(nil, "$"); err == nil {
		t.Error("Lookup() expected error for empty document")
	}
	if _, err := Lookup([]byte(`{"a":`), "$.a"); err == nil {
		t.Error("Lookup() expected error for invalid document")
	}
}

func TestLookup_ResultType(t *testing.T) {
	result, err := Lookup([]byte(report), "$.strategies")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !result.IsArray() || len(result.Array()) != 2 {
		t.Errorf("Lookup($.strategies) = %s, want 2-element array", result.Raw)
	}
}

func TestExtractAll(t *testing.T) {
	got, err := ExtractAll([]byte(report), []string{"$.name", "$.count"})
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}
	if got["$.name"] != "figures" || got["$.count"] != "10000" {
		t.Errorf("ExtractAll() = %v", got)
	}

	got, err = ExtractAll([]byte(report), []string{"$.name", "$.missing"})
	if err == nil {
		t.Error("ExtractAll() expected error for missing path")
	}
	if got["$.name"] != "figures" {
		t.Error("ExtractAll() should keep successful extractions")
	}

	if _, err := ExtractAll([]byte(report), nil); err == nil {
		t.Error("ExtractAll() expected error for no paths")
	}
}
