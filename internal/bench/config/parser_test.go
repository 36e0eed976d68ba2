package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfig_YAML(t *testing.T) {
	yamlConfig := `
name: "baseline"
description: "all strategies, fixed seed"
count: 500
seed: 42
strategies:
  - executor: sequential
  - executor: threads
    workers: 8
  - name: "big chunks"
    executor: processes
    workers: 3
    chunkSize: 2000
  - executor: mixed
    workers: 5
    threads: 20
`
	config, err := ParseConfig([]byte(yamlConfig), "bench.yaml")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if config.Name != "baseline" {
		t.Errorf("Name = %v, want %v", config.Name, "baseline")
	}
	if config.Count != 500 {
		t.Errorf("Count = %v, want %v", config.Count, 500)
	}
	if config.Seed != 42 {
		t.Errorf("Seed = %v, want %v", config.Seed, 42)
	}
	if len(config.Strategies) != 4 {
		t.Fatalf("len(Strategies) = %v, want %v", len(config.Strategies), 4)
	}

	if config.Strategies[0].Name != "sequential" {
		t.Errorf("Strategies[0].Name = %v, want default %v", config.Strategies[0].Name, "sequential")
	}
	procs := config.Strategies[2]
	if procs.Name != "big chunks" || procs.Workers != 3 || procs.ChunkSize != 2000 {
		t.Errorf("Strategies[2] = %+v", procs)
	}
	if config.Strategies[3].Threads != 20 {
		t.Errorf("Strategies[3].Threads = %v, want %v", config.Strategies[3].Threads, 20)
	}
}

func TestParseConfig_JSON(t *testing.T) {
	jsonConfig := `{
		"name": "json run",
		"count": 0,
		"strategies": [
			{"executor": "threads", "workers": 2}
		],
		"options": {"skipVerify": true}
	}`

	config, err := ParseConfig([]byte(jsonConfig), "bench.json")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if config.Count != 0 {
		t.Errorf("Count = %v, want explicit 0", config.Count)
	}
	if config.Verify() {
		t.Error("Verify() = true, want false with skipVerify")
	}
	if len(config.Strategies) != 1 || config.Strategies[0].Workers != 2 {
		t.Errorf("Strategies = %+v", config.Strategies)
	}
}

func TestParseConfig_TOML(t *testing.T) {
	tomlConfig := `
name = "toml run"
seed = 7

[[strategies]]
executor = "processes"
workers = 2
chunkSize = 100

[[strategies]]
executor = "mixed"
threads = 4
`
	config, err := ParseConfig([]byte(tomlConfig), "bench.toml")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if config.Count != DefaultCount {
		t.Errorf("Count = %v, want default %v", config.Count, DefaultCount)
	}
	if config.Seed != 7 {
		t.Errorf("Seed = %v, want %v", config.Seed, 7)
	}
	if len(config.Strategies) != 2 {
		t.Fatalf("len(Strategies) = %v, want %v", len(config.Strategies), 2)
	}
	if config.Strategies[0].ChunkSize != 100 || config.Strategies[1].Threads != 4 {
		t.Errorf("Strategies = %+v", config.Strategies)
	}
}

func TestParseConfig_Empty(t *testing.T) {
	for _, name := range []string{"empty.yaml", "empty.json", "empty.toml"} {
		config, err := ParseConfig([]byte("  \n"), name)
		if err != nil {
			t.Fatalf("ParseConfig(%s) error = %v", name, err)
		}
		if config.Count != DefaultCount || len(config.Strategies) != 4 {
			t.Errorf("ParseConfig(%s) = %+v, want defaults", name, config)
		}
	}
}

func TestParseConfig_SchemaErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		filename string
	}{
		{"unknown field", "name: x\ncolour: red\n", "a.yaml"},
		{"negative count", `{"count": -1}`, "a.json"},
		{"unknown executor", "[[strategies]]\nexecutor = \"gpu\"\n", "a.toml"},
		{"string workers", "strategies:\n  - executor: threads\n    workers: many\n", "a.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data), tt.filename)
			if err == nil {
				t.Fatal("ParseConfig() expected error, got nil")
			}
			var verrs *ValidationErrors
			if !errors.As(err, &verrs) {
				t.Errorf("ParseConfig() error = %T %v, want *ValidationErrors", err, err)
			}
		})
	}
}

func TestParseConfig_Malformed(t *testing.T) {
	if _, err := ParseConfig([]byte("name: [unclosed"), "bad.yaml"); err == nil {
		t.Error("ParseConfig() expected error for malformed YAML")
	}
	if _, err := ParseConfig([]byte("{"), "bad.json"); err == nil {
		t.Error("ParseConfig() expected error for malformed JSON")
	}
	if _, err := ParseConfig([]byte("name = "), "bad.toml"); err == nil {
		t.Error("ParseConfig() expected error for malformed TOML")
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "bench.yaml")

	yamlContent := `
name: "File Test"
count: 10
strategies:
  - executor: sequential
`
	if err := os.WriteFile(tmpFile, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	config, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.Name != "File Test" {
		t.Errorf("Name = %v, want %v", config.Name, "File Test")
	}
}

func TestLoadConfig_NotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/bench.yaml")
	if err == nil {
		t.Error("LoadConfig() should return error for nonexistent file")
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.yaml":       FormatYAML,
		"a.yml":        FormatYAML,
		"A.JSON":       FormatJSON,
		"dir/b.toml":   FormatTOML,
		"no-extension": FormatYAML,
	}
	for name, want := range tests {
		if got := FormatOf(name); got != want {
			t.Errorf("FormatOf(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	original := DefaultConfig()
	original.Seed = 99
	original.Strategies[2].ChunkSize = 250

	for _, format := range []Format{FormatYAML, FormatJSON, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Marshal(original, format)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			parsed, err := ParseConfig(data, "config."+string(format))
			if err != nil {
				t.Fatalf("ParseConfig() error = %v\n%s", err, data)
			}
			if parsed.Seed != 99 || parsed.Strategies[2].ChunkSize != 250 || parsed.Count != DefaultCount {
				t.Errorf("round trip = %+v", parsed)
			}
		})
	}
}
