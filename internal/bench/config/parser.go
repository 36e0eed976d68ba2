package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from the file extension. Unknown extensions are
// read as YAML.
func FormatOf(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// LoadConfig reads, parses and validates a configuration file.
func LoadConfig(path string) (*BenchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := ParseConfig(data, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses data in the format implied by filename, checks the raw
// document against the config schema, applies defaults and validates the result.
//
// Fields missing from the document keep their DefaultConfig values, so an
// explicit `count: 0` is kept while an absent count means DefaultCount.
func ParseConfig(data []byte, filename string) (*BenchConfig, error) {
	format := FormatOf(filename)

	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	cfg := &BenchConfig{Name: "figures", Count: DefaultCount}
	switch {
	case len(bytes.TrimSpace(data)) == 0:
	case format == FormatJSON:
		err = json.Unmarshal(data, cfg)
	case format == FormatTOML:
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeDocument decodes data into a generic document and re-encodes it as
// JSON, the form the schema validator reads.
func decodeDocument(data []byte, format Format) ([]byte, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []byte("{}"), nil
	}

	var doc map[string]interface{}
	switch format {
	case FormatJSON:
		return data, nil
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return json.Marshal(doc)
}

// Marshal encodes cfg in format.
func Marshal(cfg *BenchConfig, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(cfg, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return yaml.Marshal(cfg)
	}
}
