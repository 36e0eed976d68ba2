// Package jsonpath evaluates a practical subset of JSONPath against JSON
// documents: dotted member access, bracketed names and array indexes,
// rooted at "$".
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Lookup returns the value at path in doc.
func Lookup(doc []byte, path string) (gjson.Result, error) {
	if len(doc) == 0 {
		return gjson.Result{}, fmt.Errorf("empty JSON document")
	}
	if !gjson.ValidBytes(doc) {
		return gjson.Result{}, fmt.Errorf("invalid JSON document")
	}

	gpath, err := Compile(path)
	if err != nil {
		return gjson.Result{}, err
	}

	result := gjson.GetBytes(doc, gpath)
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("path not found: %s", path)
	}
	return result, nil
}

// Extract returns the value at path as a string. Objects and arrays are
// returned as raw JSON and null as "null".
func Extract(doc []byte, path string) (string, error) {
	result, err := Lookup(doc, path)
	if err != nil {
		return "", err
	}
	switch result.Type {
	case gjson.Null:
		return "null", nil
	case gjson.JSON:
		return result.Raw, nil
	default:
		return result.String(), nil
	}
}

// ExtractAll evaluates every path. Values that could be extracted are
// returned even when others fail.
func ExtractAll(doc []byte, paths []string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	results := make(map[string]string, len(paths))
	var failed []string
	for _, path := range paths {
		value, err := Extract(doc, path)
		if err != nil {
			failed = append(failed, err.Error())
			continue
		}
		results[path] = value
	}

	if len(failed) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(failed, "; "))
	}
	return results, nil
}

// Compile translates a JSONPath expression into a gjson path.
//
//	$                          -> @this
//	$.strategies[0].name       -> strategies.0.name
//	$['metrics']["p99"]        -> metrics.p99
//	$.a\.b                     -> a\.b
func Compile(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}
	if !strings.HasPrefix(path, "$") {
		return "", fmt.Errorf("JSONPath must start with $: %s", path)
	}

	var segments []string
	rest := path[1:]
	for rest != "" {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			end := strings.IndexAny(rest, ".[")
			if end < 0 {
				end = len(rest)
			}
			if end == 0 {
				return "", fmt.Errorf("empty member name in %s", path)
			}
			segments = append(segments, rest[:end])
			rest = rest[end:]

		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("unclosed bracket in %s", path)
			}
			inner := strings.TrimSpace(rest[1:end])
			if len(inner) >= 2 && (inner[0] == '\'' || inner[0] == '"') && inner[len(inner)-1] == inner[0] {
				inner = escapeMember(inner[1 : len(inner)-1])
			}
			if inner == "" {
				return "", fmt.Errorf("empty bracket in %s", path)
			}
			segments = append(segments, inner)
			rest = rest[end+1:]

		default:
			return "", fmt.Errorf("unexpected %q in %s", rest[0], path)
		}
	}

	if len(segments) == 0 {
		return "@this", nil
	}
	return strings.Join(segments, "."), nil
}

// escapeMember escapes gjson path metacharacters in a quoted member name.
func escapeMember(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
