// Package format renders response bodies for display.
package format

import (
	"bytes"
	"encoding/json"
	"strings"
)

const indent = "  "

// IsJSON reports whether body is exactly one JSON value, surrounding
// whitespace allowed.
func IsJSON(body string) bool {
	return Validate(body) == nil
}

// Validate returns the parser error for doc, or nil if doc is valid JSON.
func Validate(doc string) error {
	var raw json.RawMessage
	return json.Unmarshal([]byte(doc), &raw)
}

// Body pretty-prints body with sorted object keys and a two-space indent.
// If body is not valid JSON it is returned unchanged.
func Body(body string) string {
	value, err := decode(body)
	if err != nil {
		return body
	}

	out, err := encode(value, indent)
	if err != nil {
		return body
	}
	return out
}

// Compact re-serializes a JSON document without insignificant whitespace,
// with object keys sorted. Numbers keep their original text.
func Compact(doc string) (string, error) {
	value, err := decode(doc)
	if err != nil {
		return "", err
	}
	return encode(value, "")
}

// decode parses a single JSON value. Numbers are kept as json.Number so that
// re-encoding does not change their text.
func decode(doc string) (any, error) {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

// encode marshals value with map keys in sorted order, as encoding/json
// always does for maps, and without HTML escaping.
func encode(value any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(value); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
