package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the serialization a document was parsed from.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the parser for a path by extension. Unknown extensions are
// treated as YAML, which also accepts most JSON.
func FormatOf(p string) Format {
	if strings.EqualFold(path.Ext(p), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is a parsed structured record.
type Document struct {
	Path   string
	Format Format
	root   yaml.Node
}

// Parse decodes data according to the format implied by p.
func Parse(p string, data []byte) (*Document, error) {
	doc := &Document{Path: p, Format: FormatOf(p)}

	switch doc.Format {
	case FormatJSON:
		var v any
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
		if err := doc.root.Encode(normalizeJSON(v)); err != nil {
			return nil, fmt.Errorf("converting json: %w", err)
		}
	default:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
		// Decode works on the top-level value, not the document wrapper.
		if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
			root = *root.Content[0]
		}
		doc.root = root
	}
	return doc, nil
}

// Decode unmarshals the document into v using yaml struct tags.
func (d *Document) Decode(v any) error {
	if d.root.Kind == 0 {
		return nil
	}
	if err := d.root.Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", d.Path, err)
	}
	return nil
}

// Record returns the document as generic maps and slices.
func (d *Document) Record() (map[string]any, error) {
	rec := map[string]any{}
	if err := d.Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// normalizeJSON turns json.Number into int64 or float64 so the yaml encoder
// emits plain scalars.
func normalizeJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeJSON(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeJSON(e)
		}
		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	default:
		return v
	}
}
