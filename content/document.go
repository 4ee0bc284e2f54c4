// Package content holds the portfolio document model: the bilingual Text
// variant, the typed document tree, per-section schemas, loading from the
// content resource and stable JSON encoding for upload.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one list element of a record-typed section. Keys outside the
// section schema are kept so that out-of-band fields survive a save.
type Record map[string]Text

// Clone returns a shallow copy; Text values are immutable in practice.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CustomSection is the optional titled list of free-form {title, desc} records.
type CustomSection struct {
	Title Text
	Items []Record

	extra map[string]json.RawMessage
}

// Document is the whole site content tree.
type Document struct {
	Profile      Profile
	Experience   []Record
	Skills       []Text
	Certificates []Record
	Projects     []Record
	Custom       *CustomSection

	extra map[string]json.RawMessage
}

// Parse decodes a content resource.
func Parse(b []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Encode serializes the document the way it is stored upstream: two-space
// indentation, sorted keys, no HTML escaping, trailing newline.
func Encode(d *Document) ([]byte, error) {
	compact, err := marshal(d)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Clone deep-copies the document through its JSON form.
func (d *Document) Clone() *Document {
	b, err := marshal(d)
	if err != nil {
		panic(fmt.Sprintf("content: clone: %v", err))
	}
	out, err := Parse(b)
	if err != nil {
		panic(fmt.Sprintf("content: clone: %v", err))
	}
	return out
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("content: document is not an object")
	}
	*d = Document{}
	if err := take(fields, "profile", &d.Profile); err != nil {
		return err
	}
	if err := take(fields, "experience", &d.Experience); err != nil {
		return err
	}
	if err := take(fields, "skills", &d.Skills); err != nil {
		return err
	}
	if err := take(fields, "certificates", &d.Certificates); err != nil {
		return err
	}
	if err := take(fields, "projects", &d.Projects); err != nil {
		return err
	}
	if raw, ok := fields["customSection"]; ok && string(raw) != "null" {
		var cs CustomSection
		if err := json.Unmarshal(raw, &cs); err != nil {
			return fmt.Errorf("content: customSection: %w", err)
		}
		d.Custom = &cs
		delete(fields, "customSection")
	}
	if len(fields) > 0 {
		d.extra = fields
	}
	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.extra)+6)
	for k, v := range d.extra {
		out[k] = v
	}
	out["profile"] = &d.Profile
	out["experience"] = nonNil(d.Experience)
	out["skills"] = nonNil(d.Skills)
	out["certificates"] = nonNil(d.Certificates)
	out["projects"] = nonNil(d.Projects)
	if d.Custom != nil {
		out["customSection"] = d.Custom
	}
	return marshal(out)
}

func (c *CustomSection) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*c = CustomSection{}
	if err := take(fields, "title", &c.Title); err != nil {
		return err
	}
	if err := take(fields, "items", &c.Items); err != nil {
		return err
	}
	if len(fields) > 0 {
		c.extra = fields
	}
	return nil
}

func (c *CustomSection) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.extra)+2)
	for k, v := range c.extra {
		out[k] = v
	}
	out["title"] = c.Title
	out["items"] = nonNil(c.Items)
	return marshal(out)
}

// take decodes fields[key] into dst and removes it, so whatever is left in
// fields afterwards is the set of unknown keys.
func take(fields map[string]json.RawMessage, key string, dst any) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	delete(fields, key)
	if string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("content: %s: %w", key, err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// marshal is json.Marshal without HTML escaping, so "<" and "&" in content
// stay readable in the stored file.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
