package models

import (
	"bytes"
	"encoding/json"
)

// MenuDocument is the in-memory form of the static menu catalog.
type MenuDocument struct {
	Categories []Category `json:"categories"`
	Items      []MenuItem `json:"items"`
}

// EmptyMenu is the document served when the menu file cannot be used.
func EmptyMenu() MenuDocument {
	return MenuDocument{Categories: []Category{}, Items: []MenuItem{}}
}

// MarshalJSON always emits both keys as arrays, never null.
func (d MenuDocument) MarshalJSON() ([]byte, error) {
	type plain MenuDocument
	out := plain(d)
	if out.Categories == nil {
		out.Categories = []Category{}
	}
	if out.Items == nil {
		out.Items = []MenuItem{}
	}
	return json.Marshal(out)
}

// Category is a menu section label. The source may spell it as a bare string
// or as an object with a "name" field; the original form is written back out,
// including shapes that carry no usable name.
type Category struct {
	Name string
	raw  json.RawMessage
}

func (c *Category) UnmarshalJSON(data []byte) error {
	if isJSONString(data) {
		c.raw = nil
		return json.Unmarshal(data, &c.Name)
	}
	// Any other shape is kept verbatim; only an object's string "name" is read.
	c.Name = ""
	c.raw = append(json.RawMessage(nil), data...)
	var obj map[string]json.RawMessage
	if json.Unmarshal(data, &obj) == nil && isJSONString(obj["name"]) {
		_ = json.Unmarshal(obj["name"], &c.Name)
	}
	return nil
}

func (c Category) MarshalJSON() ([]byte, error) {
	if c.raw != nil {
		return c.raw, nil
	}
	return json.Marshal(c.Name)
}

// MenuItem is one dish. Name, Description and Category drive search; every
// other field of the source object is kept in Extra and re-emitted as is.
type MenuItem struct {
	Name        string
	Description string
	Category    string
	Extra       map[string]json.RawMessage
}

var searchableFields = []string{"name", "description", "category"}

func (m *MenuItem) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*m = MenuItem{}
	targets := map[string]*string{
		"name":        &m.Name,
		"description": &m.Description,
		"category":    &m.Category,
	}
	for _, key := range searchableFields {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		// Non-string values stay in Extra untouched and do not match searches.
		if !isJSONString(raw) {
			continue
		}
		if err := json.Unmarshal(raw, targets[key]); err == nil {
			delete(fields, key)
		}
	}
	if len(fields) > 0 {
		m.Extra = fields
	}
	return nil
}

func (m MenuItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m.Extra)+len(searchableFields))
	for k, v := range m.Extra {
		out[k] = v
	}
	for key, value := range map[string]string{
		"name":        m.Name,
		"description": m.Description,
		"category":    m.Category,
	} {
		if _, taken := out[key]; taken {
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		out[key] = encoded
	}
	return json.Marshal(out)
}

// Featured reports whether the source marked the item with "featured": true.
func (m MenuItem) Featured() bool {
	var featured bool
	if raw, ok := m.Extra["featured"]; ok {
		_ = json.Unmarshal(raw, &featured)
	}
	return featured
}

// Field returns an extra field rendered as text, e.g. price or image.
func (m MenuItem) Field(key string) string {
	raw, ok := m.Extra[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func isJSONString(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '"'
}
