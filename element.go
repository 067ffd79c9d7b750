package locgen

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ElementInfo describes one element of an HTML fragment together with the
// locator candidates generated for it.
type ElementInfo struct {
	// Key is unique within one extraction: tag, id and traversal index.
	Key     string `json:"key"`
	TagName string `json:"tagName"`

	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`

	Classes []string `json:"classes"`

	// TextContentSample is the element's own text, truncated to
	// TextSampleLimit characters followed by an ellipsis.
	TextContentSample string `json:"textContentSample"`

	Attributes Attributes `json:"attributes"`
	Locators   []Locator  `json:"locators"`
}

// TextSampleLimit is the maximum number of characters kept in
// ElementInfo.TextContentSample before the ellipsis.
const TextSampleLimit = 70

// Attribute is a single name/value pair as authored on an element.
type Attribute struct {
	Name  string
	Value string
}

// Attributes is an ordered string mapping of attribute names to values.
// It marshals to a JSON object whose keys follow source order.
type Attributes []Attribute

// Get returns the value of the named attribute.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// MarshalJSON encodes the attributes as a JSON object in order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(attr.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into attributes, keeping key order.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*a = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("attributes: expected object, got %v", tok)
	}

	out := Attributes{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("attributes: expected string key, got %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("attributes: value of %q: %w", name, err)
		}
		out = append(out, Attribute{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*a = out
	return nil
}

// Extractor generates locator candidates for every element of an HTML
// fragment.
type Extractor interface {
	// Extract parses html and returns one ElementInfo per qualifying element
	// in document order. Blank or element-free input yields an empty result.
	// Returns EPARSE if the markup cannot be parsed at all.
	Extract(html string) ([]*ElementInfo, error)
}
