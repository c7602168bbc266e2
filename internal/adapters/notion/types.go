// Package notion provides a resilient Notion REST client for replyhub
package notion

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TextContent is the inner text payload of a rich text span
type TextContent struct {
	Content string `json:"content"`
}

// RichText is one span of a rich_text or title array
type RichText struct {
	PlainText string       `json:"plain_text"`
	Text      *TextContent `json:"text,omitempty"`
}

// SelectOption is the payload of a select property
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue is the payload of a date property
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// Property is the tagged union payload of one database column on a page.
// Type names the variant; exactly one typed field carries the value.
// Value keeps the raw variant payload so callers can test presence for
// types we do not model explicitly
type Property struct {
	Type        string        `json:"type"`
	RichText    []RichText    `json:"rich_text,omitempty"`
	Title       []RichText    `json:"title,omitempty"`
	Text        *TextContent  `json:"text,omitempty"`
	URL         string        `json:"url,omitempty"`
	Number      *float64      `json:"number,omitempty"`
	Select      *SelectOption `json:"select,omitempty"`
	Email       string        `json:"email,omitempty"`
	PhoneNumber string        `json:"phone_number,omitempty"`
	Date        *DateValue    `json:"date,omitempty"`

	// Value is the raw payload keyed by Type, untouched
	Value json.RawMessage `json:"-"`
}

// propertyAlias avoids UnmarshalJSON recursion
type propertyAlias Property

// UnmarshalJSON decodes the known variants and captures the raw payload
// named by the type tag into Value
func (p *Property) UnmarshalJSON(b []byte) error {
	var a propertyAlias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*p = Property(a)

	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if raw, ok := m[p.Type]; ok {
		p.Value = raw
	}
	return nil
}

// HasValue reports whether the variant payload is present and non-empty.
// Null, false, zero, and the empty string count as absent; anything else,
// including an empty array or object, counts as present
func (p Property) HasValue() bool {
	switch string(p.Value) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}

// Page is a row of a Notion database.
// Order preserves the wire order of property names; first-match scans
// over columns must use it, Go map iteration is randomized
type Page struct {
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
	Order      []string            `json:"-"`
}

type pageAlias Page

// UnmarshalJSON decodes the page and captures property key order
func (p *Page) UnmarshalJSON(b []byte) error {
	var a pageAlias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*p = Page(a)
	order, err := objectKeyOrder(b, "properties")
	if err != nil {
		return err
	}
	p.Order = order
	return nil
}

// QueryPage is one page of database query results
type QueryPage struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// PropertySpec describes one column of a database schema
type PropertySpec struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Database is the schema-bearing view of a Notion database.
// Order preserves the wire order of column names
type Database struct {
	ID         string                  `json:"id"`
	Properties map[string]PropertySpec `json:"properties"`
	Order      []string                `json:"-"`
}

type databaseAlias Database

// UnmarshalJSON decodes the database and captures column key order
func (d *Database) UnmarshalJSON(b []byte) error {
	var a databaseAlias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*d = Database(a)
	order, err := objectKeyOrder(b, "properties")
	if err != nil {
		return err
	}
	d.Order = order
	return nil
}

// objectKeyOrder returns the key order of the top-level object member named
// field, which must be an object. Returns nil when the member is absent
func objectKeyOrder(b []byte, field string) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		if key != field {
			// skip the value wholesale
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}
		open, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if open != json.Delim('{') {
			return nil, nil
		}
		var keys []string
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			k, _ := kt.(string)
			keys = append(keys, k)
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
		}
		return keys, nil
	}
	return nil, nil
}

// RichTextWrite is one span in a write payload
type RichTextWrite struct {
	Text TextContent `json:"text"`
}

// PropertyWrite is the outbound form of a property update.
// Only rich_text and title columns accept generated replies
type PropertyWrite struct {
	RichText []RichTextWrite `json:"rich_text,omitempty"`
	Title    []RichTextWrite `json:"title,omitempty"`
}

// RichTextValue builds a single-span rich_text write payload
func RichTextValue(s string) PropertyWrite {
	return PropertyWrite{RichText: []RichTextWrite{{Text: TextContent{Content: s}}}}
}

// TitleValue builds a single-span title write payload
func TitleValue(s string) PropertyWrite {
	return PropertyWrite{Title: []RichTextWrite{{Text: TextContent{Content: s}}}}
}
