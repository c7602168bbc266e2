package notion

import (
	"encoding/json"
	"testing"
)

func TestProperty_Unmarshal_TaggedVariants(t *testing.T) {
	t.Parallel()

	var p Property
	raw := `{"type":"rich_text","rich_text":[{"plain_text":"hello"}]}`
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal rich_text: %v", err)
	}
	if p.Type != "rich_text" || len(p.RichText) != 1 || p.RichText[0].PlainText != "hello" {
		t.Fatalf("rich_text variant mismatch: %+v", p)
	}
	if string(p.Value) != `[{"plain_text":"hello"}]` {
		t.Fatalf("raw value not captured: %s", p.Value)
	}

	var sel Property
	if err := json.Unmarshal([]byte(`{"type":"select","select":{"name":"spam"}}`), &sel); err != nil {
		t.Fatalf("unmarshal select: %v", err)
	}
	if sel.Select == nil || sel.Select.Name != "spam" {
		t.Fatalf("select variant mismatch: %+v", sel)
	}

	var num Property
	if err := json.Unmarshal([]byte(`{"type":"number","number":0}`), &num); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if num.Number == nil || *num.Number != 0 {
		t.Fatalf("number zero should still decode: %+v", num)
	}
}

func TestProperty_HasValue_Falsiness(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want bool
	}{
		{`{"type":"checkbox","checkbox":false}`, false},
		{`{"type":"checkbox","checkbox":true}`, true},
		{`{"type":"number","number":0}`, false},
		{`{"type":"number","number":7}`, true},
		{`{"type":"url","url":null}`, false},
		{`{"type":"url","url":""}`, false},
		{`{"type":"url","url":"https://x"}`, true},
		{`{"type":"people","people":[]}`, true},
		{`{"type":"date"}`, false},
	}
	for _, c := range cases {
		var p Property
		if err := json.Unmarshal([]byte(c.raw), &p); err != nil {
			t.Fatalf("unmarshal %s: %v", c.raw, err)
		}
		if got := p.HasValue(); got != c.want {
			t.Fatalf("HasValue(%s) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestPage_Unmarshal_PreservesPropertyOrder(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": "p1",
		"properties": {
			"Zulu": {"type":"rich_text","rich_text":[]},
			"Alpha": {"type":"title","title":[]},
			"Mike": {"type":"number","number":1}
		}
	}`
	var p Page
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal page: %v", err)
	}
	want := []string{"Zulu", "Alpha", "Mike"}
	if len(p.Order) != len(want) {
		t.Fatalf("order = %v, want %v", p.Order, want)
	}
	for i := range want {
		if p.Order[i] != want[i] {
			t.Fatalf("order = %v, want %v", p.Order, want)
		}
	}
	if len(p.Properties) != 3 || p.Properties["Mike"].Number == nil {
		t.Fatalf("properties mismatch: %+v", p.Properties)
	}
}

func TestDatabase_Unmarshal_PreservesColumnOrder(t *testing.T) {
	t.Parallel()

	raw := `{"id":"db","properties":{"B":{"id":"1","name":"B","type":"rich_text"},"A":{"id":"2","name":"A","type":"title"}}}`
	var d Database
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unmarshal database: %v", err)
	}
	if len(d.Order) != 2 || d.Order[0] != "B" || d.Order[1] != "A" {
		t.Fatalf("order = %v", d.Order)
	}
	if d.Properties["A"].Type != "title" {
		t.Fatalf("spec mismatch: %+v", d.Properties)
	}
}

func TestPropertyWrite_Builders(t *testing.T) {
	t.Parallel()

	rt := RichTextValue("thanks")
	b, err := json.Marshal(rt)
	if err != nil {
		t.Fatalf("marshal rich_text write: %v", err)
	}
	if want := `{"rich_text":[{"text":{"content":"thanks"}}]}`; string(b) != want {
		t.Fatalf("rich_text write = %s, want %s", b, want)
	}

	ti := TitleValue("thanks")
	b, err = json.Marshal(ti)
	if err != nil {
		t.Fatalf("marshal title write: %v", err)
	}
	if want := `{"title":[{"text":{"content":"thanks"}}]}`; string(b) != want {
		t.Fatalf("title write = %s, want %s", b, want)
	}
}
