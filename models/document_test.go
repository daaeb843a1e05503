package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDocumentRoundTrip(t *testing.T) {
	deep := Block{Type: "bulletListItem", Props: map[string]any{"textColor": "default"}}
	for i := 0; i < 12; i++ {
		deep = Block{
			ID:       "b" + string(rune('a'+i)),
			Type:     "bulletListItem",
			Props:    map[string]any{"level": float64(i), "bold": i%2 == 0},
			Content:  json.RawMessage(`[{"type":"text","text":"item","styles":{}}]`),
			Children: []Block{deep},
		}
	}

	cases := map[string]Document{
		"empty": {},
		"heading": {
			{
				ID:       "h1",
				Type:     "heading",
				Props:    map[string]any{"level": float64(2), "textAlignment": "left"},
				Content:  json.RawMessage(`[{"type":"text","text":"패치 노트","styles":{"bold":true}}]`),
				Children: []Block{},
			},
			{Type: "paragraph", Props: map[string]any{}},
		},
		"deep": {deep},
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := EncodeDocument(doc)
			if err != nil {
				t.Fatalf("EncodeDocument: %v", err)
			}
			got, err := DecodeDocument(raw)
			if err != nil {
				t.Fatalf("DecodeDocument: %v", err)
			}
			if !reflect.DeepEqual(got, doc) {
				t.Fatalf("round trip mismatch\n got: %#v\nwant: %#v", got, doc)
			}
		})
	}
}

func TestEncodeDocument_NilIsEmptyArray(t *testing.T) {
	raw, err := EncodeDocument(nil)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("expected [], got %s", raw)
	}
}

func TestDecodeDocument_Invalid(t *testing.T) {
	if _, err := DecodeDocument([]byte("{not json")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTableNames(t *testing.T) {
	if got := (Notice{}).TableName(); got != "stay_notice" {
		t.Errorf("Notice.TableName() = %s", got)
	}
	if got := (PreRegistration{}).TableName(); got != "stay_pre_registration" {
		t.Errorf("PreRegistration.TableName() = %s", got)
	}
}

func TestDocument_ClientJSONSurvives(t *testing.T) {
	cases := map[string]string{
		"no props or children": `[{"type":"paragraph","content":[{"type":"text","text":"hi","styles":{}}]}]`,
		"empty props kept":     `[{"id":"p1","type":"paragraph","props":{},"children":[]}]`,
		"unknown keys":         `[{"type":"image","props":{"url":"https://cdn.stay.kr/a.png"},"x-caption":"맵","meta":{"w":640}}]`,
		"explicit nulls":       `[{"type":"paragraph","props":null,"children":null,"content":null}]`,
		"nested":               `[{"type":"bulletListItem","children":[{"type":"bulletListItem","extra":[1,2]}]}]`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := DecodeDocument([]byte(in))
			if err != nil {
				t.Fatalf("DecodeDocument: %v", err)
			}
			out, err := EncodeDocument(doc)
			if err != nil {
				t.Fatalf("EncodeDocument: %v", err)
			}
			var want, got any
			if err := json.Unmarshal([]byte(in), &want); err != nil {
				t.Fatalf("bad input: %v", err)
			}
			if err := json.Unmarshal(out, &got); err != nil {
				t.Fatalf("bad output %s: %v", out, err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("stored JSON differs\n got: %s\nwant: %s", out, in)
			}
		})
	}
}
