package schema

import (
	"errors"
	"testing"

	"github.com/signadot/datatemplate/data"
)

func TestFieldBelongsToOneRecord(t *testing.T) {
	f := &Field{Name: "x", Type: Int}
	a, err := NewRecord("com.example.A", f)
	if err != nil {
		t.Fatal(err)
	}
	if f.Record() != a {
		t.Errorf("field record = %v, want %v", f.Record(), a)
	}
	if _, err := NewRecord("com.example.B", f); !errors.Is(err, ErrFieldOwned) {
		t.Errorf("err = %v, want ErrFieldOwned", err)
	}
	if f.Record() != a {
		t.Error("failed record build changed field ownership")
	}
}

func TestDuplicateField(t *testing.T) {
	_, err := NewRecord("R", &Field{Name: "x", Type: Int}, &Field{Name: "x", Type: Long})
	if !errors.Is(err, ErrDuplicateField) {
		t.Errorf("err = %v, want ErrDuplicateField", err)
	}
}

func TestUnionKeys(t *testing.T) {
	rec, _ := NewRecord("com.example.Point")
	u, err := UnionOf(Null, Int, String, rec, NewArray(Int))
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"null", "int", "string", "com.example.Point", "array"} {
		if _, ok := u.Member(key); !ok {
			t.Errorf("missing member %q in %s", key, u)
		}
	}
	if !u.HasNull() {
		t.Error("HasNull = false")
	}
	if _, err := UnionOf(Int, Int); !errors.Is(err, ErrDuplicateMember) {
		t.Errorf("err = %v, want ErrDuplicateMember", err)
	}
}

func TestStorageKind(t *testing.T) {
	tests := []struct {
		s    Schema
		want data.Kind
	}{
		{Int, data.IntKind},
		{Long, data.LongKind},
		{NewEnum("E", "A"), data.StringKind},
		{NewFixed("F", 2), data.BytesKind},
		{NewArray(Int), data.ListKind},
		{NewMap(Int), data.MapKind},
		{NewTyperef("T", Double), data.DoubleKind},
	}
	for _, tt := range tests {
		t.Run(tt.s.String(), func(t *testing.T) {
			if got := StorageKind(tt.s); got != tt.want {
				t.Errorf("StorageKind = %v, want %v", got, tt.want)
			}
		})
	}
}

const personSchema = `
type: record
name: Person
namespace: com.example
fields:
  - name: name
    type: string
  - name: age
    type: int
    optional: true
  - name: score
    type: double
    default: 1
  - name: color
    type:
      type: enum
      name: Color
      symbols: [RED, GREEN]
    default: GREEN
  - name: id
    type: {type: fixed, name: Id, size: 2}
    optional: true
  - name: friends
    type: {type: array, items: Person}
    optional: true
  - name: tags
    type: {type: map, values: long}
    default: {a: 1}
  - name: choice
    type: [null, int, {alias: text, type: string}]
    default: {text: hi}
  - name: when
    type: {type: typeref, name: Timestamp, ref: long}
    optional: true
`

func TestParse(t *testing.T) {
	reg := NewRegistry()
	s, err := reg.Parse([]byte(personSchema))
	if err != nil {
		t.Fatal(err)
	}
	rec, ok := s.(*Record)
	if !ok {
		t.Fatalf("got %T", s)
	}
	if rec.FullName() != "com.example.Person" {
		t.Errorf("name = %s", rec.FullName())
	}
	friends, _ := rec.Field("friends")
	if friends.Type.(*Array).Items != rec {
		t.Error("recursive reference not resolved to the record")
	}
	score, _ := rec.Field("score")
	if score.Default != float64(1) {
		t.Errorf("score default = %T %v", score.Default, score.Default)
	}
	tags, _ := rec.Field("tags")
	if !data.Equal(tags.Default, data.MapOf("a", int64(1))) {
		t.Errorf("tags default = %v", tags.Default)
	}
	choice, _ := rec.Field("choice")
	if !data.Equal(choice.Default, data.MapOf("text", "hi")) {
		t.Errorf("choice default = %v", choice.Default)
	}
	when, _ := rec.Field("when")
	if Dereference(when.Type) != Long {
		t.Errorf("typeref deref = %v", Dereference(when.Type))
	}
	if _, ok := reg.Lookup("com.example.Color"); !ok {
		t.Error("enum not registered")
	}
	// later documents resolve earlier names
	arr, err := reg.Parse([]byte(`{"type": "array", "items": "com.example.Id"}`))
	if err != nil {
		t.Fatal(err)
	}
	if arr.(*Array).Items.Kind() != FixedKind {
		t.Errorf("items = %v", arr.(*Array).Items)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"unknown type", `{"type": "array", "items": "Nope"}`, ErrUnknownType},
		{"bad default", `{"type": "record", "name": "R", "fields": [{"name": "x", "type": "int", "default": "s"}]}`, ErrDefault},
		{"enum default", `{"type": "record", "name": "R", "fields": [{"name": "x", "type": {"type": "enum", "name": "E", "symbols": ["A"]}, "default": "B"}]}`, ErrDefault},
		{"fixed default size", `{"type": "record", "name": "R", "fields": [{"name": "x", "type": {"type": "fixed", "name": "F", "size": 2}, "default": "abc"}]}`, ErrDefault},
		{"no type", `{"name": "R"}`, ErrParse},
		{"dup field", `{"type": "record", "name": "R", "fields": [{"name": "x", "type": "int"}, {"name": "x", "type": "int"}]}`, ErrDuplicateField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); !errors.Is(err, tt.err) {
				t.Errorf("err = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestJSONSchema(t *testing.T) {
	s, err := Parse([]byte(personSchema))
	if err != nil {
		t.Fatal(err)
	}
	js := JSONSchema(s)
	if js.Ref != "#/$defs/com.example.Person" {
		t.Fatalf("root ref = %q", js.Ref)
	}
	person := js.Definitions["com.example.Person"]
	if person == nil {
		t.Fatal("no person definition")
	}
	if len(person.Required) != 1 || person.Required[0] != "name" {
		t.Errorf("required = %v", person.Required)
	}
	if _, ok := person.Properties.Get("friends"); !ok {
		t.Error("missing friends property")
	}
	if js.Definitions["com.example.Color"] == nil {
		t.Error("missing enum definition")
	}
}

func TestParseAll(t *testing.T) {
	reg := NewRegistry()
	docs := `
type: fixed
name: acme.Md5
size: 16
---
type: record
name: acme.Blob
fields:
  - name: sum
    type: Md5
`
	ss, err := reg.ParseAll([]byte(docs))
	if err != nil {
		t.Fatal(err)
	}
	if len(ss) != 2 {
		t.Fatalf("got %d schemas", len(ss))
	}
	blob := ss[1].(*Record)
	sum, _ := blob.Field("sum")
	if sum.Type != ss[0] {
		t.Errorf("sum type = %v", sum.Type)
	}
}
