package eval

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
	"github.com/signadot/datatemplate/tmpl"
)

const personDoc = `
type: record
name: Person
namespace: test
fields:
- {name: name, type: string}
- {name: age, type: int}
- {name: tags, type: {type: array, items: string}}
- {name: pet, type: [null, string, {type: record, name: Pet, fields: [{name: kind, type: string}]}]}
`

func person(t *testing.T) *tmpl.Record {
	t.Helper()
	s, err := schema.Parse([]byte(personDoc))
	if err != nil {
		t.Fatal(err)
	}
	m := data.MapOf(
		"name", "ada",
		"age", int32(36),
		"tags", data.ListOf("x", "y"),
		"pet", data.MapOf("test.Pet", data.MapOf("kind", "cat")),
	)
	return tmpl.NewRecord(m, s.(*schema.Record))
}

func TestProject(t *testing.T) {
	r := person(t)
	tests := []struct {
		expr string
		want any
	}{
		{`name`, "ada"},
		{`age + 1`, int32(37)},
		{`doc.tags[1]`, "y"},
		{`len(tags)`, int32(2)},
		{`getpath('pet."test.Pet".kind')`, "cat"},
		{`haspath("nope")`, false},
		{`typeof("age")`, "int"},
		{`typeof('pet."test.Pet"')`, "test.Pet"},
		{`stringify(age)`, "36"},
		{`greeting + ", " + name`, "hi, ada"},
		{`{"n": name, "old": age > 30}`, data.MapOf("n", "ada", "old", true)},
	}
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			got, err := Project(tc.expr, r, Env{"greeting": "hi"})
			if err != nil {
				t.Fatal(err)
			}
			if !data.Equal(tc.want, got) {
				t.Errorf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestProjectEnvOverrides(t *testing.T) {
	got, err := Project(`name`, person(t), Env{"name": "bob"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("bob", got); diff != "" {
		t.Error(diff)
	}
}

func TestProjectErrors(t *testing.T) {
	r := person(t)
	if _, err := Project(`name +`, r, nil); err == nil {
		t.Error("syntax error accepted")
	}
	if _, err := Project(`typeof("nope")`, r, nil); !errors.Is(err, tmpl.ErrUnknownField) {
		t.Errorf("got %v", err)
	}
}

func TestSchemaAt(t *testing.T) {
	s := person(t).Schema()
	tests := []struct {
		path string
		want string
		err  error
	}{
		{"", "test.Person", nil},
		{"tags[0]", "string", nil},
		{"pet.null", "null", nil},
		{"pet.int", "", tmpl.ErrUnknownMember},
		{"name.x", "", data.ErrPath},
		{"tags.x", "", data.ErrPath},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			p, err := data.ParsePath(tc.path)
			if err != nil {
				t.Fatal(err)
			}
			got, err := SchemaAt(s, p)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("got %v want %v", err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != tc.want {
				t.Errorf("got %s want %s", got, tc.want)
			}
		})
	}
}
