package encode

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/datatemplate/data"
)

func TestEncode(t *testing.T) {
	doc := data.MapOf(
		"name", "ada",
		"tags", data.ListOf("a", "b"),
		"empty", data.NewMap(),
		"n", int32(3),
	)
	tests := []struct {
		name string
		opts []EncodeOption
		want string
	}{
		{"compact json", nil, `{"name":"ada","tags":["a","b"],"empty":{},"n":3}` + "\n"},
		{"indented json", []EncodeOption{Indent(2)}, `{
  "name": "ada",
  "tags": [
    "a",
    "b"
  ],
  "empty": {},
  "n": 3
}
`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			if err := Encode(doc, &sb, tc.opts...); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, sb.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeYAML(t *testing.T) {
	doc := data.MapOf("name", "ada", "tags", data.ListOf("a", "b"), "n", int32(3))
	want := "name: ada\ntags:\n  - a\n  - b\nn: 3\n"
	got := MustString(doc, EncodeFormat(YAMLFormat))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEncodeColors(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	doc := data.MapOf("a", true)
	plain := MustString(doc, Indent(2))
	colored := MustString(doc, Indent(2), EncodeColors(NewColors()))
	if plain == colored || !strings.Contains(colored, "\x1b[") {
		t.Errorf("no color in %q", colored)
	}
	ycolored := MustString(doc, EncodeFormat(YAMLFormat), EncodeColors(NewColors()))
	if !strings.Contains(ycolored, "\x1b[") {
		t.Errorf("no color in %q", ycolored)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": JSONFormat, "YAML": YAMLFormat, "yml": YAMLFormat} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("%s: %v %v", in, got, err)
		}
	}
	if _, err := ParseFormat("toml"); err == nil {
		t.Error("toml accepted")
	}
}
