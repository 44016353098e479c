package encode

import (
	"strings"

	"github.com/signadot/datatemplate/data"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind data.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	sep := color.RGB(255, 0, 196).SprintfFunc()
	for k := data.NullKind; k <= data.ListKind; k++ {
		colors.Map[Colorable{Kind: k, Attr: SepColor}] = sep
	}
	able := Colorable{Attr: ValueColor}
	for _, k := range []data.Kind{data.IntKind, data.LongKind, data.FloatKind, data.DoubleKind} {
		able.Kind = k
		colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	}
	able.Kind = data.NullKind
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Kind = data.BoolKind
	colors.Map[able] = color.CyanString
	able.Kind = data.StringKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Kind = data.BytesKind
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	able.Kind = data.MapKind
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k data.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k data.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}

// wrap returns the escape sequences c puts around text of kind k and
// attribute a.
func (c *Colors) wrap(k data.Kind, a ColorAttr) (prefix, suffix string) {
	const mark = "\x00"
	s := c.Color(k, a, mark)
	i := strings.Index(s, mark)
	if i < 0 {
		return "", ""
	}
	return s[:i], s[i+len(mark):]
}
