package tmpl

import (
	"time"

	"github.com/signadot/datatemplate/coerce"
	"github.com/signadot/datatemplate/data"
	"github.com/signadot/datatemplate/schema"
)

// Hand written equivalents of generated record types, used across the
// tests of this package.

const fooDoc = `
type: record
name: Foo
namespace: test
fields:
  - name: name
    type: string
  - name: count
    type: int
    optional: true
  - name: level
    type: long
    default: 7
  - name: color
    type: {type: enum, name: Color, symbols: [RED, GREEN, $UNKNOWN]}
    optional: true
  - name: bar
    type: {type: record, name: Bar, fields: [{name: x, type: int}]}
    optional: true
  - name: bars
    type: {type: array, items: Bar}
    optional: true
  - name: ints
    type: {type: array, items: int}
    optional: true
  - name: tags
    type: {type: map, values: string}
    optional: true
  - name: opts
    type: {type: map, values: string}
    default: {k: v}
  - name: u
    type: [null, int, string, Bar]
    optional: true
  - name: hash
    type: {type: fixed, name: Hash4, size: 4}
    optional: true
  - name: timeout
    type: long
    optional: true
`

var (
	fooSchema, barSchema *schema.Record
	intsSchema           *schema.Array
	barsSchema           *schema.Array
	tagsSchema           *schema.Map
	unionSchema          *schema.Union
	hashSchema           *schema.Fixed

	fName, fCount, fLevel, fColor, fBar, fBars, fInts *schema.Field
	fTags, fOpts, fU, fHash, fTimeout, barX           *schema.Field
)

type Color string

const (
	ColorRed     Color = "RED"
	ColorGreen   Color = "GREEN"
	ColorUnknown Color = coerce.UnknownSymbol
)

func (Color) EnumSymbols() []string {
	return []string{string(ColorRed), string(ColorGreen), string(ColorUnknown)}
}

type millis time.Duration

type millisCoercer struct{}

func (millisCoercer) Input(d millis) (any, error) {
	return time.Duration(d).Milliseconds(), nil
}

func (millisCoercer) Output(v any) (millis, error) {
	n, err := coerce.Output[int64](v)
	if err != nil {
		return 0, err
	}
	return millis(time.Duration(n) * time.Millisecond), nil
}

type Bar struct{ *Record }

func NewBar(m *data.Map) *Bar {
	return &Bar{NewRecord(m, barSchema)}
}

func (b *Bar) X() (int32, bool, error) {
	return GetDirect[int32](b.Record, barX, GetStrict)
}

func (b *Bar) SetX(x int32) error {
	return SetDirect(b.Record, barX, &x, DisallowNull)
}

type Foo struct{ *Record }

func NewFoo(m *data.Map) *Foo {
	return &Foo{NewRecord(m, fooSchema)}
}

func (f *Foo) Name() (string, bool, error) {
	return GetDirect[string](f.Record, fName, GetStrict)
}

func (f *Foo) SetName(v string) error {
	return SetDirect(f.Record, fName, &v, DisallowNull)
}

func (f *Foo) Bar() (*Bar, bool, error) {
	return GetWrapped[*Bar](f.Record, fBar, GetStrict)
}

func (f *Foo) SetBar(b *Bar) error {
	return SetWrapped(f.Record, fBar, b, RemoveOptionalIfNull)
}

func (f *Foo) Bars() (*Array[*Bar], bool, error) {
	return GetWrapped[*Array[*Bar]](f.Record, fBars, GetStrict)
}

func (f *Foo) Ints() (*Array[int32], bool, error) {
	return GetWrapped[*Array[int32]](f.Record, fInts, GetStrict)
}

func (f *Foo) U() (*Union, bool, error) {
	return GetWrapped[*Union](f.Record, fU, GetStrict)
}

func (f *Foo) Timeout() (millis, bool, error) {
	return GetDirect[millis](f.Record, fTimeout, GetStrict)
}

func (f *Foo) SetTimeout(v millis) error {
	return SetDirect(f.Record, fTimeout, &v, RemoveOptionalIfNull)
}

func field(r *schema.Record, name string) *schema.Field {
	f, ok := r.Field(name)
	if !ok {
		panic("no field " + name)
	}
	return f
}

func init() {
	s, err := schema.Parse([]byte(fooDoc))
	if err != nil {
		panic(err)
	}
	fooSchema = s.(*schema.Record)
	fName = field(fooSchema, "name")
	fCount = field(fooSchema, "count")
	fLevel = field(fooSchema, "level")
	fColor = field(fooSchema, "color")
	fBar = field(fooSchema, "bar")
	fBars = field(fooSchema, "bars")
	fInts = field(fooSchema, "ints")
	fTags = field(fooSchema, "tags")
	fOpts = field(fooSchema, "opts")
	fU = field(fooSchema, "u")
	fHash = field(fooSchema, "hash")
	fTimeout = field(fooSchema, "timeout")
	barSchema = fBar.Type.(*schema.Record)
	barX = field(barSchema, "x")
	intsSchema = fInts.Type.(*schema.Array)
	barsSchema = fBars.Type.(*schema.Array)
	tagsSchema = fTags.Type.(*schema.Map)
	unionSchema = fU.Type.(*schema.Union)
	hashSchema = fHash.Type.(*schema.Fixed)

	coerce.MustRegister[millis](millisCoercer{})
	mustRegister(Constructor[*Bar]{
		FromMap: func(m *data.Map, _ schema.Schema) (*Bar, error) { return NewBar(m), nil },
	})
	mustRegister(Constructor[*Foo]{
		FromMap: func(m *data.Map, _ schema.Schema) (*Foo, error) { return NewFoo(m), nil },
	})
	mustRegister(Constructor[*Array[*Bar]]{
		FromList: func(l *data.List, s schema.Schema) (*Array[*Bar], error) {
			return NewWrappingArray[*Bar](l, s.(*schema.Array))
		},
	})
	mustRegister(Constructor[*Array[int32]]{
		FromList: func(l *data.List, s schema.Schema) (*Array[int32], error) {
			return NewDirectArray[int32](l, s.(*schema.Array))
		},
	})
	mustRegister(Constructor[*Map[string]]{
		FromMap: func(m *data.Map, s schema.Schema) (*Map[string], error) {
			return NewDirectMap[string](m, s.(*schema.Map))
		},
	})
}
