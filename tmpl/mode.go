package tmpl

import "fmt"

// GetMode controls what a record read returns for an absent field.
type GetMode uint8

const (
	// GetNull reports an absent field as absent and ignores defaults.
	GetNull GetMode = iota
	// GetDefault returns the field default, if any.
	GetDefault
	// GetStrict returns the field default, if any, and fails for a required
	// field without one.
	GetStrict
)

var getModeNames = [...]string{
	GetNull:    "null",
	GetDefault: "default",
	GetStrict:  "strict",
}

func (m GetMode) String() string {
	if int(m) < len(getModeNames) {
		return getModeNames[m]
	}
	return fmt.Sprintf("GetMode(%d)", m)
}

// ParseGetMode parses the String form of a GetMode.
func ParseGetMode(s string) (GetMode, error) {
	for i, n := range getModeNames {
		if n == s {
			return GetMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown get mode %q", s)
}

// SetMode controls what a record write does with a null value.
type SetMode uint8

const (
	// IgnoreNull leaves the field unchanged.
	IgnoreNull SetMode = iota
	// RemoveIfNull removes the field.
	RemoveIfNull
	// RemoveOptionalIfNull removes an optional field and fails for a
	// required one.
	RemoveOptionalIfNull
	// DisallowNull fails.
	DisallowNull
)

var setModeNames = [...]string{
	IgnoreNull:           "ignore",
	RemoveIfNull:         "remove",
	RemoveOptionalIfNull: "remove-optional",
	DisallowNull:         "disallow",
}

func (m SetMode) String() string {
	if int(m) < len(setModeNames) {
		return setModeNames[m]
	}
	return fmt.Sprintf("SetMode(%d)", m)
}

// ParseSetMode parses the String form of a SetMode.
func ParseSetMode(s string) (SetMode, error) {
	for i, n := range setModeNames {
		if n == s {
			return SetMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown set mode %q", s)
}
