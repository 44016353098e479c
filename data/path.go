package data

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: a map key or a list index.
type Segment struct {
	Key   string
	Index int
	IsKey bool
}

func KeySegment(k string) Segment { return Segment{Key: k, IsKey: true} }
func IndexSegment(i int) Segment  { return Segment{Index: i} }

func (s Segment) String() string {
	if !s.IsKey {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	if quoteKey(s.Key) {
		return strconv.Quote(s.Key)
	}
	return s.Key
}

// Path addresses a value inside a tree, e.g. a.b[0]."c d".
type Path []Segment

func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		if s.IsKey && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

func quoteKey(k string) bool {
	if k == "" {
		return true
	}
	return strings.ContainsAny(k, ".[]\"' \t\n")
}

// ParsePath parses the kinded path syntax: keys separated by '.', indices
// in brackets, keys with special characters double quoted. The empty string
// is the root.
func ParsePath(s string) (Path, error) {
	var (
		p Path
		i int
		n = len(s)
	)
	for i < n {
		switch c := s[i]; {
		case c == '[':
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				return nil, fmt.Errorf("%w: unterminated index in %q", ErrPath, s)
			}
			idx, err := strconv.Atoi(s[i+1 : i+j])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("%w: bad index %q in %q", ErrPath, s[i+1:i+j], s)
			}
			p = append(p, IndexSegment(idx))
			i += j + 1
		case c == '.':
			if i == 0 || i == n-1 {
				return nil, fmt.Errorf("%w: misplaced '.' in %q", ErrPath, s)
			}
			i++
			if s[i] == '.' || s[i] == '[' {
				return nil, fmt.Errorf("%w: empty key in %q", ErrPath, s)
			}
			continue
		case c == '"':
			q, err := strconv.QuotedPrefix(s[i:])
			if err != nil {
				return nil, fmt.Errorf("%w: bad quoted key in %q", ErrPath, s)
			}
			k, _ := strconv.Unquote(q)
			p = append(p, KeySegment(k))
			i += len(q)
		default:
			j := i
			for j < n && s[j] != '.' && s[j] != '[' {
				j++
			}
			p = append(p, KeySegment(s[i:j]))
			i = j
		}
		if i < n && len(p) > 0 && s[i] != '.' && s[i] != '[' {
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrPath, s[i], s)
		}
	}
	return p, nil
}

// GetPath returns the value at p. ok is false when a key along the path is
// absent.
func GetPath(root any, p Path) (v any, ok bool, err error) {
	v = root
	for i, seg := range p {
		switch x := v.(type) {
		case *Map:
			if !seg.IsKey {
				return nil, false, fmt.Errorf("%w: index %s applied to map at %s", ErrPath, seg, p[:i])
			}
			v, ok = x.Get(seg.Key)
			if !ok {
				return nil, false, nil
			}
		case *List:
			if seg.IsKey {
				return nil, false, fmt.Errorf("%w: key %s applied to list at %s", ErrPath, seg, p[:i])
			}
			v, err = x.Get(seg.Index)
			if err != nil {
				return nil, false, fmt.Errorf("%s: %w", p[:i+1], err)
			}
		default:
			return nil, false, fmt.Errorf("%w: %s applied to scalar at %s", ErrPath, seg, p[:i])
		}
	}
	return v, true, nil
}

// SetPath stores v at p. The parent of the last segment must exist.
func SetPath(root any, p Path, v any) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: cannot set root", ErrPath)
	}
	parent, ok, err := GetPath(root, p[:len(p)-1])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s does not exist", ErrPath, p[:len(p)-1])
	}
	last := p[len(p)-1]
	switch x := parent.(type) {
	case *Map:
		if !last.IsKey {
			return fmt.Errorf("%w: index %s applied to map", ErrPath, last)
		}
		return x.Put(last.Key, v)
	case *List:
		if last.IsKey {
			return fmt.Errorf("%w: key %s applied to list", ErrPath, last)
		}
		_, err := x.Set(last.Index, v)
		return err
	}
	return fmt.Errorf("%w: %s is a scalar", ErrPath, p[:len(p)-1])
}
