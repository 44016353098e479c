package libdiff

import (
	"fmt"

	"github.com/signadot/datatemplate/data"

	jsonpatch "github.com/evanphx/json-patch"
)

// MergePatch returns the JSON merge patch (RFC 7386) turning from into to.
func MergePatch(from, to any) (any, error) {
	a, err := data.Marshal(from)
	if err != nil {
		return nil, err
	}
	b, err := data.Marshal(to)
	if err != nil {
		return nil, err
	}
	p, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	return data.Unmarshal(p)
}

// ApplyMergePatch applies a JSON merge patch to doc and returns the result.
// doc is not modified.
func ApplyMergePatch(doc, patch any) (any, error) {
	d, err := data.Marshal(doc)
	if err != nil {
		return nil, err
	}
	p, err := data.Marshal(patch)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, p)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	return data.Unmarshal(out)
}

// ApplyJSONPatch applies a JSON patch (RFC 6902) given as a list of
// operations to doc and returns the result. doc is not modified.
func ApplyJSONPatch(doc, ops any) (any, error) {
	o, err := data.Marshal(ops)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.DecodePatch(o)
	if err != nil {
		return nil, fmt.Errorf("json patch: %w", err)
	}
	d, err := data.Marshal(doc)
	if err != nil {
		return nil, err
	}
	out, err := patch.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("json patch: %w", err)
	}
	return data.Unmarshal(out)
}
