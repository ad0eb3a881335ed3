// Package katapult parses the Field Source job export: the field-collected
// document describing poles as built, with photographic/attribute capture
// and service-drop evidence.
package katapult

import (
	"encoding/json"
	"sort"
)

type attrKind int

const (
	attrAbsent attrKind = iota
	attrScalar
	attrWrapped
)

// Attr is one attribute-bag value. The export spells the same attribute
// three ways: absent, a plain scalar, or a single-key wrapper object
// whose inner value is the payload. Attr models that as an explicit sum
// so call sites use one canonical unwrap instead of type-sniffing.
type Attr struct {
	kind   attrKind
	scalar any
	fields map[string]any
}

// UnmarshalJSON accepts either a scalar or an object. Arrays and nulls
// decode as absent; unknown shapes never fail the document parse.
func (a *Attr) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*a = Attr{}
		return nil
	}
	switch t := v.(type) {
	case nil:
		*a = Attr{}
	case map[string]any:
		if len(t) == 0 {
			*a = Attr{}
		} else {
			*a = Attr{kind: attrWrapped, fields: t}
		}
	case []any:
		*a = Attr{}
	default:
		*a = Attr{kind: attrScalar, scalar: t}
	}
	return nil
}

// IsAbsent reports whether the attribute carried no usable value.
func (a Attr) IsAbsent() bool { return a.kind == attrAbsent }

// First is the canonical unwrap: the scalar itself, or for wrapped
// values the payload under the import key when present, then the
// editor-added key, then the lexicographically smallest key. Key-sorted
// fallback keeps the unwrap deterministic for fixed input.
func (a Attr) First() any {
	switch a.kind {
	case attrScalar:
		return a.scalar
	case attrWrapped:
		if v, ok := a.fields["-Imported"]; ok {
			return v
		}
		if v, ok := a.fields["button_added"]; ok {
			return v
		}
		keys := make([]string, 0, len(a.fields))
		for k := range a.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return a.fields[keys[0]]
	}
	return nil
}

// Field returns the named inner field of a wrapped attribute, or nil.
func (a Attr) Field(name string) any {
	if a.kind != attrWrapped {
		return nil
	}
	return a.fields[name]
}

// Fields returns the inner map of a wrapped attribute, or nil.
func (a Attr) Fields() map[string]any {
	if a.kind != attrWrapped {
		return nil
	}
	return a.fields
}

// FirstString unwraps to a non-empty string, or "".
func (a Attr) FirstString() string {
	s, _ := a.First().(string)
	return s
}
