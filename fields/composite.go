package fields

import (
	"fmt"
	"reflect"

	micromodels "github.com/tonnydourado/micromodels"
)

// NestedField wraps a schema: the native value is a *micromodels.Model built
// from the raw mapping. Use it to nest one object inside another:
//
//	child := micromodels.NewSchema().Field("value", fields.Int())
//	parent := micromodels.NewSchema().
//		Field("name", fields.Text()).
//		Field("child", fields.Nested(child))
//
// With a related name set, every nested instance constructed through this
// field gets that attribute pointed back at the containing instance. The
// relation is non-owning and cycles are expected.
type NestedField struct {
	base
	schema      *micromodels.Schema
	relatedName string
	owner       *micromodels.Model
}

// Nested returns a field whose native value is an instance of schema. The
// default constructs an empty instance.
func Nested(schema *micromodels.Schema, opts ...Option) *NestedField {
	f := &NestedField{base: newBase(opts), schema: schema}
	if f.def == nil {
		f.def = func() any { return schema.New() }
	}
	f.conv = f
	return f
}

// RelatedName sets the attribute assigned on nested instances to point back
// at the containing instance.
func (f *NestedField) RelatedName(name string) *NestedField {
	f.relatedName = name
	return f
}

// BindOwner records the containing instance for back-reference assignment.
func (f *NestedField) BindOwner(m *micromodels.Model) { f.owner = m }

func (f *NestedField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	c.owner = nil
	return &c
}

func (f *NestedField) convertNative(raw any) (any, error) {
	return buildNested(f.schema, raw, f.relatedName, f.owner)
}

func (f *NestedField) convertSerial(v any) (any, error) {
	m, ok := v.(*micromodels.Model)
	if !ok {
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("expected *micromodels.Model, got %T", v)}
	}
	return m.ToDict(true)
}

// buildNested applies the nested-object construction rule: an instance of
// the wrapped schema passes through, anything else must be a mapping (nil
// counts as an empty one) and constructs a fresh instance. The back
// reference, when named, always points at the containing instance.
func buildNested(schema *micromodels.Schema, raw any, relatedName string, owner *micromodels.Model) (*micromodels.Model, error) {
	var obj *micromodels.Model
	switch t := raw.(type) {
	case *micromodels.Model:
		obj = t
	case nil:
		obj = schema.New()
	case map[string]any:
		obj = schema.New()
		if err := obj.SetData(t); err != nil {
			return nil, err
		}
	default:
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("expected mapping for nested object, got %T", raw)}
	}
	if relatedName != "" {
		if err := obj.Set(relatedName, owner); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// NestedListField wraps a schema for repeated nested objects: the native
// value is an ordered []*micromodels.Model.
type NestedListField struct {
	base
	schema      *micromodels.Schema
	relatedName string
	owner       *micromodels.Model
}

// NestedList returns a field whose native value is a slice of instances of
// schema. The default is an empty slice.
func NestedList(schema *micromodels.Schema, opts ...Option) *NestedListField {
	f := &NestedListField{base: newBase(opts), schema: schema}
	if f.def == nil {
		f.def = func() any { return []*micromodels.Model{} }
	}
	f.conv = f
	return f
}

// RelatedName sets the attribute assigned on each nested instance to point
// back at the containing instance.
func (f *NestedListField) RelatedName(name string) *NestedListField {
	f.relatedName = name
	return f
}

// BindOwner records the containing instance for back-reference assignment.
func (f *NestedListField) BindOwner(m *micromodels.Model) { f.owner = m }

func (f *NestedListField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	c.owner = nil
	return &c
}

func (f *NestedListField) convertNative(raw any) (any, error) {
	items, err := asList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]*micromodels.Model, 0, len(items))
	for _, it := range items {
		obj, err := buildNested(f.schema, it, f.relatedName, f.owner)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

func (f *NestedListField) convertSerial(v any) (any, error) {
	ms, ok := v.([]*micromodels.Model)
	if !ok {
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("expected []*micromodels.Model, got %T", v)}
	}
	out := make([]any, 0, len(ms))
	for _, m := range ms {
		d, err := m.ToDict(true)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// ListField wraps a single scalar field instance as the conversion engine
// for a sequence of values. One wrapped instance is reused across all items;
// each populate-then-convert cycle fully consumes the pending raw value
// before the next item.
type ListField struct {
	base
	inner micromodels.Field
}

// List returns a field whose native value is a slice converted element-wise
// through inner. Source, Default, Required and Validators apply to the list
// itself, not to inner. The default is an empty slice.
func List(inner micromodels.Field, opts ...Option) *ListField {
	f := &ListField{base: newBase(opts), inner: inner}
	if f.def == nil {
		f.def = func() any { return []any{} }
	}
	f.conv = f
	return f
}

func (f *ListField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	c.inner = f.inner.Clone()
	return &c
}

func (f *ListField) convertNative(raw any) (any, error) {
	items, err := asList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(items))
	for _, it := range items {
		f.inner.Populate(it)
		v, err := f.inner.ToNative()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *ListField) convertSerial(v any) (any, error) {
	items, err := asList(v)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(items))
	for _, it := range items {
		sv, err := f.inner.ToSerial(it)
		if err != nil {
			return nil, err
		}
		out = append(out, sv)
	}
	return out, nil
}

// asList normalizes any slice into []any, preserving order.
func asList(raw any) ([]any, error) {
	if items, ok := raw.([]any); ok {
		return items, nil
	}
	rv := reflect.ValueOf(raw)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("expected sequence, got %T", raw)}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}
