package micromodels

import (
	"errors"
	"fmt"
	"sort"
)

// Model is a bound instance of a Schema. It owns a private copy of every
// field descriptor, routes attribute writes through the matching field's
// conversion pipeline, and lazily materializes defaults on first read.
// A Model is not safe for concurrent use.
type Model struct {
	schema *Schema
	fields []namedField
	index  map[string]int
	extra  []namedField
	values map[string]any
}

// FromDict builds an instance of s from a generic key-value mapping. The
// mapping does not need to contain every declared field.
func FromDict(s *Schema, data map[string]any) (*Model, error) {
	m := s.New()
	if err := m.SetData(data); err != nil {
		return nil, err
	}
	return m, nil
}

// FromValues builds an instance of s from field-name keyed values (names,
// not source keys). Declared fields absent from values get their defaults,
// so every declared field is materialized. Keys that match no field become
// plain attributes.
func FromValues(s *Schema, values map[string]any) (*Model, error) {
	m := s.New()
	seen := make(map[string]bool, len(values))
	for _, nf := range m.fields {
		v, ok := values[nf.name]
		if !ok {
			v = nf.field.Default()
		} else {
			seen[nf.name] = true
		}
		if err := m.Set(nf.name, v); err != nil {
			return nil, err
		}
	}
	rest := make([]string, 0, len(values))
	for name := range values {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		if err := m.Set(name, values[name]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SetData assigns source data to every declared field, in declaration order.
// Each field reads the mapping under its source key (its own name when no
// source key is configured); absent keys assign the field's default, with
// producers invoked at populate time.
func (m *Model) SetData(data map[string]any) error {
	for _, nf := range m.fields {
		key := nf.field.Source()
		if key == "" {
			key = nf.name
		}
		v, ok := data[key]
		if !ok {
			v = nf.field.Default()
		}
		if err := m.Set(nf.name, v); err != nil {
			return err
		}
	}
	return nil
}

// Set assigns a value to the named attribute. When the name matches a
// declared or extra field the value is populated into the descriptor, the
// back-reference bookkeeping is pointed at this instance, and the converted
// native value is stored. Any other name is a plain, unconverted assignment.
func (m *Model) Set(name string, v any) error {
	f, ok := m.fieldByName(name)
	if !ok {
		m.values[name] = v
		return nil
	}
	f.Populate(v)
	if ob, ok := f.(OwnerBinder); ok {
		ob.BindOwner(m)
	}
	nv, err := f.ToNative()
	if err != nil {
		return named(err, name)
	}
	m.values[name] = nv
	return nil
}

// Get returns the named attribute. A field that has no materialized value yet
// is lazily computed once (applying default-value logic) and stored through
// the write path. Reading a name with neither a value nor a field descriptor
// reports ErrUnknownAttribute.
func (m *Model) Get(name string) (any, error) {
	if v, ok := m.values[name]; ok {
		return v, nil
	}
	f, ok := m.fieldByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	if ob, ok := f.(OwnerBinder); ok {
		ob.BindOwner(m)
	}
	nv, err := f.ToNative()
	if err != nil {
		return nil, named(err, name)
	}
	if err := m.Set(name, nv); err != nil {
		return nil, err
	}
	return m.values[name], nil
}

// Has reports whether the named attribute has a materialized value.
func (m *Model) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Attr returns the named attribute asserted to type T.
func Attr[T any](m *Model, name string) (T, error) {
	v, err := m.Get(name)
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, &TypeError{
			Field:   name,
			Code:    CodeInvalidType,
			Message: fmt.Sprintf("attribute is %T, not %T", v, zero),
		}
	}
	return t, nil
}

// AddField attaches a field descriptor to this instance after construction
// and immediately assigns value through the normal write path. Registration
// is what lets dynamically attached data participate in export and
// validation; reassigning declared fields needs no such step.
func (m *Model) AddField(name string, value any, f Field) error {
	if f == nil {
		return &TypeError{Field: name, Code: CodeInvalidType, Message: "nil field descriptor"}
	}
	if _, ok := m.fieldByName(name); ok {
		return &TypeError{Field: name, Code: CodeInvalidType, Message: "field already registered"}
	}
	m.extra = append(m.extra, namedField{name: name, field: f})
	return m.Set(name, value)
}

// ToDict exports every field that currently has a materialized value, in
// declaration order (declared fields first, then extra fields). With serial
// set, each value is passed through its field's ToSerial, recursively
// serializing nested instances; otherwise native values are returned as-is.
func (m *Model) ToDict(serial bool) (map[string]any, error) {
	out := make(map[string]any, len(m.fields)+len(m.extra))
	for _, nf := range m.combined() {
		v, ok := m.values[nf.name]
		if !ok {
			continue
		}
		if !serial {
			out[nf.name] = v
			continue
		}
		sv, err := nf.field.ToSerial(v)
		if err != nil {
			return nil, named(err, nf.name)
		}
		out[nf.name] = sv
	}
	return out, nil
}

// Validate runs every field's validators plus any registered check hooks, in
// declaration order. Validation failures never abort the pass: messages
// accumulate per field name and come back as the Report (nil means clean).
// Conversion failures are not validation errors and return as err.
func (m *Model) Validate() (Report, error) {
	var rep Report
	record := func(name, msg string) {
		if rep == nil {
			rep = Report{}
		}
		rep.add(name, msg)
	}
	for _, nf := range m.combined() {
		if _, err := nf.field.Validate(); err != nil {
			ve, ok := AsValidation(err)
			if !ok {
				return nil, named(err, nf.name)
			}
			record(nf.name, ve.Message)
		}
		for _, chk := range m.schema.checks[nf.name] {
			if err := chk(m, m.values[nf.name]); err != nil {
				ve, ok := AsValidation(err)
				if !ok {
					return nil, named(err, nf.name)
				}
				record(nf.name, ve.Message)
			}
		}
	}
	return rep, nil
}

func (m *Model) fieldByName(name string) (Field, bool) {
	if at, ok := m.index[name]; ok {
		return m.fields[at].field, true
	}
	for _, nf := range m.extra {
		if nf.name == name {
			return nf.field, true
		}
	}
	return nil, false
}

func (m *Model) combined() []namedField {
	if len(m.extra) == 0 {
		return m.fields
	}
	out := make([]namedField, 0, len(m.fields)+len(m.extra))
	out = append(out, m.fields...)
	out = append(out, m.extra...)
	return out
}

// named stamps the attribute name onto conversion errors that lack one.
func named(err error, name string) error {
	var te *TypeError
	if errors.As(err, &te) && te.Field == "" {
		te.Field = name
	}
	return err
}
