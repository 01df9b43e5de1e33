package micromodels

// CheckFunc is a per-field validation hook registered alongside the schema.
// It receives the bound instance and the field's materialized value; a
// returned *ValidationError is recorded under the field's name.
type CheckFunc func(m *Model, v any) error

type namedField struct {
	name  string
	field Field
}

// Schema is an ordered registry of named field descriptors, unique by name.
// Declaration order is the builder's insertion order; it survives inheritance
// merges and is independent of any map's iteration order. A Schema must not
// be mutated once instances have been constructed from it.
type Schema struct {
	fields []namedField
	index  map[string]int
	checks map[string][]CheckFunc
}

// NewSchema returns an empty schema builder.
func NewSchema() *Schema {
	return &Schema{
		index:  map[string]int{},
		checks: map[string][]CheckFunc{},
	}
}

// Extend prepends the resolved fields of the given parents, base-most first.
// Call it before declaring the schema's own fields; a later redeclaration of
// an inherited name overrides the descriptor and moves it to the append
// position.
func (s *Schema) Extend(parents ...*Schema) *Schema {
	for _, p := range parents {
		for _, nf := range p.fields {
			s.put(nf.name, nf.field)
		}
		for name, fns := range p.checks {
			s.checks[name] = append(s.checks[name], fns...)
		}
	}
	return s
}

// Field appends a field descriptor under name. Redeclaring an existing name
// replaces the descriptor and moves it to the end of the declaration order.
func (s *Schema) Field(name string, f Field) *Schema {
	s.put(name, f)
	return s
}

// Check registers a validation hook for the named field. Hooks run during
// Model.Validate after the field's own validators, in registration order.
func (s *Schema) Check(name string, fn CheckFunc) *Schema {
	s.checks[name] = append(s.checks[name], fn)
	return s
}

func (s *Schema) put(name string, f Field) {
	if at, ok := s.index[name]; ok {
		s.fields = append(s.fields[:at], s.fields[at+1:]...)
		for i := at; i < len(s.fields); i++ {
			s.index[s.fields[i].name] = i
		}
	}
	s.index[name] = len(s.fields)
	s.fields = append(s.fields, namedField{name: name, field: f})
}

// Len reports the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, nf := range s.fields {
		out[i] = nf.name
	}
	return out
}

// New constructs an empty bound instance. Every descriptor is cloned so
// mutable field state is never shared across instances.
func (s *Schema) New() *Model {
	m := &Model{
		schema: s,
		fields: make([]namedField, len(s.fields)),
		index:  make(map[string]int, len(s.fields)),
		values: map[string]any{},
	}
	for i, nf := range s.fields {
		m.fields[i] = namedField{name: nf.name, field: nf.field.Clone()}
		m.index[nf.name] = i
	}
	return m
}
