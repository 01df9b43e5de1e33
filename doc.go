// Package micromodels is a declarative schema layer that converts between
// loosely-typed source mappings (the kind produced by decoding JSON or YAML)
// and bound model instances, and back.
//
// A schema is an ordered set of named fields. Each field owns a pair of
// conversions — raw source value to native value, and native value back to a
// primitive — plus optional validation:
//
//	person := micromodels.NewSchema().
//		Field("name", fields.Text(fields.Required())).
//		Field("age", fields.Int(fields.Default(0)))
//
//	m, err := micromodels.FromJSON(person, []byte(`{"name":"Ann"}`))
//	name, _ := micromodels.Attr[string](m, "name")
//
// Assignments through Set route the value through the matching field's
// conversion pipeline; reads through Get lazily materialize defaults. Whole
// instances export as native maps (ToDict), primitive-only maps
// (ToDict(true)), JSON (ToJSON), or YAML (ToYAML), and validate as a unit,
// accumulating messages per field rather than stopping at the first failure.
//
// Concrete field kinds live in the fields subpackage.
package micromodels
