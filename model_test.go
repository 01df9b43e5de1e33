package micromodels_test

import (
	"errors"
	"reflect"
	"testing"

	micromodels "github.com/tonnydourado/micromodels"
	"github.com/tonnydourado/micromodels/fields"
)

func personSchema() *micromodels.Schema {
	return micromodels.NewSchema().
		Field("name", fields.Text(fields.Required())).
		Field("age", fields.Int(fields.Default(0)))
}

// TestModel_SetData_DefaultsAndExport covers the basic binding scenario:
// present keys convert, absent keys fall back to the default, and both show
// up in the export.
func TestModel_SetData_DefaultsAndExport(t *testing.T) {
	m, err := micromodels.FromDict(personSchema(), map[string]any{"name": "Ann"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	d, err := m.ToDict(false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]any{"name": "Ann", "age": int64(0)}
	if !reflect.DeepEqual(d, want) {
		t.Fatalf("ToDict = %#v, want %#v", d, want)
	}
	if rep, err := m.Validate(); err != nil || rep != nil {
		t.Fatalf("expected clean validation, got rep=%v err=%v", rep, err)
	}
}

// TestModel_ValidateRequired expects exactly one message for a required
// field left absent.
func TestModel_ValidateRequired(t *testing.T) {
	m, err := micromodels.FromDict(personSchema(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rep, err := m.Validate()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep == nil || len(rep["name"]) != 1 {
		t.Fatalf("expected exactly one message for name, got %v", rep)
	}
	if len(rep) != 1 {
		t.Fatalf("expected only name to fail, got %v", rep)
	}
}

// TestModel_InstancesDoNotShareFieldState mutates one instance's field state
// and checks the sibling stays untouched.
func TestModel_InstancesDoNotShareFieldState(t *testing.T) {
	s := personSchema()
	a := s.New()
	b := s.New()
	if err := a.SetData(map[string]any{"name": "Ann", "age": 30}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b.Has("name") || b.Has("age") {
		t.Fatalf("sibling instance saw materialized values: %v", b)
	}
	if v, err := b.Get("age"); err != nil || v != int64(0) {
		t.Fatalf("sibling default broken, got v=%v err=%v", v, err)
	}
	if v, _ := a.Get("age"); v != int64(30) {
		t.Fatalf("mutating sibling leaked back, got %v", v)
	}
}

// TestModel_LazyDefaultOnRead verifies that reading an unset field
// materializes the default once.
func TestModel_LazyDefaultOnRead(t *testing.T) {
	m := personSchema().New()
	if m.Has("age") {
		t.Fatalf("age materialized too early")
	}
	v, err := m.Get("age")
	if err != nil || v != int64(0) {
		t.Fatalf("lazy default, got v=%v err=%v", v, err)
	}
	if !m.Has("age") {
		t.Fatalf("age should be materialized after read")
	}
}

// TestModel_UnknownAttribute expects a distinct error for reads of names
// with neither a value nor a field descriptor.
func TestModel_UnknownAttribute(t *testing.T) {
	m := personSchema().New()
	if _, err := m.Get("nope"); !errors.Is(err, micromodels.ErrUnknownAttribute) {
		t.Fatalf("expected ErrUnknownAttribute, got %v", err)
	}
}

// TestModel_PlainAttribute exercises the escape hatch: non-field names are
// stored unconverted and excluded from export.
func TestModel_PlainAttribute(t *testing.T) {
	m := personSchema().New()
	if err := m.Set("note", 42); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v, err := m.Get("note"); err != nil || v != 42 {
		t.Fatalf("plain attribute, got v=%v err=%v", v, err)
	}
	d, err := m.ToDict(false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := d["note"]; ok {
		t.Fatalf("plain attribute leaked into export: %v", d)
	}
}

// TestModel_AddField registers an extra field after construction and expects
// it to convert, export, and validate like a declared one.
func TestModel_AddField(t *testing.T) {
	m := personSchema().New()
	if err := m.SetData(map[string]any{"name": "Ann"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := m.AddField("score", "41", fields.Int()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v, err := m.Get("score"); err != nil || v != int64(41) {
		t.Fatalf("extra field conversion, got v=%v err=%v", v, err)
	}
	d, err := m.ToDict(true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d["score"] != int64(41) {
		t.Fatalf("extra field missing from export: %v", d)
	}
	if err := m.AddField("score", 1, fields.Int()); err == nil {
		t.Fatalf("expected error re-registering an existing field")
	}
}

// TestModel_FromValues binds by field name, not by source key, and defaults
// every declared field absent from the values.
func TestModel_FromValues(t *testing.T) {
	s := micromodels.NewSchema().
		Field("name", fields.Text(fields.Source("full_name"))).
		Field("age", fields.Int(fields.Default(0)))
	m, err := micromodels.FromValues(s, map[string]any{"name": "Ann"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v, _ := m.Get("name"); v != "Ann" {
		t.Fatalf("FromValues should match field names, got %v", v)
	}
	out, err := m.ToDict(false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]any{"name": "Ann", "age": int64(0)}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("export = %#v, want %#v", out, want)
	}
}

// TestModel_SourceKey reads the configured source key from the mapping.
func TestModel_SourceKey(t *testing.T) {
	s := micromodels.NewSchema().
		Field("name", fields.Text(fields.Source("full_name")))
	m, err := micromodels.FromDict(s, map[string]any{"full_name": "Ann"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v, _ := m.Get("name"); v != "Ann" {
		t.Fatalf("source key lookup, got %v", v)
	}
}

// TestModel_ValidatorsTransformAndAccumulate covers value-replacing
// validators and message accumulation in declaration order.
func TestModel_ValidatorsTransformAndAccumulate(t *testing.T) {
	shout := func(v any) (any, error) {
		if s, ok := v.(string); ok {
			return s + "!", nil
		}
		return nil, nil
	}
	s := micromodels.NewSchema().
		Field("name", fields.Text(fields.Required(), fields.Validators(shout))).
		Check("name", func(m *micromodels.Model, v any) error {
			if v == nil {
				return micromodels.Invalidf("business_rule", "name was never bound")
			}
			if v == "Ann" {
				return micromodels.Invalidf("business_rule", "Ann is not allowed")
			}
			return nil
		})
	m, err := micromodels.FromDict(s, map[string]any{"name": "Ann"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rep, err := m.Validate()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep == nil || len(rep["name"]) != 1 || rep["name"][0] != "Ann is not allowed" {
		t.Fatalf("check hook message missing, got %v", rep)
	}

	empty := s.New()
	rep, err = empty.Validate()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []string{"this field is required", "name was never bound"}
	if !reflect.DeepEqual(rep["name"], want) {
		t.Fatalf("accumulated messages = %v, want %v", rep["name"], want)
	}
}

// TestModel_ConversionErrorPropagates distinguishes conversion failures from
// validation failures: Set fails immediately, Validate surfaces them as err.
func TestModel_ConversionErrorPropagates(t *testing.T) {
	s := micromodels.NewSchema().Field("age", fields.Int())
	m := s.New()
	err := m.Set("age", "not a number")
	var te *micromodels.TypeError
	if !errors.As(err, &te) || te.Field != "age" {
		t.Fatalf("expected TypeError for age, got %v", err)
	}

	bad := micromodels.NewSchema().Field("age", fields.Int(fields.Default("abc"))).New()
	if _, err := bad.Validate(); !errors.As(err, &te) {
		t.Fatalf("conversion failure should propagate from Validate, got %v", err)
	}
}

// TestAttr asserts the typed accessor and its mismatch error.
func TestAttr(t *testing.T) {
	m, err := micromodels.FromDict(personSchema(), map[string]any{"name": "Ann", "age": 30})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	age, err := micromodels.Attr[int64](m, "age")
	if err != nil || age != 30 {
		t.Fatalf("Attr[int64], got v=%v err=%v", age, err)
	}
	if _, err := micromodels.Attr[string](m, "age"); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

// TestReport_Error summarizes failing fields deterministically.
func TestReport_Error(t *testing.T) {
	rep := micromodels.Report{
		"b": {"late"},
		"a": {"first", "second"},
	}
	got := rep.Error()
	want := "a: first, second; b: late"
	if got != want {
		t.Fatalf("Report.Error() = %q, want %q", got, want)
	}
}
