package fields_test

import (
	"encoding/json"
	"net/url"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tonnydourado/micromodels/fields"
)

func TestUUID_ParseAndCompactHex(t *testing.T) {
	f := fields.UUID()
	f.Populate("f47ac10b-58cc-4372-a567-0e02b2c3d479")
	v, err := f.ToNative()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	u := v.(uuid.UUID)
	s, err := f.ToSerial(u)
	if err != nil || s != "f47ac10b58cc4372a5670e02b2c3d479" {
		t.Fatalf("serial = %v, %v", s, err)
	}
	// native input passes through untouched
	f.Populate(u)
	if v2, _ := f.ToNative(); v2 != u {
		t.Fatalf("native passthrough broken: %v", v2)
	}
	roundTrip(t, f, "f47ac10b-58cc-4372-a567-0e02b2c3d479")

	f.Populate("not-a-uuid")
	if _, err := f.ToNative(); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestDecimal_FloatGoesThroughText(t *testing.T) {
	f := fields.Decimal()
	f.Populate(1.1)
	v, err := f.ToNative()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	d := v.(decimal.Decimal)
	if d.String() != "1.1" {
		t.Fatalf("float conversion drifted: %v", d)
	}
	s, err := f.ToSerial(d)
	if err != nil || s != "1.1" {
		t.Fatalf("serial = %v, %v", s, err)
	}
	// already fixed-point passes through
	f.Populate(d)
	if v2, _ := f.ToNative(); !v2.(decimal.Decimal).Equal(d) {
		t.Fatalf("passthrough broken: %v", v2)
	}
	roundTrip(t, f, json.Number("123.45"))
}

func TestBlob_ParsesTextAndPassesTrees(t *testing.T) {
	f := fields.Blob()
	f.Populate(`{"a":[1,2]}`)
	v, err := f.ToNative()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]any{"a": []any{json.Number("1"), json.Number("2")}}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("blob tree = %#v", v)
	}
	s, err := f.ToSerial(v)
	if err != nil || s != `{"a":[1,2]}` {
		t.Fatalf("serial = %v, %v", s, err)
	}
	// non-text passes through
	tree := []any{"x"}
	f.Populate(tree)
	if v2, _ := f.ToNative(); !reflect.DeepEqual(v2, tree) {
		t.Fatalf("passthrough broken: %v", v2)
	}
	f.Populate("{not json")
	if _, err := f.ToNative(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFile_Passthrough(t *testing.T) {
	f := fields.File(fields.Default(func() any { return []byte("empty") }))
	payload := []byte{0x1f, 0x8b, 0x00}
	f.Populate(payload)
	v, err := f.ToNative()
	if err != nil || !reflect.DeepEqual(v, payload) {
		t.Fatalf("native = %v, %v", v, err)
	}
	s, err := f.ToSerial(v)
	if err != nil || !reflect.DeepEqual(s, payload) {
		t.Fatalf("serial = %v, %v", s, err)
	}

	// the default producer applies like any other kind
	f2 := fields.File(fields.Default(func() any { return []byte("empty") }))
	v2, err := f2.ToNative()
	if err != nil || !reflect.DeepEqual(v2, []byte("empty")) {
		t.Fatalf("default = %v, %v", v2, err)
	}
}

func TestURL_ParseAndSerial(t *testing.T) {
	f := fields.URL()
	f.Populate("https://example.com/a?b=c")
	v, err := f.ToNative()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	u := v.(*url.URL)
	if u.Host != "example.com" {
		t.Fatalf("host = %q", u.Host)
	}
	s, err := f.ToSerial(u)
	if err != nil || s != "https://example.com/a?b=c" {
		t.Fatalf("serial = %v, %v", s, err)
	}
}
