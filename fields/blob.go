package fields

import (
	"bytes"

	json "github.com/goccy/go-json"
	micromodels "github.com/tonnydourado/micromodels"
)

// BlobField holds an opaque structured value. Raw text parses as JSON into a
// generic value tree; anything else passes through unchanged. The serial
// form is the JSON encoding as a string.
type BlobField struct{ base }

// Blob returns a field whose native value is a generic value tree.
func Blob(opts ...Option) *BlobField {
	f := &BlobField{base: newBase(opts)}
	f.conv = f
	return f
}

func (f *BlobField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	return &c
}

func (f *BlobField) convertNative(raw any) (any, error) {
	var text []byte
	switch t := raw.(type) {
	case string:
		text = []byte(t)
	case []byte:
		text = t
	default:
		return raw, nil
	}
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &micromodels.TypeError{Code: micromodels.CodeParseError, Message: "invalid JSON blob", Cause: err}
	}
	return v, nil
}

func (f *BlobField) convertSerial(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: "value is not JSON-encodable", Cause: err}
	}
	return string(b), nil
}
