package fields

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	micromodels "github.com/tonnydourado/micromodels"
)

// TextField coerces raw values to strings.
type TextField struct{ base }

// Text returns a field whose native value is a string.
func Text(opts ...Option) *TextField {
	f := &TextField{base: newBase(opts)}
	f.conv = f
	return f
}

func (f *TextField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	return &c
}

func (f *TextField) convertNative(raw any) (any, error) {
	switch t := raw.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return fmt.Sprintf("%v", t), nil
	}
}

// IntField coerces raw values to int64. Non-numeric or fractional input is a
// conversion error.
type IntField struct{ base }

// Int returns a field whose native value is an int64.
func Int(opts ...Option) *IntField {
	f := &IntField{base: newBase(opts)}
	f.conv = f
	return f
}

func (f *IntField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	return &c
}

func (f *IntField) convertNative(raw any) (any, error) {
	switch t := raw.(type) {
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		return int64(t), nil
	case float32:
		return floatToInt(float64(t))
	case float64:
		return floatToInt(t)
	case json.Number:
		if i64, err := t.Int64(); err == nil {
			return i64, nil
		}
		f64, err := t.Float64()
		if err != nil {
			return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: "not a number: " + t.String(), Cause: err}
		}
		return floatToInt(f64)
	case string:
		i64, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: "non-numeric string: " + strconv.Quote(t), Cause: err}
		}
		return i64, nil
	default:
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("cannot convert %T to integer", raw)}
	}
}

func floatToInt(f64 float64) (any, error) {
	if math.Trunc(f64) != f64 {
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: "fractional part not allowed for integer"}
	}
	return int64(f64), nil
}

// FloatField coerces raw values to float64.
type FloatField struct{ base }

// Float returns a field whose native value is a float64.
func Float(opts ...Option) *FloatField {
	f := &FloatField{base: newBase(opts)}
	f.conv = f
	return f
}

func (f *FloatField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	return &c
}

func (f *FloatField) convertNative(raw any) (any, error) {
	switch t := raw.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint:
		return float64(t), nil
	case uint8:
		return float64(t), nil
	case uint16:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case json.Number:
		f64, err := t.Float64()
		if err != nil {
			return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: "not a number: " + t.String(), Cause: err}
		}
		return f64, nil
	case string:
		f64, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: "non-numeric string: " + strconv.Quote(t), Cause: err}
		}
		return f64, nil
	default:
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("cannot convert %T to float", raw)}
	}
}

// BoolField normalizes raw values to booleans. Population already stores the
// normalized value so repeated reads are stable.
type BoolField struct{ base }

// Bool returns a field whose native value is a bool. A string is true iff
// its trimmed, case-insensitive form equals "true"; an integer is true iff
// strictly positive; a float is true iff non-zero; anything else non-nil is
// true.
func Bool(opts ...Option) *BoolField {
	f := &BoolField{base: newBase(opts)}
	f.conv = f
	return f
}

func (f *BoolField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	return &c
}

// Populate eagerly normalizes to bool.
func (f *BoolField) Populate(v any) {
	f.base.Populate(v)
	if f.hasRaw && f.raw != nil {
		f.raw = truthy(f.raw)
	}
}

func (f *BoolField) convertNative(raw any) (any, error) {
	return truthy(raw), nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	case int:
		return t > 0
	case int8:
		return t > 0
	case int16:
		return t > 0
	case int32:
		return t > 0
	case int64:
		return t > 0
	case uint:
		return t > 0
	case uint8:
		return t > 0
	case uint16:
		return t > 0
	case uint32:
		return t > 0
	case uint64:
		return t > 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	case json.Number:
		if i64, err := t.Int64(); err == nil {
			return i64 > 0
		}
		if f64, err := t.Float64(); err == nil {
			return f64 != 0
		}
		return false
	case nil:
		return false
	default:
		return true
	}
}
