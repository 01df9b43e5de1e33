package fields

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	micromodels "github.com/tonnydourado/micromodels"
)

// DecimalField coerces raw values to fixed-point decimal.Decimal values.
// Binary floats are converted through their textual representation, never
// through the float's binary value, so 1.1 stays 1.1.
type DecimalField struct{ base }

// Decimal returns a field whose native value is a decimal.Decimal.
func Decimal(opts ...Option) *DecimalField {
	f := &DecimalField{base: newBase(opts)}
	f.conv = f
	return f
}

func (f *DecimalField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	return &c
}

func (f *DecimalField) convertNative(raw any) (any, error) {
	switch t := raw.(type) {
	case decimal.Decimal:
		return t, nil
	case float64:
		// NewFromFloat goes through the shortest decimal representation.
		return decimal.NewFromFloat(t), nil
	case float32:
		return decimal.NewFromFloat32(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case json.Number:
		return parseDecimal(t.String())
	case string:
		return parseDecimal(t)
	default:
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("cannot convert %T to decimal", raw)}
	}
}

func (f *DecimalField) convertSerial(v any) (any, error) {
	d, ok := v.(decimal.Decimal)
	if !ok {
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("expected decimal.Decimal, got %T", v)}
	}
	return d.String(), nil
}

func parseDecimal(s string) (any, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidFormat, Message: "invalid decimal: " + s, Cause: err}
	}
	return d, nil
}
