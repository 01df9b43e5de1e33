package fields

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	micromodels "github.com/tonnydourado/micromodels"
)

// UUIDField converts raw values to uuid.UUID. Already-native values pass
// through; strings parse from any canonical textual form. The serial form is
// the compact 32-character hexadecimal representation without separators.
type UUIDField struct{ base }

// UUID returns a field whose native value is a uuid.UUID.
func UUID(opts ...Option) *UUIDField {
	f := &UUIDField{base: newBase(opts)}
	f.conv = f
	return f
}

func (f *UUIDField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	return &c
}

func (f *UUIDField) convertNative(raw any) (any, error) {
	switch t := raw.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		u, err := uuid.Parse(t)
		if err != nil {
			return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidFormat, Message: "invalid UUID: " + t, Cause: err}
		}
		return u, nil
	case []byte:
		u, err := uuid.ParseBytes(t)
		if err != nil {
			return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidFormat, Message: "invalid UUID: " + string(t), Cause: err}
		}
		return u, nil
	default:
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("cannot convert %T to UUID", raw)}
	}
}

func (f *UUIDField) convertSerial(v any) (any, error) {
	u, ok := v.(uuid.UUID)
	if !ok {
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("expected uuid.UUID, got %T", v)}
	}
	return hex.EncodeToString(u[:]), nil
}
