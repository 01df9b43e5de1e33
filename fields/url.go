package fields

import (
	"fmt"
	"net/url"

	micromodels "github.com/tonnydourado/micromodels"
)

// URLField converts raw values to *url.URL. Already-native values pass
// through; the serial form is the URL's textual representation.
type URLField struct{ base }

// URL returns a field whose native value is a *url.URL.
func URL(opts ...Option) *URLField {
	f := &URLField{base: newBase(opts)}
	f.conv = f
	return f
}

func (f *URLField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	return &c
}

func (f *URLField) convertNative(raw any) (any, error) {
	switch t := raw.(type) {
	case *url.URL:
		return t, nil
	case string:
		u, err := url.Parse(t)
		if err != nil {
			return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidFormat, Message: "invalid URL: " + t, Cause: err}
		}
		return u, nil
	case []byte:
		return f.convertNative(string(t))
	default:
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("cannot convert %T to URL", raw)}
	}
}

func (f *URLField) convertSerial(v any) (any, error) {
	u, ok := v.(*url.URL)
	if !ok {
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("expected *url.URL, got %T", v)}
	}
	return u.String(), nil
}
