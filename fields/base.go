// Package fields provides the concrete field kinds for micromodels schemas:
// scalar conversions (text, numbers, fixed-point decimal, boolean, temporal
// kinds, identifiers, opaque blobs, URLs) and composite kinds wrapping nested
// schemas or repeated values.
package fields

import (
	micromodels "github.com/tonnydourado/micromodels"
)

// conversion is the kind-specific hook behind the shared descriptor
// mechanics: it turns a populated raw value into the native value.
type conversion interface {
	convertNative(raw any) (any, error)
}

// serializer is optionally implemented by kinds whose serial form differs
// from the native value; absent it, ToSerial passes the value through.
type serializer interface {
	convertSerial(v any) (any, error)
}

// base carries the descriptor state shared by every field kind and
// implements the populate/default/validate mechanics of the Field contract.
// Concrete kinds embed it and plug in through the conversion hook.
type base struct {
	source     string
	def        any
	validators []micromodels.Validator
	raw        any
	hasRaw     bool
	conv       conversion
}

// Option configures the common descriptor state shared by all field kinds.
type Option func(*base)

// Source sets the key read from the source mapping instead of the field's
// own name.
func Source(key string) Option {
	return func(b *base) { b.source = key }
}

// Default sets the value assigned when the source mapping omits the key.
// A func() any producer is invoked at populate time, not at declaration.
func Default(v any) Option {
	return func(b *base) { b.def = v }
}

// Required installs a validator that rejects a nil native value. It always
// runs before any custom validators.
func Required() Option {
	return func(b *base) {
		b.validators = append([]micromodels.Validator{requiredValidator}, b.validators...)
	}
}

// Validators appends custom validators, applied in the given order.
func Validators(vs ...micromodels.Validator) Option {
	return func(b *base) { b.validators = append(b.validators, vs...) }
}

func requiredValidator(v any) (any, error) {
	if v == nil {
		return nil, micromodels.Invalid(micromodels.CodeRequired, "")
	}
	return nil, nil
}

func newBase(opts []Option) base {
	var b base
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Populate stores v as the pending raw value, invoking producers first.
func (b *base) Populate(v any) {
	if fn, ok := v.(func() any); ok {
		v = fn()
	}
	b.raw = v
	b.hasRaw = true
}

// ToNative converts the pending raw value, falling back to the default when
// nothing (or nil) has been populated.
func (b *base) ToNative() (any, error) {
	raw := b.raw
	if !b.hasRaw || raw == nil {
		if b.def == nil {
			return nil, nil
		}
		b.Populate(b.def)
		raw = b.raw
		if raw == nil {
			return nil, nil
		}
	}
	if b.conv == nil {
		return raw, nil
	}
	return b.conv.convertNative(raw)
}

// ToSerial converts a native value back to its primitive form; nil passes
// through unchanged.
func (b *base) ToSerial(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := b.conv.(serializer); ok {
		return s.convertSerial(v)
	}
	return v, nil
}

// Validate computes the native value and applies the validators in order.
// A validator's non-nil return replaces the running value.
func (b *base) Validate() (any, error) {
	v, err := b.ToNative()
	if err != nil {
		return nil, err
	}
	for _, fn := range b.validators {
		rv, err := fn(v)
		if err != nil {
			return nil, err
		}
		if rv != nil {
			v = rv
		}
	}
	return v, nil
}

func (b *base) Source() string { return b.source }
func (b *base) Default() any   { return b.def }
