package micromodels

// Field is the conversion and validation contract every schema field kind
// satisfies. A Field is stateless with respect to ownership but stateful with
// respect to its pending raw value, so a descriptor must never be shared
// between two model instances; Model clones every descriptor at construction.
type Field interface {
	// Populate stores v as the pending raw value without converting it.
	// A zero-argument producer (func() any) is invoked first and its result
	// stored instead.
	Populate(v any)

	// ToNative converts the pending raw value into the field's native value.
	// When nothing has been populated (or nil was), the default value is
	// populated and converted instead; with no default the result is nil.
	// ToNative is idempotent: calling it twice without a new Populate yields
	// an equal value both times.
	ToNative() (any, error)

	// ToSerial converts a native value back into a primitive suitable for
	// re-encoding. nil passes through unchanged. ToSerial is the left inverse
	// of ToNative up to type normalization.
	ToSerial(v any) (any, error)

	// Validate computes ToNative and applies the field's validators in order.
	// A validator may replace the value; the final value is returned.
	Validate() (any, error)

	// Clone returns an independent copy of the descriptor with its own
	// pending-raw slot.
	Clone() Field

	// Source reports the key to read from the source mapping; empty means
	// the field's own name is used.
	Source() string

	// Default reports the configured default value or producer; nil means
	// no default.
	Default() any
}

// Validator inspects a candidate native value. Returning a non-nil value
// replaces the running value; returning (nil, nil) passes it through
// unchanged. A *ValidationError marks a recoverable data error; any other
// error propagates as a conversion failure.
type Validator func(v any) (any, error)

// OwnerBinder is implemented by composite fields that maintain a
// back-reference from nested instances to their container. The binding
// engine calls BindOwner on every assignment before conversion runs, so the
// containing instance is available (even partially constructed) by the time
// the field's ToNative executes.
type OwnerBinder interface {
	BindOwner(m *Model)
}
