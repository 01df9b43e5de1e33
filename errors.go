package micromodels

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tonnydourado/micromodels/i18n"
)

// Message codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeInvalidFormat = "invalid_format"
	CodeRequired      = "required"
	CodeParseError    = "parse_error"
)

// ErrUnknownAttribute marks a read of an attribute that was never populated
// and has no field descriptor behind it. It signals a programmer error (typo
// or missing SetData call), not a data-quality problem.
var ErrUnknownAttribute = errors.New("micromodels: unknown attribute")

// ValidationError is the recoverable, data-dependent error class. Validators
// and the required-field check return it; Model.Validate catches it per field
// and accumulates the messages into a Report instead of aborting.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError for the given code. An empty message is
// filled from the i18n catalog.
func Invalid(code, message string) *ValidationError {
	if message == "" {
		message = i18n.T(code, nil)
	}
	return &ValidationError{Code: code, Message: message}
}

// Invalidf builds a ValidationError with a formatted message.
func Invalidf(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsValidation extracts a ValidationError using errors.As internally.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// TypeError is the conversion error class: the source data violates the
// declared schema's structural assumptions (a field expecting a mapping
// received a scalar, a non-numeric string fed to a numeric field, ...).
// It is never caught by validation and propagates to the caller.
type TypeError struct {
	Field   string // attribute name, filled in by the binding engine when known
	Code    string
	Message string
	Cause   error
}

func (e *TypeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("micromodels: %s: %s (%s)", e.Field, e.Message, e.Code)
	}
	return fmt.Sprintf("micromodels: %s (%s)", e.Message, e.Code)
}

func (e *TypeError) Unwrap() error { return e.Cause }

// Report maps field names to their accumulated validation messages. A nil
// Report means the instance validated cleanly.
type Report map[string][]string

// Error summarizes the first few failing fields.
func (r Report) Error() string {
	if len(r) == 0 {
		return ""
	}
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(names)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s: %s", names[i], strings.Join(r[names[i]], ", "))
	}
	if len(names) > lim {
		fmt.Fprintf(b, "; ... (total %d fields)", len(names))
	}
	return b.String()
}

func (r Report) add(name, message string) {
	r[name] = append(r[name], message)
}
