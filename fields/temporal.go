package fields

import (
	"fmt"
	"time"

	micromodels "github.com/tonnydourado/micromodels"
)

// DateTimeField converts raw values to time.Time. Without a layout, input
// strings parse as ISO 8601 (full RFC3339 forms first, then reduced forms
// down to a bare calendar date); with one, time.Parse runs against it.
// Already-native time.Time values pass through unchanged.
type DateTimeField struct {
	base
	layout       string
	serialLayout string
}

// DateTime returns a field whose native value is a time.Time.
func DateTime(opts ...Option) *DateTimeField {
	f := &DateTimeField{base: newBase(opts)}
	f.conv = f
	return f
}

// Layout sets the reference layout used to parse input strings.
func (f *DateTimeField) Layout(layout string) *DateTimeField {
	f.layout = layout
	return f
}

// SerialLayout sets the reference layout used by ToSerial. Absent it, the
// canonical UTC RFC3339 form is produced.
func (f *DateTimeField) SerialLayout(layout string) *DateTimeField {
	f.serialLayout = layout
	return f
}

func (f *DateTimeField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	return &c
}

func (f *DateTimeField) convertNative(raw any) (any, error) {
	return f.parseTime(raw)
}

func (f *DateTimeField) convertSerial(v any) (any, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("expected time.Time, got %T", v)}
	}
	if f.serialLayout == "" {
		return t.UTC().Format(time.RFC3339Nano), nil
	}
	return t.Format(f.serialLayout), nil
}

func (f *DateTimeField) parseTime(raw any) (time.Time, error) {
	switch t := raw.(type) {
	case time.Time:
		return t, nil
	case []byte:
		return f.parseText(string(t))
	case string:
		return f.parseText(t)
	default:
		return time.Time{}, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("cannot convert %T to time", raw)}
	}
}

func (f *DateTimeField) parseText(s string) (time.Time, error) {
	if f.layout == "" {
		return parseISO8601(s)
	}
	t, err := time.Parse(f.layout, s)
	if err != nil {
		return time.Time{}, &micromodels.TypeError{Code: micromodels.CodeInvalidFormat, Message: "time does not match layout " + f.layout, Cause: err}
	}
	return t, nil
}

// iso8601Layouts runs from the fullest form to the most reduced. Layouts
// without an offset parse in UTC.
var iso8601Layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseISO8601(s string) (time.Time, error) {
	for _, layout := range iso8601Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &micromodels.TypeError{Code: micromodels.CodeInvalidFormat, Message: "invalid ISO 8601 time: " + s}
}

// DateField reuses the date-time conversion and projects out the calendar
// date: the native value is a time.Time at midnight UTC. Already-native
// time.Time input skips re-parsing.
type DateField struct{ DateTimeField }

// Date returns a field whose native value is a date (time.Time at midnight
// UTC). The default serial layout is "2006-01-02".
func Date(opts ...Option) *DateField {
	f := &DateField{DateTimeField{base: newBase(opts)}}
	f.conv = f
	return f
}

// Layout sets the reference layout used to parse input strings.
func (f *DateField) Layout(layout string) *DateField {
	f.layout = layout
	return f
}

// SerialLayout sets the reference layout used by ToSerial.
func (f *DateField) SerialLayout(layout string) *DateField {
	f.serialLayout = layout
	return f
}

func (f *DateField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	return &c
}

func (f *DateField) convertNative(raw any) (any, error) {
	if t, ok := raw.(time.Time); ok {
		return dateOf(t), nil
	}
	t, err := f.parseTime(raw)
	if err != nil {
		return nil, err
	}
	return dateOf(t), nil
}

func (f *DateField) convertSerial(v any) (any, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("expected time.Time, got %T", v)}
	}
	layout := f.serialLayout
	if layout == "" {
		layout = "2006-01-02"
	}
	return t.Format(layout), nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TimeField reuses the date-time conversion and projects out the clock: the
// native value is a time.Time on the zero date. Already-native time.Time
// input passes through unchanged.
type TimeField struct{ DateTimeField }

// Time returns a field whose native value is a clock time (time.Time on the
// zero date). The default serial layout is "15:04:05".
func Time(opts ...Option) *TimeField {
	f := &TimeField{DateTimeField{base: newBase(opts)}}
	f.conv = f
	return f
}

// Layout sets the reference layout used to parse input strings.
func (f *TimeField) Layout(layout string) *TimeField {
	f.layout = layout
	return f
}

// SerialLayout sets the reference layout used by ToSerial.
func (f *TimeField) SerialLayout(layout string) *TimeField {
	f.serialLayout = layout
	return f
}

func (f *TimeField) Clone() micromodels.Field {
	c := *f
	c.conv = &c
	return &c
}

func (f *TimeField) convertNative(raw any) (any, error) {
	if t, ok := raw.(time.Time); ok {
		return t, nil
	}
	s, ok := rawText(raw)
	if !ok {
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("cannot convert %T to time", raw)}
	}
	if f.layout != "" {
		t, err := time.Parse(f.layout, s)
		if err != nil {
			return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidFormat, Message: "time does not match layout " + f.layout, Cause: err}
		}
		return clockOf(t), nil
	}
	if t, err := parseISO8601(s); err == nil {
		return clockOf(t), nil
	}
	for _, layout := range []string{"15:04:05.999999999", "15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return clockOf(t), nil
		}
	}
	return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidFormat, Message: "invalid clock time: " + s}
}

func (f *TimeField) convertSerial(v any) (any, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, &micromodels.TypeError{Code: micromodels.CodeInvalidType, Message: fmt.Sprintf("expected time.Time, got %T", v)}
	}
	layout := f.serialLayout
	if layout == "" {
		layout = "15:04:05"
	}
	return t.Format(layout), nil
}

func clockOf(t time.Time) time.Time {
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func rawText(raw any) (string, bool) {
	switch t := raw.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	default:
		return "", false
	}
}
