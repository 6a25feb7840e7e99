// Package normalize turns loosely typed external input (decoded JSON, form
// values, test literals) into the canonical values stored by the ledger.
// Every failure is a VALIDATION_ERROR naming the offending field.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "folio/internal/errors"
)

func invalid(field, message string, value any) error {
	details := map[string]any{"field": field}
	if value != nil {
		details["value"] = value
	}
	return apperrors.WithDetails(apperrors.ErrValidation, message, details)
}

// IsAbsent reports whether v carries no value: nil, a nil pointer, or a
// blank string.
func IsAbsent(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case *string:
		return val == nil
	case *float64:
		return val == nil
	case *time.Time:
		return val == nil
	}
	return false
}

// RequiredText returns v trimmed. It must be a non-empty string.
func RequiredText(v any, field string) (string, error) {
	if p, ok := v.(*string); ok && p != nil {
		v = *p
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(field, fmt.Sprintf("%s must be a non-empty string.", field), v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(field, fmt.Sprintf("%s must be a non-empty string.", field), v)
	}
	return s, nil
}

// Symbol returns v trimmed and upper-cased.
func Symbol(v any, field string) (string, error) {
	s, err := RequiredText(v, field)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(s), nil
}

// Currency returns v trimmed and upper-cased.
func Currency(v any, field string) (string, error) {
	return Symbol(v, field)
}

// OptionalSymbol is Symbol for values that may be absent.
func OptionalSymbol(v any, field string) (*string, error) {
	if IsAbsent(v) {
		return nil, nil
	}
	s, err := Symbol(v, field)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// toFloat coerces numeric kinds and numeric strings. It rejects bools and
// blank strings.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case *float64:
		if n == nil {
			return 0, false
		}
		return *n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

// NonNegativeNumber returns v as a finite number >= 0.
func NonNegativeNumber(v any, field string) (float64, error) {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, invalid(field, fmt.Sprintf("%s must be a non-negative number.", field), v)
	}
	return f, nil
}

// PositiveNumber returns v as a finite number > 0.
func PositiveNumber(v any, field string) (float64, error) {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, invalid(field, fmt.Sprintf("%s must be a positive number.", field), v)
	}
	return f, nil
}

// OptionalPositiveNumber is PositiveNumber for values that may be absent.
func OptionalPositiveNumber(v any, field string) (*float64, error) {
	if IsAbsent(v) {
		return nil, nil
	}
	f, err := PositiveNumber(v, field)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// maxEpochMillis bounds epoch-millisecond input to ±100,000,000 days
// around 1970.
const maxEpochMillis = 8.64e15

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date returns v as a UTC instant. Strings are parsed as ISO-8601 (zone-less
// values are read as UTC); numbers are epoch milliseconds.
func Date(v any, field string) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			break
		}
		return d.UTC(), nil
	case *time.Time:
		if d != nil && !d.IsZero() {
			return d.UTC(), nil
		}
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
	default:
		if ms, ok := toFloat(v); ok && !math.IsNaN(ms) && math.Abs(ms) <= maxEpochMillis {
			return time.UnixMilli(int64(ms)).UTC(), nil
		}
	}
	return time.Time{}, invalid(field, fmt.Sprintf("%s must be a valid date.", field), v)
}

// OptionalDate is Date with a default of now when v is absent.
func OptionalDate(v any, field string, now time.Time) (time.Time, error) {
	if IsAbsent(v) {
		return now.UTC(), nil
	}
	if t, ok := v.(time.Time); ok && t.IsZero() {
		return now.UTC(), nil
	}
	return Date(v, field)
}
