package quote

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// flexFloat decodes a JSON number or numeric string. A value that is present
// but unparsable decodes to NaN so callers can tell it apart from absent.
type flexFloat struct {
	value float64
	set   bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	f.set = true

	raw := string(b)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			f.value = math.NaN()
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v = math.NaN()
	}
	f.value = v
	return nil
}

// orNaN returns the decoded value, or NaN when the field was absent.
func (f flexFloat) orNaN() float64 {
	if !f.set {
		return math.NaN()
	}
	return f.value
}

// finitePtr returns a pointer to the value when present and finite.
func (f flexFloat) finitePtr() *float64 {
	if !f.set || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
		return nil
	}
	v := f.value
	return &v
}

func parseTimestamp(s string, fallback time.Time) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s)); err == nil {
		return t.UTC()
	}
	return fallback.UTC()
}
