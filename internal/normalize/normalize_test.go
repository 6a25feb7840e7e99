package normalize

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"folio/internal/testutil"
)

func TestRequiredText(t *testing.T) {
	t.Run("trims", func(t *testing.T) {
		got, err := RequiredText("  Growth  ", "name")
		testutil.AssertNoError(t, err)
		if got != "Growth" {
			t.Errorf("expected Growth, got %q", got)
		}
	})

	for name, value := range map[string]any{
		"blank":  "   ",
		"nil":    nil,
		"number": 42,
	} {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := RequiredText(value, "name")
			appErr := testutil.AssertAppError(t, err, "VALIDATION_ERROR")
			if appErr.Details["field"] != "name" {
				t.Errorf("expected field detail, got %v", appErr.Details)
			}
		})
	}
}

func TestSymbol(t *testing.T) {
	got, err := Symbol(" aapl ", "symbol")
	testutil.AssertNoError(t, err)
	if got != "AAPL" {
		t.Errorf("expected AAPL, got %q", got)
	}

	cur, err := Currency("usd", "baseCurrency")
	testutil.AssertNoError(t, err)
	if cur != "USD" {
		t.Errorf("expected USD, got %q", cur)
	}

	opt, err := OptionalSymbol(nil, "symbol")
	testutil.AssertNoError(t, err)
	if opt != nil {
		t.Errorf("expected nil, got %v", *opt)
	}
}

func TestNonNegativeNumber(t *testing.T) {
	accepted := map[string]any{
		"float":       2.5,
		"int":         3,
		"string":      " 4.25 ",
		"json number": json.Number("7"),
		"zero":        0.0,
	}
	for name, value := range accepted {
		t.Run("accepts "+name, func(t *testing.T) {
			if _, err := NonNegativeNumber(value, "quantity"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	rejected := map[string]any{
		"negative": -1.0,
		"nan":      math.NaN(),
		"inf":      math.Inf(1),
		"text":     "ten",
		"blank":    "",
		"bool":     true,
		"nil":      nil,
	}
	for name, value := range rejected {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := NonNegativeNumber(value, "quantity")
			testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		})
	}
}

func TestPositiveNumber(t *testing.T) {
	_, err := PositiveNumber(0, "price")
	testutil.AssertAppError(t, err, "VALIDATION_ERROR")

	got, err := PositiveNumber("0.5", "price")
	testutil.AssertNoError(t, err)
	if got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}

	opt, err := OptionalPositiveNumber(nil, "price")
	testutil.AssertNoError(t, err)
	if opt != nil {
		t.Errorf("expected nil, got %v", *opt)
	}

	_, err = OptionalPositiveNumber(-3, "price")
	testutil.AssertAppError(t, err, "VALIDATION_ERROR")
}

func TestDate(t *testing.T) {
	want := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	cases := map[string]any{
		"rfc3339":      "2024-01-15T09:30:00Z",
		"fractional":   "2024-01-15T09:30:00.000Z",
		"offset":       "2024-01-15T11:30:00+02:00",
		"basic offset": "2024-01-15T15:00:00+0530",
		"zone-less":    "2024-01-15T09:30:00",
		"time.Time":    want.In(time.FixedZone("X", 3600)),
		"epoch millis": float64(want.UnixMilli()),
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Date(value, "occurredAt")
			testutil.AssertNoError(t, err)
			if !got.Equal(want) || got.Location() != time.UTC {
				t.Errorf("expected %s UTC, got %s", want, got)
			}
		})
	}

	t.Run("bare date", func(t *testing.T) {
		got, err := Date("2024-01-15", "occurredAt")
		testutil.AssertNoError(t, err)
		if !got.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected %s", got)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := Date("yesterday", "occurredAt")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("rejects out-of-range epoch", func(t *testing.T) {
		for _, ms := range []float64{1e20, -1e20, 8.64e15 + 1} {
			_, err := Date(ms, "occurredAt")
			testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		}
	})

	t.Run("accepts epoch bounds", func(t *testing.T) {
		got, err := Date(-8.64e15, "occurredAt")
		testutil.AssertNoError(t, err)
		if got.Year() != -271821 {
			t.Errorf("expected year -271821, got %d", got.Year())
		}
	})
}

func TestOptionalDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got, err := OptionalDate(nil, "createdAt", now)
	testutil.AssertNoError(t, err)
	if !got.Equal(now) {
		t.Errorf("expected default now, got %s", got)
	}

	got, err = OptionalDate("", "createdAt", now)
	testutil.AssertNoError(t, err)
	if !got.Equal(now) {
		t.Errorf("expected default now for blank, got %s", got)
	}

	_, err = OptionalDate("not-a-date", "createdAt", now)
	testutil.AssertAppError(t, err, "VALIDATION_ERROR")
}
