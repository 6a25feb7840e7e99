package quote

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StubProvider returns deterministic prices derived from the symbol's
// characters. It never fails and needs no network.
type StubProvider struct {
	now func() time.Time
}

// NewStubProvider creates a new StubProvider.
func NewStubProvider() *StubProvider {
	return &StubProvider{now: time.Now}
}

// Name returns the provider's display name.
func (p *StubProvider) Name() string { return "Stub" }

func hashSymbol(symbol string) int {
	sum := 0
	for _, r := range symbol {
		sum += int(r)
	}
	return sum
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// rangePoints is the number of points the stub emits per range.
var rangePoints = map[Range]int{
	Range1D: 1,
	Range5D: 5,
	Range1M: 30,
	Range6M: 26,
	Range1Y: 52,
}

// GetQuote returns price = 50 + (h mod 350) + (h mod 100)/100 where h is the
// sum of the symbol's character codes.
func (p *StubProvider) GetQuote(_ context.Context, symbol string) (*Quote, error) {
	normalized := normalizeSymbol(symbol)
	base := hashSymbol(normalized)
	price := round2(50 + float64(base%350) + float64(base%100)/100)

	return &Quote{
		Symbol:   normalized,
		Price:    price,
		Currency: "USD",
		AsOf:     p.now().UTC(),
	}, nil
}

// GetHistory returns one point per day ending today, rising 0.75 per step.
func (p *StubProvider) GetHistory(_ context.Context, symbol string, r Range) (*History, error) {
	normalized := normalizeSymbol(symbol)
	count := rangePoints[r]
	seed := hashSymbol(normalized) % 40
	now := p.now().UTC()

	points := make([]Point, 0, count)
	for index := count - 1; index >= 0; index-- {
		points = append(points, Point{
			At:    now.Add(-time.Duration(index) * 24 * time.Hour),
			Price: round2(100 + float64(seed) + float64(count-index)*0.75),
		})
	}

	return &History{
		Symbol:   normalized,
		Range:    r,
		Currency: "USD",
		Points:   points,
	}, nil
}
