package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"folio/internal/models"
	"folio/internal/valuation"
)

// FormatCurrency renders amount in the currency's conventional form, e.g.
// "$1,234.50". Codes go-money does not know fall back to "1234.50 XYZ".
func FormatCurrency(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = money.USD
	}

	currency := money.GetCurrency(code)
	if currency == nil {
		return fmt.Sprintf("%s %s", decimal.NewFromFloat(amount).StringFixed(2), code)
	}

	minor := decimal.NewFromFloat(amount).Shift(int32(currency.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}

// FormatPercent renders a ratio as a signed percentage: 0.0125 → "+1.25%".
func FormatPercent(ratio float64) string {
	d := decimal.NewFromFloat(ratio).Shift(2).Round(2)
	sign := ""
	if d.IsPositive() {
		sign = "+"
	}
	return sign + d.StringFixed(2) + "%"
}

// FormatQuantity renders a quantity with four decimals.
func FormatQuantity(quantity float64) string {
	return decimal.NewFromFloat(quantity).StringFixed(4)
}

// FormatTransactionDate renders the UTC calendar date of t.
func FormatTransactionDate(t time.Time) string {
	if t.IsZero() {
		return "Invalid date"
	}
	return t.UTC().Format("2006-01-02")
}

// SummaryView is a Summary formatted for display.
type SummaryView struct {
	TotalValue           string
	InvestedValue        string
	DayChange            string
	DayChangePercent     string
	TotalGainLoss        string
	TotalGainLossPercent string
	PositionsCount       int
	Warnings             []valuation.Warning
}

// NewSummaryView formats s. Percentages are relative to the invested value
// and read 0 when nothing is invested.
func NewSummaryView(s *valuation.Summary) SummaryView {
	ratio := func(v float64) float64 {
		if s.InvestedValue == 0 {
			return 0
		}
		return v / s.InvestedValue
	}

	return SummaryView{
		TotalValue:           FormatCurrency(s.TotalValue, s.Currency),
		InvestedValue:        FormatCurrency(s.InvestedValue, s.Currency),
		DayChange:            FormatCurrency(s.DayChange, s.Currency),
		DayChangePercent:     FormatPercent(ratio(s.DayChange)),
		TotalGainLoss:        FormatCurrency(s.TotalGainLoss, s.Currency),
		TotalGainLossPercent: FormatPercent(ratio(s.TotalGainLoss)),
		PositionsCount:       s.PositionsCount,
		Warnings:             s.Warnings,
	}
}

// TransactionRow is one formatted line of the transactions table.
type TransactionRow struct {
	ID       string
	Date     string
	Symbol   string
	Type     string
	Quantity string
	Price    string
	Total    string
}

// NewTransactionRows formats transactions in the given currency. Absent
// optional fields render as "-".
func NewTransactionRows(transactions []models.Transaction, currency string) []TransactionRow {
	rows := make([]TransactionRow, 0, len(transactions))
	for _, t := range transactions {
		row := TransactionRow{
			ID:       t.ID,
			Date:     FormatTransactionDate(t.OccurredAt),
			Symbol:   "-",
			Type:     string(t.Type),
			Quantity: "-",
			Price:    "-",
			Total:    FormatCurrency(t.TotalAmount, currency),
		}
		if t.Symbol != nil {
			row.Symbol = *t.Symbol
		}
		if t.Quantity != nil {
			row.Quantity = FormatQuantity(*t.Quantity)
		}
		if t.Price != nil {
			row.Price = FormatCurrency(*t.Price, currency)
		}
		rows = append(rows, row)
	}
	return rows
}
