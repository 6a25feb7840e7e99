// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"folio/internal/models"
	"folio/internal/quote"
)

var symbolRegex = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("stock_symbol", validateStockSymbol)
		_ = v.RegisterValidation("quote_range", validateQuoteRange)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
	}
}

// IsStockSymbol reports whether s, trimmed and upper-cased, looks like a
// ticker: a letter followed by up to nine letters, digits, dots or dashes.
func IsStockSymbol(s string) bool {
	return symbolRegex.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

func validateStockSymbol(fl validator.FieldLevel) bool {
	return IsStockSymbol(fl.Field().String())
}

func validateQuoteRange(fl validator.FieldLevel) bool {
	_, ok := quote.ParseRange(fl.Field().String())
	return ok
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(strings.ToUpper(strings.TrimSpace(fl.Field().String()))).Valid()
}
