package handlers

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/quote"
	"folio/internal/validator"
)

// StockHandler exposes the configured quote provider.
type StockHandler struct {
	provider quote.Provider
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(provider quote.Provider) *StockHandler {
	return &StockHandler{provider: provider}
}

type quoteQuery struct {
	Symbol string `form:"symbol" binding:"required,stock_symbol"`
}

type historyQuery struct {
	Symbol string `form:"symbol" binding:"required,stock_symbol"`
	Range  string `form:"range" binding:"required,quote_range"`
}

// GetQuote returns the latest quote for a symbol
// @Summary     Stock quote
// @Tags        stocks
// @Produce     json
// @Param       symbol query string true "Ticker symbol"
// @Success     200 {object} quote.Quote
// @Failure     400 {object} ErrorResponse "Invalid symbol"
// @Failure     404 {object} ErrorResponse "Unknown symbol"
// @Failure     502 {object} ErrorResponse "Quote provider unavailable"
// @Router      /stocks/quote [get]
func (h *StockHandler) GetQuote(c *gin.Context) {
	var q quoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.ErrInvalidSymbol)
		return
	}
	symbol := strings.ToUpper(strings.TrimSpace(q.Symbol))

	result, err := h.provider.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, providerError(symbol, err))
		return
	}
	if math.IsNaN(result.Price) || math.IsInf(result.Price, 0) {
		respondWithError(c, apperrors.WithDetails(apperrors.ErrQuoteUnavailable,
			"Quote provider returned no usable price.", map[string]any{"symbol": symbol}))
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetHistory returns a symbol's price history over a range
// @Summary     Stock price history
// @Tags        stocks
// @Produce     json
// @Param       symbol query string true "Ticker symbol"
// @Param       range  query string true "One of 1D, 5D, 1M, 6M, 1Y"
// @Success     200 {object} quote.History
// @Failure     400 {object} ErrorResponse "Invalid symbol or range"
// @Failure     404 {object} ErrorResponse "Unknown symbol"
// @Failure     502 {object} ErrorResponse "Quote provider unavailable"
// @Router      /stocks/history [get]
func (h *StockHandler) GetHistory(c *gin.Context) {
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, historyQueryError(c))
		return
	}
	symbol := strings.ToUpper(strings.TrimSpace(q.Symbol))
	r, _ := quote.ParseRange(q.Range)

	history, err := h.provider.GetHistory(c.Request.Context(), symbol, r)
	if err != nil {
		respondWithError(c, providerError(symbol, err))
		return
	}
	c.JSON(http.StatusOK, history)
}

// historyQueryError reports the first invalid parameter, symbol before range.
func historyQueryError(c *gin.Context) error {
	if !validator.IsStockSymbol(c.Query("symbol")) {
		return apperrors.ErrInvalidSymbol
	}
	return apperrors.WithDetails(apperrors.ErrInvalidRange, apperrors.ErrInvalidRange.Message,
		map[string]any{"supported_ranges": quote.SupportedRanges})
}

func providerError(symbol string, err error) error {
	if errors.Is(err, quote.ErrSymbolNotFound) {
		return apperrors.WithDetails(apperrors.ErrNotFound, "No market data for symbol.", map[string]any{"symbol": symbol})
	}
	e := apperrors.WithDetails(apperrors.ErrQuoteUnavailable, apperrors.ErrQuoteUnavailable.Message, map[string]any{"symbol": symbol})
	e.Internal = err
	return e
}
