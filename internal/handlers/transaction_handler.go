package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/pagination"
	"folio/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	portfolioService   services.PortfolioServicer
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(portfolioService services.PortfolioServicer, transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{
		portfolioService:   portfolioService,
		transactionService: transactionService,
		auditService:       auditService,
	}
}

// CreateTransaction records a ledger entry
// @Summary     Record a transaction
// @Description BUY and SELL update the symbol's holding atomically. DEPOSIT and WITHDRAWAL require total_amount.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string                          true "Portfolio ID"
// @Param       request body services.CreateTransactionInput true "Transaction details"
// @Success     201 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input, unknown reference or insufficient quantity"
// @Failure     409 {object} ErrorResponse "Duplicate id"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolios/{id}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var input services.CreateTransactionInput
	if err := bindObject(c, &input); err != nil {
		respondWithError(c, err)
		return
	}
	input.ID = idOrNew(input.ID)
	input.PortfolioID = pathID(c)

	transaction, err := h.transactionService.CreateTransaction(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditCreateTransaction, "transaction", transaction.ID, c.ClientIP(),
		map[string]any{
			"portfolio_id": transaction.PortfolioID,
			"type":         transaction.Type,
			"total_amount": transaction.TotalAmount,
		})

	c.JSON(http.StatusCreated, transaction)
}

// ListTransactions returns one page of a portfolio's transactions, newest first
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Param       id        path  string true  "Portfolio ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 50, max 200)"
// @Success     200 {object} pagination.PageResponse[models.Transaction]
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidQuery, "page and page_size must be positive integers; page_size is at most 200."))
		return
	}

	portfolio, err := h.portfolioService.GetPortfolioByID(pathID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetRecentTransactions(portfolio.ID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
