package services

import (
	"context"

	"folio/internal/models"
	"folio/internal/pagination"
	"folio/internal/valuation"
)

// Inputs arrive loosely typed from JSON bodies and forms; every field is
// normalized before it reaches the store. A nil field is treated as absent.

// CreatePortfolioInput carries the fields accepted when creating a portfolio.
type CreatePortfolioInput struct {
	ID           any `json:"id"`
	Name         any `json:"name"`
	BaseCurrency any `json:"base_currency"`
	CreatedAt    any `json:"created_at"`
}

// UpdatePortfolioInput carries a partial portfolio update.
type UpdatePortfolioInput struct {
	Name         any `json:"name"`
	BaseCurrency any `json:"base_currency"`
}

// CreateHoldingInput carries a direct holding insert.
type CreateHoldingInput struct {
	ID          any `json:"id"`
	PortfolioID any `json:"portfolio_id"`
	Symbol      any `json:"symbol"`
	Quantity    any `json:"quantity"`
	AverageCost any `json:"average_cost"`
	CreatedAt   any `json:"created_at"`
}

// CreateTransactionInput carries a ledger entry to record.
type CreateTransactionInput struct {
	ID          any `json:"id"`
	PortfolioID any `json:"portfolio_id"`
	HoldingID   any `json:"holding_id"`
	Type        any `json:"type"`
	Symbol      any `json:"symbol"`
	Quantity    any `json:"quantity"`
	Price       any `json:"price"`
	TotalAmount any `json:"total_amount"`
	OccurredAt  any `json:"occurred_at"`
	CreatedAt   any `json:"created_at"`
}

// PortfolioServicer defines the contract for portfolio-related business logic.
type PortfolioServicer interface {
	CreatePortfolio(input CreatePortfolioInput) (*models.Portfolio, error)
	ListPortfolios() ([]models.Portfolio, error)
	GetPortfolioByID(id string) (*models.Portfolio, error)
	UpdatePortfolio(id string, input UpdatePortfolioInput) (*models.Portfolio, error)
	DeletePortfolio(id string) error
}

// HoldingServicer defines the contract for holding-related business logic.
type HoldingServicer interface {
	CreateHolding(input CreateHoldingInput) (*models.Holding, error)
	ListHoldingsByPortfolio(portfolioID string) ([]models.Holding, error)
}

// TransactionServicer defines the contract for recording and reading ledger entries.
type TransactionServicer interface {
	CreateTransaction(input CreateTransactionInput) (*models.Transaction, error)
	ListTransactionsByPortfolio(portfolioID string) ([]models.Transaction, error)
	GetRecentTransactions(portfolioID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

// DashboardServicer defines the contract for portfolio valuation.
type DashboardServicer interface {
	GetSummary(ctx context.Context, portfolioID string) (*valuation.Summary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
