package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/normalize"
)

// holdingService handles holding-related business logic.
type holdingService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewHoldingService creates a new HoldingServicer.
func NewHoldingService(db *gorm.DB) HoldingServicer {
	return &holdingService{db: db, now: time.Now}
}

// CreateHolding inserts a holding directly. It bypasses the transaction
// path, so no cost basis is derived and no uniqueness per symbol is enforced.
func (s *holdingService) CreateHolding(input CreateHoldingInput) (*models.Holding, error) {
	id, err := normalize.RequiredText(input.ID, "id")
	if err != nil {
		return nil, err
	}
	portfolioID, err := normalize.RequiredText(input.PortfolioID, "portfolio_id")
	if err != nil {
		return nil, err
	}
	symbol, err := normalize.Symbol(input.Symbol, "symbol")
	if err != nil {
		return nil, err
	}
	quantity, err := normalize.NonNegativeNumber(input.Quantity, "quantity")
	if err != nil {
		return nil, err
	}
	averageCost, err := normalize.NonNegativeNumber(input.AverageCost, "average_cost")
	if err != nil {
		return nil, err
	}
	createdAt, err := normalize.OptionalDate(input.CreatedAt, "created_at", s.now())
	if err != nil {
		return nil, err
	}

	holding := &models.Holding{
		ID:          id,
		PortfolioID: portfolioID,
		Symbol:      symbol,
		Quantity:    quantity,
		AverageCost: averageCost,
		CreatedAt:   createdAt,
	}
	if err := s.db.Create(holding).Error; err != nil {
		return nil, classifyStoreError(err, "Referenced portfolio does not exist.",
			map[string]any{"reference": "portfolio", "portfolio_id": portfolioID})
	}
	return holding, nil
}

// ListHoldingsByPortfolio returns the portfolio's holdings ordered by symbol.
func (s *holdingService) ListHoldingsByPortfolio(portfolioID string) ([]models.Holding, error) {
	holdings := []models.Holding{}
	err := s.db.Where("portfolio_id = ?", strings.TrimSpace(portfolioID)).
		Order("symbol ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&holdings).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holdings, nil
}
