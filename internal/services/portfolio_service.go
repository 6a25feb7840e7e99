package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/normalize"
)

// portfolioService handles portfolio-related business logic.
type portfolioService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db, now: time.Now}
}

// CreatePortfolio inserts a new portfolio. A duplicate id is a CONFLICT.
func (s *portfolioService) CreatePortfolio(input CreatePortfolioInput) (*models.Portfolio, error) {
	id, err := normalize.RequiredText(input.ID, "id")
	if err != nil {
		return nil, err
	}
	name, err := normalize.RequiredText(input.Name, "name")
	if err != nil {
		return nil, err
	}
	currency, err := normalize.Currency(input.BaseCurrency, "base_currency")
	if err != nil {
		return nil, err
	}
	createdAt, err := normalize.OptionalDate(input.CreatedAt, "created_at", s.now())
	if err != nil {
		return nil, err
	}

	portfolio := &models.Portfolio{
		ID:           id,
		Name:         name,
		BaseCurrency: currency,
		CreatedAt:    createdAt,
	}
	if err := s.db.Create(portfolio).Error; err != nil {
		return nil, classifyStoreError(err, "Referenced record does not exist.", nil)
	}
	return portfolio, nil
}

// ListPortfolios returns every portfolio, oldest first.
func (s *portfolioService) ListPortfolios() ([]models.Portfolio, error) {
	portfolios := []models.Portfolio{}
	if err := s.db.Order("created_at ASC").Order("id ASC").Find(&portfolios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return portfolios, nil
}

// GetPortfolioByID retrieves a portfolio, or NOT_FOUND.
func (s *portfolioService) GetPortfolioByID(id string) (*models.Portfolio, error) {
	id = strings.TrimSpace(id)

	var portfolio models.Portfolio
	if err := s.db.Where("id = ?", id).Take(&portfolio).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, portfolioNotFound(id)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &portfolio, nil
}

// UpdatePortfolio applies the provided fields. At least one must be present.
func (s *portfolioService) UpdatePortfolio(id string, input UpdatePortfolioInput) (*models.Portfolio, error) {
	id = strings.TrimSpace(id)

	if normalize.IsAbsent(input.Name) && normalize.IsAbsent(input.BaseCurrency) {
		return nil, apperrors.WithDetails(apperrors.ErrValidation,
			"At least one of name or base_currency must be provided.",
			map[string]any{"allowed_fields": []string{"name", "base_currency"}})
	}

	updates := map[string]any{}
	if !normalize.IsAbsent(input.Name) {
		name, err := normalize.RequiredText(input.Name, "name")
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if !normalize.IsAbsent(input.BaseCurrency) {
		currency, err := normalize.Currency(input.BaseCurrency, "base_currency")
		if err != nil {
			return nil, err
		}
		updates["base_currency"] = currency
	}

	var portfolio models.Portfolio
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Portfolio{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return portfolioNotFound(id)
		}
		if err := tx.Where("id = ?", id).Take(&portfolio).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// DeletePortfolio removes a portfolio along with its holdings and transactions.
func (s *portfolioService) DeletePortfolio(id string) error {
	id = strings.TrimSpace(id)

	result := s.db.Where("id = ?", id).Delete(&models.Portfolio{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return portfolioNotFound(id)
	}
	return nil
}

func portfolioNotFound(id string) error {
	return apperrors.WithDetails(apperrors.ErrNotFound, "Portfolio not found.", map[string]any{"portfolio_id": id})
}
