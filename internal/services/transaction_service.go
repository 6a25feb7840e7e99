package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "folio/internal/errors"
	"folio/internal/logger"
	"folio/internal/models"
	"folio/internal/normalize"
	"folio/internal/pagination"
	"folio/internal/uuid"
)

// transactionService records ledger entries and maintains the holdings they
// derive.
type transactionService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db, now: time.Now}
}

// CreateTransaction validates and records a ledger entry. BUY and SELL
// update the symbol's holding in the same database transaction; any failure
// leaves both the holding and the ledger untouched.
func (s *transactionService) CreateTransaction(input CreateTransactionInput) (*models.Transaction, error) {
	now := s.now()

	id, err := normalize.RequiredText(input.ID, "id")
	if err != nil {
		return nil, err
	}
	portfolioID, err := normalize.RequiredText(input.PortfolioID, "portfolio_id")
	if err != nil {
		return nil, err
	}
	txType, err := normalizeType(input.Type)
	if err != nil {
		return nil, err
	}
	occurredAt, err := normalize.OptionalDate(input.OccurredAt, "occurred_at", now)
	if err != nil {
		return nil, err
	}
	createdAt, err := normalize.OptionalDate(input.CreatedAt, "created_at", now)
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		ID:          id,
		PortfolioID: portfolioID,
		Type:        txType,
		OccurredAt:  occurredAt,
		CreatedAt:   createdAt,
	}

	if txType.MutatesHolding() {
		err = s.recordTrade(txn, input)
	} else {
		err = s.recordCashMovement(txn, input)
	}
	if err != nil {
		return nil, err
	}

	logger.Named("ledger").Debugw("transaction recorded",
		"transaction_id", txn.ID,
		"portfolio_id", txn.PortfolioID,
		"type", txn.Type,
	)
	return txn, nil
}

func normalizeType(v any) (models.TransactionType, error) {
	raw, err := normalize.RequiredText(v, "type")
	if err != nil {
		return "", err
	}
	txType := models.TransactionType(strings.ToUpper(raw))
	if !txType.Valid() {
		return "", apperrors.WithDetails(apperrors.ErrValidation,
			fmt.Sprintf("type must be one of %v.", models.TransactionTypes),
			map[string]any{"field": "type", "value": v, "allowed": models.TransactionTypes})
	}
	return txType, nil
}

// recordTrade handles BUY and SELL. The holding is resolved under lock, so
// the caller's holding_id is never trusted.
func (s *transactionService) recordTrade(txn *models.Transaction, input CreateTransactionInput) error {
	symbol, err := normalize.Symbol(input.Symbol, "symbol")
	if err != nil {
		return err
	}
	quantity, err := normalize.PositiveNumber(input.Quantity, "quantity")
	if err != nil {
		return err
	}
	price, err := normalize.PositiveNumber(input.Price, "price")
	if err != nil {
		return err
	}
	total := tradeAmount(quantity, price)
	if !normalize.IsAbsent(input.TotalAmount) {
		if total, err = normalize.NonNegativeNumber(input.TotalAmount, "total_amount"); err != nil {
			return err
		}
	}

	txn.Symbol = &symbol
	txn.Quantity = &quantity
	txn.Price = &price
	txn.TotalAmount = total

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockPortfolio(tx, txn.PortfolioID); err != nil {
			return err
		}

		holding, err := findHoldingForUpdate(tx, txn.PortfolioID, symbol)
		if err != nil {
			return err
		}

		if txn.Type == models.TransactionTypeBuy {
			holding, err = applyBuy(tx, holding, txn)
		} else {
			holding, err = applySell(tx, holding, txn)
		}
		if err != nil {
			return err
		}

		txn.HoldingID = &holding.ID
		if err := tx.Create(txn).Error; err != nil {
			return classifyStoreError(err, "Referenced record does not exist.",
				map[string]any{"portfolio_id": txn.PortfolioID, "holding_id": holding.ID})
		}
		return nil
	})
}

func applyBuy(tx *gorm.DB, holding *models.Holding, txn *models.Transaction) (*models.Holding, error) {
	quantity, price := *txn.Quantity, *txn.Price

	if holding == nil {
		holding = &models.Holding{
			ID:          uuid.New(),
			PortfolioID: txn.PortfolioID,
			Symbol:      *txn.Symbol,
			Quantity:    quantity,
			AverageCost: price,
			CreatedAt:   txn.CreatedAt,
		}
		if err := tx.Create(holding).Error; err != nil {
			return nil, classifyStoreError(err, "Referenced portfolio does not exist.",
				map[string]any{"reference": "portfolio", "portfolio_id": txn.PortfolioID})
		}
		return holding, nil
	}

	newQuantity := addQuantity(holding.Quantity, quantity)
	newAverage := WeightedAverageCost(holding.Quantity, holding.AverageCost, quantity, price)
	err := tx.Model(&models.Holding{}).Where("id = ?", holding.ID).Updates(map[string]any{
		"quantity":     newQuantity,
		"average_cost": newAverage,
	}).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	holding.Quantity = newQuantity
	holding.AverageCost = newAverage
	return holding, nil
}

func applySell(tx *gorm.DB, holding *models.Holding, txn *models.Transaction) (*models.Holding, error) {
	quantity := *txn.Quantity

	available := 0.0
	if holding != nil {
		available = holding.Quantity
	}
	if holding == nil || lessThan(available, quantity) {
		return nil, apperrors.WithDetails(apperrors.ErrInsufficientQuantity,
			fmt.Sprintf("Cannot sell %v %s; only %v available.", quantity, *txn.Symbol, available),
			map[string]any{
				"symbol":             *txn.Symbol,
				"available_quantity": available,
				"requested_quantity": quantity,
			})
	}

	newQuantity := subtractQuantity(holding.Quantity, quantity)
	err := tx.Model(&models.Holding{}).Where("id = ?", holding.ID).Update("quantity", newQuantity).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	holding.Quantity = newQuantity
	return holding, nil
}

// recordCashMovement handles DEPOSIT and WITHDRAWAL, which never touch a
// holding. Both references are checked before the insert so FK_VIOLATION
// names the missing one; the store's foreign keys still back this up.
func (s *transactionService) recordCashMovement(txn *models.Transaction, input CreateTransactionInput) error {
	symbol, err := normalize.OptionalSymbol(input.Symbol, "symbol")
	if err != nil {
		return err
	}
	quantity, err := normalize.OptionalPositiveNumber(input.Quantity, "quantity")
	if err != nil {
		return err
	}
	price, err := normalize.OptionalPositiveNumber(input.Price, "price")
	if err != nil {
		return err
	}
	if normalize.IsAbsent(input.TotalAmount) {
		return apperrors.WithDetails(apperrors.ErrValidation,
			fmt.Sprintf("total_amount is required for %s transactions.", txn.Type),
			map[string]any{"field": "total_amount"})
	}
	total, err := normalize.NonNegativeNumber(input.TotalAmount, "total_amount")
	if err != nil {
		return err
	}

	details := map[string]any{"portfolio_id": txn.PortfolioID}
	if !normalize.IsAbsent(input.HoldingID) {
		holdingID, err := normalize.RequiredText(input.HoldingID, "holding_id")
		if err != nil {
			return err
		}
		txn.HoldingID = &holdingID
		details["holding_id"] = holdingID
	}

	txn.Symbol = symbol
	txn.Quantity = quantity
	txn.Price = price
	txn.TotalAmount = total

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockPortfolio(tx, txn.PortfolioID); err != nil {
			return err
		}
		if txn.HoldingID != nil {
			if err := requireHolding(tx, *txn.HoldingID, txn.PortfolioID); err != nil {
				return err
			}
		}
		if err := tx.Create(txn).Error; err != nil {
			return classifyStoreError(err, "Referenced portfolio or holding does not exist.", details)
		}
		return nil
	})
}

// ListTransactionsByPortfolio returns every entry for the portfolio, newest first.
func (s *transactionService) ListTransactionsByPortfolio(portfolioID string) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if err := newestFirst(s.byPortfolio(portfolioID)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetRecentTransactions returns one page of the portfolio's entries, newest first.
func (s *transactionService) GetRecentTransactions(portfolioID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	var totalItems int64
	if err := s.byPortfolio(portfolioID).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := newestFirst(s.byPortfolio(portfolioID)).
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *transactionService) byPortfolio(portfolioID string) *gorm.DB {
	return s.db.Model(&models.Transaction{}).Where("portfolio_id = ?", strings.TrimSpace(portfolioID))
}

func newestFirst(q *gorm.DB) *gorm.DB {
	return q.Order("occurred_at DESC").Order("created_at DESC").Order("id DESC")
}
