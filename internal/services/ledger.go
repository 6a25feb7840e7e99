package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "folio/internal/errors"
	"folio/internal/models"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// WeightedAverageCost returns the average cost after buying qty units at
// price on top of an existing position of oldQty units at oldAvg.
func WeightedAverageCost(oldQty, oldAvg, qty, price float64) float64 {
	oq := decimal.NewFromFloat(oldQty)
	q := decimal.NewFromFloat(qty)
	total := oq.Add(q)
	if total.IsZero() {
		return price
	}
	cost := oq.Mul(decimal.NewFromFloat(oldAvg)).Add(q.Mul(decimal.NewFromFloat(price)))
	return cost.Div(total).InexactFloat64()
}

// tradeAmount is quantity × price rounded to 8 decimal places.
func tradeAmount(quantity, price float64) float64 {
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(price)).Round(8).InexactFloat64()
}

func addQuantity(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).InexactFloat64()
}

func subtractQuantity(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}

func lessThan(a, b float64) bool {
	return decimal.NewFromFloat(a).LessThan(decimal.NewFromFloat(b))
}

// forUpdate locks selected rows on PostgreSQL. The SQLite dialect drops the
// clause; writers are already serialized there.
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// lockPortfolio takes a row lock on the portfolio, returning FK_VIOLATION
// when it does not exist.
func lockPortfolio(db *gorm.DB, portfolioID string) error {
	var portfolio models.Portfolio
	err := forUpdate(db).Select("id").Where("id = ?", portfolioID).Take(&portfolio).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.WithDetails(apperrors.ErrForeignKey, "Referenced portfolio does not exist.",
			map[string]any{"reference": "portfolio", "portfolio_id": portfolioID})
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// requireHolding returns FK_VIOLATION naming the holding when no holding
// with that id exists.
func requireHolding(db *gorm.DB, holdingID, portfolioID string) error {
	var holding models.Holding
	err := db.Select("id").Where("id = ?", holdingID).Take(&holding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.WithDetails(apperrors.ErrForeignKey, "Referenced holding does not exist.",
			map[string]any{"reference": "holding", "holding_id": holdingID, "portfolio_id": portfolioID})
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// findHoldingForUpdate returns the earliest-created holding for the symbol
// in the portfolio, locked, or nil when there is none.
func findHoldingForUpdate(db *gorm.DB, portfolioID, symbol string) (*models.Holding, error) {
	var holding models.Holding
	err := forUpdate(db).
		Where("portfolio_id = ? AND symbol = ?", portfolioID, symbol).
		Order("created_at ASC").
		Order("id ASC").
		Take(&holding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &holding, nil
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return false
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// classifyStoreError maps a write failure onto the error taxonomy. details
// describes the references involved and is attached to FK_VIOLATION.
func classifyStoreError(err error, fkMessage string, details map[string]any) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case isForeignKeyViolation(err):
		e := apperrors.WithDetails(apperrors.ErrForeignKey, fkMessage, details)
		e.Internal = err
		return e
	case isDuplicateKey(err):
		return apperrors.Wrap(apperrors.ErrConflict, err)
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}
