package services

import (
	"context"

	"folio/internal/valuation"
)

// dashboardService values portfolios against live quotes.
type dashboardService struct {
	portfolios PortfolioServicer
	holdings   HoldingServicer
	aggregator *valuation.Aggregator
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(portfolios PortfolioServicer, holdings HoldingServicer, aggregator *valuation.Aggregator) DashboardServicer {
	return &dashboardService{
		portfolios: portfolios,
		holdings:   holdings,
		aggregator: aggregator,
	}
}

// GetSummary values every holding of the portfolio. Quote failures degrade
// to warnings; only ledger errors are returned.
func (s *dashboardService) GetSummary(ctx context.Context, portfolioID string) (*valuation.Summary, error) {
	portfolio, err := s.portfolios.GetPortfolioByID(portfolioID)
	if err != nil {
		return nil, err
	}

	holdings, err := s.holdings.ListHoldingsByPortfolio(portfolio.ID)
	if err != nil {
		return nil, err
	}

	summary := s.aggregator.Compute(ctx, portfolio.ID, holdings)
	summary.Currency = portfolio.BaseCurrency
	return &summary, nil
}
