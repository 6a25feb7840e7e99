package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"folio/internal/models"
	"folio/internal/pagination"
	"folio/internal/services"
	"folio/internal/validator"
	"folio/internal/valuation"
)

// --- mock services ---

type mockPortfolioService struct {
	createFn func(input services.CreatePortfolioInput) (*models.Portfolio, error)
	listFn   func() ([]models.Portfolio, error)
	getFn    func(id string) (*models.Portfolio, error)
	updateFn func(id string, input services.UpdatePortfolioInput) (*models.Portfolio, error)
	deleteFn func(id string) error
}

func (m *mockPortfolioService) CreatePortfolio(input services.CreatePortfolioInput) (*models.Portfolio, error) {
	if m.createFn != nil {
		return m.createFn(input)
	}
	return &models.Portfolio{}, nil
}

func (m *mockPortfolioService) ListPortfolios() ([]models.Portfolio, error) {
	if m.listFn != nil {
		return m.listFn()
	}
	return []models.Portfolio{}, nil
}

func (m *mockPortfolioService) GetPortfolioByID(id string) (*models.Portfolio, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return &models.Portfolio{ID: id, Name: "Main", BaseCurrency: "USD"}, nil
}

func (m *mockPortfolioService) UpdatePortfolio(id string, input services.UpdatePortfolioInput) (*models.Portfolio, error) {
	if m.updateFn != nil {
		return m.updateFn(id, input)
	}
	return &models.Portfolio{ID: id}, nil
}

func (m *mockPortfolioService) DeletePortfolio(id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

var _ services.PortfolioServicer = (*mockPortfolioService)(nil)

type mockHoldingService struct {
	createFn func(input services.CreateHoldingInput) (*models.Holding, error)
	listFn   func(portfolioID string) ([]models.Holding, error)
}

func (m *mockHoldingService) CreateHolding(input services.CreateHoldingInput) (*models.Holding, error) {
	if m.createFn != nil {
		return m.createFn(input)
	}
	return &models.Holding{}, nil
}

func (m *mockHoldingService) ListHoldingsByPortfolio(portfolioID string) ([]models.Holding, error) {
	if m.listFn != nil {
		return m.listFn(portfolioID)
	}
	return []models.Holding{}, nil
}

var _ services.HoldingServicer = (*mockHoldingService)(nil)

type mockTransactionService struct {
	createFn func(input services.CreateTransactionInput) (*models.Transaction, error)
	listFn   func(portfolioID string) ([]models.Transaction, error)
	recentFn func(portfolioID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

func (m *mockTransactionService) CreateTransaction(input services.CreateTransactionInput) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) ListTransactionsByPortfolio(portfolioID string) ([]models.Transaction, error) {
	if m.listFn != nil {
		return m.listFn(portfolioID)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) GetRecentTransactions(portfolioID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if m.recentFn != nil {
		return m.recentFn(portfolioID, page)
	}
	page.Defaults()
	resp := pagination.NewPageResponse([]models.Transaction{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

type mockDashboardService struct {
	summaryFn func(ctx context.Context, portfolioID string) (*valuation.Summary, error)
}

func (m *mockDashboardService) GetSummary(ctx context.Context, portfolioID string) (*valuation.Summary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, portfolioID)
	}
	return &valuation.Summary{PortfolioID: portfolioID, Currency: "USD"}, nil
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

type mockAuditService struct {
	actions []string
}

func (m *mockAuditService) Log(action, _, _, _ string, _ map[string]any) {
	m.actions = append(m.actions, action)
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]any, code string) map[string]any {
	t.Helper()
	errObj, ok := result["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
	details, _ := errObj["details"].(map[string]any)
	return details
}
