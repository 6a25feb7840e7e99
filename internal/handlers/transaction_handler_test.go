package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/pagination"
	"folio/internal/services"
)

func setupLedgerRouter(portfolios *mockPortfolioService, holdings *mockHoldingService, transactions *mockTransactionService) *gin.Engine {
	audit := &mockAuditService{}
	holdingHandler := NewHoldingHandler(portfolios, holdings, audit)
	transactionHandler := NewTransactionHandler(portfolios, transactions, audit)

	r := gin.New()
	r.GET("/portfolios/:id/holdings", holdingHandler.ListHoldings)
	r.POST("/portfolios/:id/holdings", holdingHandler.CreateHolding)
	r.GET("/portfolios/:id/transactions", transactionHandler.ListTransactions)
	r.POST("/portfolios/:id/transactions", transactionHandler.CreateTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 and uses the path portfolio", func(t *testing.T) {
		var got services.CreateTransactionInput
		svc := &mockTransactionService{
			createFn: func(input services.CreateTransactionInput) (*models.Transaction, error) {
				got = input
				symbol := "AAPL"
				return &models.Transaction{ID: "t1", PortfolioID: "p1", Type: models.TransactionTypeBuy, Symbol: &symbol, TotalAmount: 200.5}, nil
			},
		}
		r := setupLedgerRouter(&mockPortfolioService{}, &mockHoldingService{}, svc)

		rec := doRequest(r, "POST", "/portfolios/p1/transactions",
			`{"id":"t1","portfolio_id":"other","type":"BUY","symbol":"aapl","quantity":2,"price":100.25}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.PortfolioID != "p1" {
			t.Errorf("expected path portfolio p1, got %v", got.PortfolioID)
		}
		if got.Quantity != 2.0 {
			t.Errorf("expected quantity 2, got %v", got.Quantity)
		}
		body := parseJSON(t, rec)
		if body["total_amount"] != 200.5 || body["symbol"] != "AAPL" {
			t.Errorf("unexpected body: %v", body)
		}
	})

	t.Run("passes insufficient quantity details through", func(t *testing.T) {
		svc := &mockTransactionService{
			createFn: func(services.CreateTransactionInput) (*models.Transaction, error) {
				return nil, apperrors.WithDetails(apperrors.ErrInsufficientQuantity, "Cannot sell.", map[string]any{
					"symbol":             "AAPL",
					"available_quantity": 1.0,
					"requested_quantity": 2.0,
				})
			},
		}
		r := setupLedgerRouter(&mockPortfolioService{}, &mockHoldingService{}, svc)

		rec := doRequest(r, "POST", "/portfolios/p1/transactions", `{"type":"SELL","symbol":"AAPL","quantity":2,"price":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		details := assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_QUANTITY")
		if details["available_quantity"] != 1.0 {
			t.Errorf("expected available_quantity 1, got %v", details)
		}
	})
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("returns a page", func(t *testing.T) {
		var gotPage pagination.PageRequest
		svc := &mockTransactionService{
			recentFn: func(_ string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				gotPage = page
				resp := pagination.NewPageResponse([]models.Transaction{{ID: "t3"}, {ID: "t2"}}, 1, 2, 3)
				return &resp, nil
			},
		}
		r := setupLedgerRouter(&mockPortfolioService{}, &mockHoldingService{}, svc)

		rec := doRequest(r, "GET", "/portfolios/p1/transactions?page=1&page_size=2", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPage.PageSize != 2 {
			t.Errorf("expected page_size 2, got %d", gotPage.PageSize)
		}
		body := parseJSON(t, rec)
		items := body["items"].([]any)
		if len(items) != 2 || items[0].(map[string]any)["id"] != "t3" {
			t.Errorf("unexpected items: %v", items)
		}
		if body["total_pages"] != 2.0 {
			t.Errorf("expected 2 pages, got %v", body["total_pages"])
		}
	})

	t.Run("rejects oversized page", func(t *testing.T) {
		r := setupLedgerRouter(&mockPortfolioService{}, &mockHoldingService{}, &mockTransactionService{})

		rec := doRequest(r, "GET", "/portfolios/p1/transactions?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_QUERY")
	})

	t.Run("returns 404 for unknown portfolio", func(t *testing.T) {
		portfolios := &mockPortfolioService{
			getFn: func(string) (*models.Portfolio, error) { return nil, apperrors.ErrNotFound },
		}
		r := setupLedgerRouter(portfolios, &mockHoldingService{}, &mockTransactionService{})

		rec := doRequest(r, "GET", "/portfolios/missing/transactions", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestHoldingHandler(t *testing.T) {
	t.Run("lists holdings", func(t *testing.T) {
		holdings := &mockHoldingService{
			listFn: func(portfolioID string) ([]models.Holding, error) {
				return []models.Holding{{ID: "h1", PortfolioID: portfolioID, Symbol: "AAPL", Quantity: 1.5, AverageCost: 100.25}}, nil
			},
		}
		r := setupLedgerRouter(&mockPortfolioService{}, holdings, &mockTransactionService{})

		rec := doRequest(r, "GET", "/portfolios/p1/holdings", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		items := parseJSON(t, rec)["items"].([]any)
		first := items[0].(map[string]any)
		if first["symbol"] != "AAPL" || first["quantity"] != 1.5 || first["average_cost"] != 100.25 {
			t.Errorf("unexpected holding: %v", first)
		}
	})

	t.Run("creates holding under the path portfolio", func(t *testing.T) {
		var got services.CreateHoldingInput
		holdings := &mockHoldingService{
			createFn: func(input services.CreateHoldingInput) (*models.Holding, error) {
				got = input
				return &models.Holding{ID: "h1"}, nil
			},
		}
		r := setupLedgerRouter(&mockPortfolioService{}, holdings, &mockTransactionService{})

		rec := doRequest(r, "POST", "/portfolios/p1/holdings", `{"symbol":"AAPL","quantity":1,"average_cost":10}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if got.PortfolioID != "p1" || got.ID == nil {
			t.Errorf("unexpected input: %+v", got)
		}
	})

	t.Run("maps missing portfolio to FK_VIOLATION", func(t *testing.T) {
		holdings := &mockHoldingService{
			createFn: func(services.CreateHoldingInput) (*models.Holding, error) {
				return nil, apperrors.WithDetails(apperrors.ErrForeignKey, "Referenced portfolio does not exist.", map[string]any{"reference": "portfolio"})
			},
		}
		r := setupLedgerRouter(&mockPortfolioService{}, holdings, &mockTransactionService{})

		rec := doRequest(r, "POST", "/portfolios/missing/holdings", `{"symbol":"AAPL","quantity":1,"average_cost":10}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FK_VIOLATION")
	})
}
