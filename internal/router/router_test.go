package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"folio/internal/testutil"
	"folio/internal/valuation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	return New(Deps{
		DB: db,
		Quotes: testutil.StaticQuotes{
			"AAPL": {Price: 120, PreviousClose: 118},
			"MSFT": {Price: 210, PreviousClose: 205},
		},
		Valuation: valuation.Options{Timeout: time.Second, Concurrency: 4},
	})
}

func request(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var parsed map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("invalid JSON from %s %s: %v\n%s", method, path, err, rec.Body.String())
		}
	}
	return rec, parsed
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func errorCode(body map[string]any) string {
	errObj, _ := body["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}

func TestPortfolioLifecycle(t *testing.T) {
	r := newTestRouter(t)

	rec, _ := request(t, r, "POST", "/api/v1/portfolios", `{"id":"portfolio-1","name":"Main portfolio","base_currency":"usd"}`)
	expectStatus(t, rec, http.StatusCreated)

	trades := []string{
		`{"id":"txn-1","type":"BUY","symbol":"AAPL","quantity":10,"price":100,"occurred_at":"2026-01-01"}`,
		`{"id":"txn-2","type":"BUY","symbol":"MSFT","quantity":5,"price":200,"occurred_at":"2026-01-02"}`,
		`{"id":"txn-3","type":"SELL","symbol":"AAPL","quantity":2,"price":110,"occurred_at":"2026-01-03"}`,
	}
	for _, body := range trades {
		rec, _ := request(t, r, "POST", "/api/v1/portfolios/portfolio-1/transactions", body)
		expectStatus(t, rec, http.StatusCreated)
	}

	rec, summary := request(t, r, "GET", "/api/v1/dashboard/summary?portfolio_id=portfolio-1", "")
	expectStatus(t, rec, http.StatusOK)
	want := map[string]float64{"total_value": 2010, "invested_value": 1800, "day_change": 41, "total_gain_loss": 210, "positions_count": 2}
	for key, value := range want {
		if summary[key] != value {
			t.Errorf("%s: expected %v, got %v", key, value, summary[key])
		}
	}
	if summary["currency"] != "USD" {
		t.Errorf("expected USD, got %v", summary["currency"])
	}

	rec, holdings := request(t, r, "GET", "/api/v1/portfolios/portfolio-1/holdings", "")
	expectStatus(t, rec, http.StatusOK)
	items := holdings["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(items))
	}
	aapl := items[0].(map[string]any)
	if aapl["symbol"] != "AAPL" || aapl["quantity"] != 8.0 || aapl["average_cost"] != 100.0 {
		t.Errorf("unexpected AAPL holding: %v", aapl)
	}

	rec, page := request(t, r, "GET", "/api/v1/portfolios/portfolio-1/transactions?page_size=2", "")
	expectStatus(t, rec, http.StatusOK)
	txns := page["items"].([]any)
	if len(txns) != 2 || txns[0].(map[string]any)["id"] != "txn-3" {
		t.Errorf("expected newest transaction first, got %v", txns)
	}
	if page["total_items"] != 3.0 || page["total_pages"] != 2.0 {
		t.Errorf("unexpected pagination: %v", page)
	}

	rec, _ = request(t, r, "GET", "/dashboard?portfolio_id=portfolio-1", "")
	expectStatus(t, rec, http.StatusOK)
	html := rec.Body.String()
	for _, fragment := range []string{`data-testid="dashboard-summary"`, `data-testid="transactions-table"`, "$2,010.00", `data-transaction-id="txn-3"`} {
		if !strings.Contains(html, fragment) {
			t.Errorf("dashboard is missing %s", fragment)
		}
	}

	rec, _ = request(t, r, "DELETE", "/api/v1/portfolios/portfolio-1", "")
	expectStatus(t, rec, http.StatusNoContent)

	rec, body := request(t, r, "GET", "/api/v1/portfolios/portfolio-1/transactions", "")
	expectStatus(t, rec, http.StatusNotFound)
	if errorCode(body) != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %v", body)
	}
}

func TestLedgerErrors(t *testing.T) {
	r := newTestRouter(t)
	rec, _ := request(t, r, "POST", "/api/v1/portfolios", `{"id":"p1","name":"Main","base_currency":"USD"}`)
	expectStatus(t, rec, http.StatusCreated)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"oversell", "/api/v1/portfolios/p1/transactions", `{"type":"SELL","symbol":"AAPL","quantity":1,"price":10}`, http.StatusBadRequest, "INSUFFICIENT_QUANTITY"},
		{"unknown portfolio", "/api/v1/portfolios/nope/transactions", `{"type":"BUY","symbol":"AAPL","quantity":1,"price":10}`, http.StatusBadRequest, "FK_VIOLATION"},
		{"unknown type", "/api/v1/portfolios/p1/transactions", `{"type":"GIFT","total_amount":1}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not an object", "/api/v1/portfolios/p1/transactions", `[1,2]`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"duplicate portfolio", "/api/v1/portfolios", `{"id":"p1","name":"Again","base_currency":"USD"}`, http.StatusConflict, "CONFLICT"},
		{"unknown patch field", "/api/v1/portfolios/p1", `{"owner":"me"}`, http.StatusBadRequest, "UNKNOWN_FIELDS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := "POST"
			if tt.name == "unknown patch field" {
				method = "PATCH"
			}
			rec, body := request(t, r, method, tt.path, tt.body)
			expectStatus(t, rec, tt.status)
			if got := errorCode(body); got != tt.code {
				t.Errorf("expected %s, got %s", tt.code, got)
			}
		})
	}
}

func TestStockRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec, body := request(t, r, "GET", "/api/v1/stocks/quote?symbol=aapl", "")
	expectStatus(t, rec, http.StatusOK)
	if body["price"] != 120.0 {
		t.Errorf("expected 120, got %v", body["price"])
	}

	rec, body = request(t, r, "GET", "/api/v1/stocks/quote?symbol=ZZZZ", "")
	expectStatus(t, rec, http.StatusNotFound)

	rec, body = request(t, r, "GET", "/api/v1/stocks/history?symbol=MSFT&range=5D", "")
	expectStatus(t, rec, http.StatusOK)
	if points := body["points"].([]any); len(points) != 2 {
		t.Errorf("expected 2 points, got %d", len(points))
	}

	rec, body = request(t, r, "GET", "/api/v1/stocks/history?symbol=MSFT&range=10Y", "")
	expectStatus(t, rec, http.StatusBadRequest)
	if errorCode(body) != "INVALID_RANGE" {
		t.Errorf("expected INVALID_RANGE, got %v", body)
	}
}

func TestDashboardForm(t *testing.T) {
	r := newTestRouter(t)
	rec, _ := request(t, r, "POST", "/api/v1/portfolios", `{"id":"p1","name":"Main","base_currency":"USD"}`)
	expectStatus(t, rec, http.StatusCreated)

	form := url.Values{"portfolio_id": {"p1"}, "type": {"DEPOSIT"}, "total_amount": {"500"}, "occurred_at": {"2026-01-05"}}
	req := httptest.NewRequest(http.MethodPost, "/dashboard/transactions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	expectStatus(t, rec, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != "/dashboard?portfolio_id=p1" {
		t.Errorf("unexpected redirect %q", loc)
	}

	rec, page := request(t, r, "GET", "/api/v1/portfolios/p1/transactions", "")
	expectStatus(t, rec, http.StatusOK)
	items := page["items"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["type"] != "DEPOSIT" {
		t.Errorf("expected one deposit, got %v", items)
	}
}

func TestServiceRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec, body := request(t, r, "GET", "/api/health", "")
	expectStatus(t, rec, http.StatusOK)
	if body["status"] != "ok" {
		t.Errorf("unexpected health body: %v", body)
	}

	rec, _ = request(t, r, "GET", "/", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Folio") {
		t.Errorf("unexpected banner: %s", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/portfolios", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "PATCH") {
		t.Errorf("expected PATCH to be allowed, got %q", got)
	}

	rec, _ = request(t, r, "GET", fmt.Sprintf("/api/v1/portfolios/%s", "missing"), "")
	expectStatus(t, rec, http.StatusNotFound)
}
