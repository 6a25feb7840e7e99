package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/pagination"
	"folio/internal/services"
	"folio/internal/uuid"
)

//go:embed templates/*.html
var templateFS embed.FS

// recentTransactionsLimit is how many transactions the dashboard lists.
const recentTransactionsLimit = 20

// Templates parses the embedded HTML templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// UIHandler serves the server-rendered dashboard.
type UIHandler struct {
	portfolioService   services.PortfolioServicer
	transactionService services.TransactionServicer
	dashboardService   services.DashboardServicer
	auditService       services.AuditServicer
}

// NewUIHandler creates a new UIHandler.
func NewUIHandler(
	portfolioService services.PortfolioServicer,
	transactionService services.TransactionServicer,
	dashboardService services.DashboardServicer,
	auditService services.AuditServicer,
) *UIHandler {
	return &UIHandler{
		portfolioService:   portfolioService,
		transactionService: transactionService,
		dashboardService:   dashboardService,
		auditService:       auditService,
	}
}

// transactionForm is the dashboard's create-transaction form.
type transactionForm struct {
	PortfolioID string `form:"portfolio_id" binding:"required"`
	Type        string `form:"type" binding:"required,transaction_type"`
	Symbol      string `form:"symbol"`
	Quantity    string `form:"quantity"`
	Price       string `form:"price"`
	TotalAmount string `form:"total_amount"`
	OccurredAt  string `form:"occurred_at"`
}

type dashboardPage struct {
	Portfolios   []models.Portfolio
	Selected     *models.Portfolio
	Summary      *SummaryView
	Transactions []TransactionRow
	Types        []models.TransactionType
	Form         transactionForm
	Error        string
}

// Dashboard renders the summary and recent transactions of the selected
// portfolio, or of the first portfolio when none is selected.
func (h *UIHandler) Dashboard(c *gin.Context) {
	form := transactionForm{Type: string(models.TransactionTypeBuy)}
	status, page := h.buildPage(c, strings.TrimSpace(c.Query("portfolio_id")), form)
	c.HTML(status, "dashboard.html", page)
}

// CreateTransaction records a transaction submitted from the dashboard
// form and redirects back to the portfolio. Failures re-render the page
// with the submitted values.
func (h *UIHandler) CreateTransaction(c *gin.Context) {
	var form transactionForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderFormError(c, form, apperrors.WithMessage(apperrors.ErrValidation,
			"portfolio and a valid transaction type are required."))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(services.CreateTransactionInput{
		ID:          uuid.New(),
		PortfolioID: form.PortfolioID,
		Type:        form.Type,
		Symbol:      form.Symbol,
		Quantity:    form.Quantity,
		Price:       form.Price,
		TotalAmount: form.TotalAmount,
		OccurredAt:  form.OccurredAt,
	})
	if err != nil {
		h.renderFormError(c, form, err)
		return
	}

	h.auditService.Log(services.AuditCreateTransaction, "transaction", transaction.ID, c.ClientIP(),
		map[string]any{
			"portfolio_id": transaction.PortfolioID,
			"type":         transaction.Type,
			"total_amount": transaction.TotalAmount,
			"source":       "dashboard",
		})

	c.Redirect(http.StatusSeeOther, "/dashboard?portfolio_id="+url.QueryEscape(transaction.PortfolioID))
}

func (h *UIHandler) renderFormError(c *gin.Context, form transactionForm, err error) {
	status, page := h.buildPage(c, strings.TrimSpace(form.PortfolioID), form)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.ErrInternalServer
	}
	if page.Error == "" {
		page.Error = appErr.Message
		status = appErr.StatusCode
	}
	c.HTML(status, "dashboard.html", page)
}

// buildPage loads everything the dashboard shows. A failure to load the
// page itself is reported in page.Error with the matching status.
func (h *UIHandler) buildPage(c *gin.Context, portfolioID string, form transactionForm) (int, dashboardPage) {
	page := dashboardPage{Types: models.TransactionTypes, Form: form}

	portfolios, err := h.portfolioService.ListPortfolios()
	if err != nil {
		return pageError(page, err)
	}
	page.Portfolios = portfolios

	if portfolioID == "" {
		if len(portfolios) == 0 {
			return http.StatusOK, page
		}
		portfolioID = portfolios[0].ID
	}

	selected, err := h.portfolioService.GetPortfolioByID(portfolioID)
	if err != nil {
		return pageError(page, err)
	}
	page.Selected = selected

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), selected.ID)
	if err != nil {
		return pageError(page, err)
	}
	view := NewSummaryView(summary)
	page.Summary = &view

	recent, err := h.transactionService.GetRecentTransactions(selected.ID, pagination.PageRequest{Page: 1, PageSize: recentTransactionsLimit})
	if err != nil {
		return pageError(page, err)
	}
	page.Transactions = NewTransactionRows(recent.Items, selected.BaseCurrency)

	return http.StatusOK, page
}

func pageError(page dashboardPage, err error) (int, dashboardPage) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.ErrInternalServer
	}
	page.Error = appErr.Message
	return appErr.StatusCode, page
}
