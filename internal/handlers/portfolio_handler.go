package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/services"
)

// portfolioUpdateFields lists the body keys PATCH accepts.
var portfolioUpdateFields = []string{"name", "base_currency"}

// PortfolioHandler handles portfolio-related requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
	auditService     services.AuditServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer, auditService services.AuditServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, auditService: auditService}
}

// CreatePortfolio handles portfolio creation
// @Summary     Create a portfolio
// @Description Create a portfolio. The id is generated when omitted.
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Param       request body services.CreatePortfolioInput true "Portfolio details"
// @Success     201 {object} models.Portfolio
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate id"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolios [post]
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var input services.CreatePortfolioInput
	if err := bindObject(c, &input); err != nil {
		respondWithError(c, err)
		return
	}
	input.ID = idOrNew(input.ID)

	portfolio, err := h.portfolioService.CreatePortfolio(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditCreatePortfolio, "portfolio", portfolio.ID, c.ClientIP(),
		map[string]any{"name": portfolio.Name, "base_currency": portfolio.BaseCurrency})

	c.JSON(http.StatusCreated, portfolio)
}

// ListPortfolios returns every portfolio
// @Summary     List portfolios
// @Tags        portfolios
// @Produce     json
// @Success     200 {object} ListResponse[models.Portfolio]
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolios [get]
func (h *PortfolioHandler) ListPortfolios(c *gin.Context) {
	portfolios, err := h.portfolioService.ListPortfolios()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.Portfolio]{Items: portfolios})
}

// GetPortfolio returns a single portfolio
// @Summary     Get a portfolio
// @Tags        portfolios
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} models.Portfolio
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	portfolio, err := h.portfolioService.GetPortfolioByID(pathID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// UpdatePortfolio applies a partial update
// @Summary     Update a portfolio
// @Description Update name and/or base_currency. Any other field is rejected.
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Param       id      path string                        true "Portfolio ID"
// @Param       request body services.UpdatePortfolioInput true "Fields to change"
// @Success     200 {object} models.Portfolio
// @Failure     400 {object} ErrorResponse "Invalid input or unknown fields"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [patch]
func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	var body map[string]any
	if err := bindObject(c, &body); err != nil {
		respondWithError(c, err)
		return
	}

	if unknown := unknownFields(body, portfolioUpdateFields); len(unknown) > 0 {
		respondWithError(c, apperrors.WithDetails(apperrors.ErrUnknownFields,
			"Request body contains unknown fields.",
			map[string]any{"allowed_fields": portfolioUpdateFields, "unknown_fields": unknown}))
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(pathID(c), services.UpdatePortfolioInput{
		Name:         body["name"],
		BaseCurrency: body["base_currency"],
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditUpdatePortfolio, "portfolio", portfolio.ID, c.ClientIP(), body)

	c.JSON(http.StatusOK, portfolio)
}

// DeletePortfolio removes a portfolio with its holdings and transactions
// @Summary     Delete a portfolio
// @Tags        portfolios
// @Param       id path string true "Portfolio ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [delete]
func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	id := pathID(c)
	if err := h.portfolioService.DeletePortfolio(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditDeletePortfolio, "portfolio", id, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
