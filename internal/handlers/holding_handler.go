package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"folio/internal/models"
	"folio/internal/services"
)

// HoldingHandler handles holding-related requests.
type HoldingHandler struct {
	portfolioService services.PortfolioServicer
	holdingService   services.HoldingServicer
	auditService     services.AuditServicer
}

// NewHoldingHandler creates a new HoldingHandler.
func NewHoldingHandler(portfolioService services.PortfolioServicer, holdingService services.HoldingServicer, auditService services.AuditServicer) *HoldingHandler {
	return &HoldingHandler{
		portfolioService: portfolioService,
		holdingService:   holdingService,
		auditService:     auditService,
	}
}

// ListHoldings returns a portfolio's holdings ordered by symbol
// @Summary     List holdings
// @Tags        holdings
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} ListResponse[models.Holding]
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/holdings [get]
func (h *HoldingHandler) ListHoldings(c *gin.Context) {
	portfolio, err := h.portfolioService.GetPortfolioByID(pathID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdings, err := h.holdingService.ListHoldingsByPortfolio(portfolio.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.Holding]{Items: holdings})
}

// CreateHolding inserts a holding directly, without a transaction
// @Summary     Create a holding
// @Description Seed a position directly. Normal trading goes through transactions.
// @Tags        holdings
// @Accept      json
// @Produce     json
// @Param       id      path string                      true "Portfolio ID"
// @Param       request body services.CreateHoldingInput true "Holding details"
// @Success     201 {object} models.Holding
// @Failure     400 {object} ErrorResponse "Invalid input or unknown portfolio"
// @Failure     409 {object} ErrorResponse "Duplicate id"
// @Router      /portfolios/{id}/holdings [post]
func (h *HoldingHandler) CreateHolding(c *gin.Context) {
	var input services.CreateHoldingInput
	if err := bindObject(c, &input); err != nil {
		respondWithError(c, err)
		return
	}
	input.ID = idOrNew(input.ID)
	input.PortfolioID = pathID(c)

	holding, err := h.holdingService.CreateHolding(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditCreateHolding, "holding", holding.ID, c.ClientIP(),
		map[string]any{"portfolio_id": holding.PortfolioID, "symbol": holding.Symbol, "quantity": holding.Quantity})

	c.JSON(http.StatusCreated, holding)
}
