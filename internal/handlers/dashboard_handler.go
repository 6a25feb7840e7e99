package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/services"
)

// DashboardHandler serves portfolio valuations.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary values a portfolio against current quotes
// @Summary     Portfolio summary
// @Description Totals are rounded to 2 decimals. Holdings without a usable quote are valued at average cost and listed in warnings.
// @Tags        dashboard
// @Produce     json
// @Param       portfolio_id query string true "Portfolio ID"
// @Success     200 {object} valuation.Summary
// @Failure     400 {object} ErrorResponse "Missing portfolio_id"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	portfolioID := strings.TrimSpace(c.Query("portfolio_id"))
	if portfolioID == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidQuery,
			`Query parameter "portfolio_id" must be a non-empty string.`))
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
