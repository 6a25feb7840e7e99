// Package router assembles the gin engine: middleware, the JSON API under
// /api/v1, Swagger docs and the server-rendered dashboard.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"folio/internal/handlers"
	"folio/internal/middleware"
	"folio/internal/quote"
	"folio/internal/services"
	"folio/internal/validator"
	"folio/internal/valuation"
)

// Deps are the collaborators the routes need.
type Deps struct {
	DB         *gorm.DB
	Quotes     quote.Provider
	Valuation  valuation.Options
	ServerName string
}

// New wires services and handlers over deps and registers every route.
func New(deps Deps) *gin.Engine {
	validator.Register()

	portfolioService := services.NewPortfolioService(deps.DB)
	holdingService := services.NewHoldingService(deps.DB)
	transactionService := services.NewTransactionService(deps.DB)
	auditService := services.NewAuditService(deps.DB)
	aggregator := valuation.NewAggregator(deps.Quotes, deps.Valuation)
	dashboardService := services.NewDashboardService(portfolioService, holdingService, aggregator)

	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, auditService)
	holdingHandler := handlers.NewHoldingHandler(portfolioService, holdingService, auditService)
	transactionHandler := handlers.NewTransactionHandler(portfolioService, transactionService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	stockHandler := handlers.NewStockHandler(deps.Quotes)
	uiHandler := handlers.NewUIHandler(portfolioService, transactionService, dashboardService, auditService)

	name := deps.ServerName
	if name == "" {
		name = "Folio"
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogging())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.SetHTMLTemplate(handlers.Templates())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%s portfolio API is running. See /api/health and /dashboard.", name)
	})
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "quote_provider": deps.Quotes.Name()})
	})

	v1 := r.Group("/api/v1")

	portfolios := v1.Group("/portfolios")
	portfolios.POST("", portfolioHandler.CreatePortfolio)
	portfolios.GET("", portfolioHandler.ListPortfolios)
	portfolios.GET("/:id", portfolioHandler.GetPortfolio)
	portfolios.PATCH("/:id", portfolioHandler.UpdatePortfolio)
	portfolios.DELETE("/:id", portfolioHandler.DeletePortfolio)
	portfolios.GET("/:id/holdings", holdingHandler.ListHoldings)
	portfolios.POST("/:id/holdings", holdingHandler.CreateHolding)
	portfolios.GET("/:id/transactions", transactionHandler.ListTransactions)
	portfolios.POST("/:id/transactions", transactionHandler.CreateTransaction)

	v1.GET("/dashboard/summary", dashboardHandler.GetSummary)

	stocks := v1.Group("/stocks")
	stocks.GET("/quote", stockHandler.GetQuote)
	stocks.GET("/history", stockHandler.GetHistory)

	r.GET("/dashboard", uiHandler.Dashboard)
	r.POST("/dashboard/transactions", uiHandler.CreateTransaction)

	return r
}
