package handlers

import (
	"github.com/epeers/riskprofile/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the investor and analysis endpoints on router
func RegisterRoutes(router gin.IRouter, investorHandler *InvestorHandler, analysisHandler *AnalysisHandler) {
	// Portfolio-only analysis
	router.POST("/analysis/risk", analysisHandler.PortfolioRisk)
	router.POST("/analysis/concentration", analysisHandler.Concentration)
	router.POST("/analysis/holdings/csv", analysisHandler.UploadHoldings)
	router.GET("/scenarios", analysisHandler.Scenarios)

	// Investor routes
	investors := router.Group("/investors/:investor_id", middleware.RequireMatchingInvestor())
	investors.PUT("", investorHandler.Upsert)
	investors.GET("", investorHandler.Get)
	investors.POST("/assessments", investorHandler.SubmitAssessment)
	investors.GET("/profile", investorHandler.GetProfile)
	investors.GET("/profiles", investorHandler.ProfileHistory)
	investors.POST("/suitability", analysisHandler.Suitability)
	investors.POST("/stress-tests", analysisHandler.StressTest)
	investors.POST("/recommendations", analysisHandler.Recommendations)
	investors.GET("/recommendations/latest", analysisHandler.LatestRecommendations)
}
