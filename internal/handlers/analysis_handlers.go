package handlers

import (
	"net/http"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/epeers/riskprofile/internal/services"
	"github.com/gin-gonic/gin"
)

// AnalysisHandler handles portfolio analysis endpoints
type AnalysisHandler struct {
	analysisSvc *services.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysisSvc *services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisSvc: analysisSvc,
	}
}

// PortfolioRisk handles POST /analysis/risk
// @Summary Compute portfolio risk metrics
// @Description Volatility, beta, expected return, risk-adjusted ratios, VaR, drawdown and risk decomposition
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.RiskAnalysisRequest true "Portfolio and optional benchmark"
// @Success 200 {object} models.RiskAnalysisResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /analysis/risk [post]
func (h *AnalysisHandler) PortfolioRisk(c *gin.Context) {
	var req models.RiskAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	result, err := h.analysisSvc.PortfolioRisk(ctx, &req.Portfolio, req.Benchmark)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RiskAnalysisResponse{
		Result:   result,
		Warnings: wc.GetWarnings(),
	})
}

// Concentration handles POST /analysis/concentration
// @Summary Analyze portfolio concentration
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.ConcentrationRequest true "Portfolio and optional thresholds"
// @Success 200 {object} models.ConcentrationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /analysis/concentration [post]
func (h *AnalysisHandler) Concentration(c *gin.Context) {
	var req models.ConcentrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	result, err := h.analysisSvc.Concentration(ctx, &req.Portfolio, req.Thresholds)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ConcentrationResponse{
		Result:   result,
		Warnings: wc.GetWarnings(),
	})
}

// UploadHoldings handles POST /analysis/holdings/csv
// @Summary Parse a holdings CSV into a portfolio snapshot
// @Description Columns: symbol, security_kind, market_value, and optionally sector, weight, beta, volatility
// @Tags analysis
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Holdings CSV"
// @Success 200 {object} models.PortfolioSnapshot
// @Failure 400 {object} models.ErrorResponse
// @Router /analysis/holdings/csv [post]
func (h *AnalysisHandler) UploadHoldings(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "a CSV file is required in the 'file' form field")
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer f.Close()

	snapshot, err := ParseHoldingsCSV(f)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Scenarios handles GET /scenarios
// @Summary List stress scenarios
// @Tags analysis
// @Produce json
// @Success 200 {object} models.ScenarioListResponse
// @Router /scenarios [get]
func (h *AnalysisHandler) Scenarios(c *gin.Context) {
	c.JSON(http.StatusOK, h.analysisSvc.Scenarios())
}

// Suitability handles POST /investors/:investor_id/suitability
// @Summary Evaluate portfolio suitability
// @Description Score the portfolio against the investor's active risk profile
// @Tags investors
// @Accept json
// @Produce json
// @Param investor_id path string true "Investor ID"
// @Param request body models.SuitabilityRequest true "Portfolio"
// @Success 200 {object} models.SuitabilityResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /investors/{investor_id}/suitability [post]
func (h *AnalysisHandler) Suitability(c *gin.Context) {
	var req models.SuitabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	result, err := h.analysisSvc.Suitability(ctx, c.Param("investor_id"), &req.Portfolio)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuitabilityResponse{
		Result:   result,
		Warnings: wc.GetWarnings(),
	})
}

// StressTest handles POST /investors/:investor_id/stress-tests
// @Summary Run stress scenarios
// @Description Results are returned in request order, compared to the active profile's drawdown tolerance when one exists
// @Tags investors
// @Accept json
// @Produce json
// @Param investor_id path string true "Investor ID"
// @Param request body models.StressTestRequest true "Scenario IDs and portfolio"
// @Success 200 {object} models.StressTestResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /investors/{investor_id}/stress-tests [post]
func (h *AnalysisHandler) StressTest(c *gin.Context) {
	var req models.StressTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	results, err := h.analysisSvc.StressTest(ctx, c.Param("investor_id"), req.ScenarioIDs, &req.Portfolio)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StressTestResponse{
		Results:  results,
		Warnings: wc.GetWarnings(),
	})
}

// Recommendations handles POST /investors/:investor_id/recommendations
// @Summary Generate recommendations
// @Description Run the full analysis for the investor and persist a new recommendation bundle
// @Tags investors
// @Accept json
// @Produce json
// @Param investor_id path string true "Investor ID"
// @Param request body models.RecommendationRequest true "Portfolio, optional benchmark and as-of date"
// @Success 201 {object} models.RecommendationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /investors/{investor_id}/recommendations [post]
func (h *AnalysisHandler) Recommendations(c *gin.Context) {
	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx, wc := services.NewWarningContext(c.Request.Context())
	bundle, err := h.analysisSvc.Recommendations(ctx, c.Param("investor_id"), &req.Portfolio, req.Benchmark, req.AsOf)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.RecommendationResponse{
		Bundle:   bundle,
		Warnings: wc.GetWarnings(),
	})
}

// LatestRecommendations handles GET /investors/:investor_id/recommendations/latest
// @Summary Get the latest recommendation bundle
// @Tags investors
// @Produce json
// @Param investor_id path string true "Investor ID"
// @Success 200 {object} models.RecommendationBundle
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /investors/{investor_id}/recommendations/latest [get]
func (h *AnalysisHandler) LatestRecommendations(c *gin.Context) {
	bundle, err := h.analysisSvc.LatestRecommendations(c.Request.Context(), c.Param("investor_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bundle)
}
