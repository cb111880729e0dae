package handlers

import (
	"net/http"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/epeers/riskprofile/internal/services"
	"github.com/gin-gonic/gin"
)

// InvestorHandler handles investor, assessment and risk profile endpoints
type InvestorHandler struct {
	profileSvc *services.ProfileService
}

// NewInvestorHandler creates a new InvestorHandler
func NewInvestorHandler(profileSvc *services.ProfileService) *InvestorHandler {
	return &InvestorHandler{
		profileSvc: profileSvc,
	}
}

// Upsert handles PUT /investors/:investor_id
// @Summary Create or update an investor
// @Description Store the demographic inputs used to build risk profiles
// @Tags investors
// @Accept json
// @Produce json
// @Param investor_id path string true "Investor ID"
// @Param request body models.UpsertInvestorRequest true "Investor demographics"
// @Success 200 {object} models.Investor
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /investors/{investor_id} [put]
func (h *InvestorHandler) Upsert(c *gin.Context) {
	var req models.UpsertInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	inv := &models.Investor{
		ID:             c.Param("investor_id"),
		Name:           req.Name,
		Age:            req.Age,
		AnnualIncome:   req.AnnualIncome,
		LiquidNetWorth: req.LiquidNetWorth,
		TimeHorizon:    req.TimeHorizon,
	}
	if err := h.profileSvc.UpsertInvestor(c.Request.Context(), inv); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

// Get handles GET /investors/:investor_id
// @Summary Get an investor
// @Tags investors
// @Produce json
// @Param investor_id path string true "Investor ID"
// @Success 200 {object} models.Investor
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /investors/{investor_id} [get]
func (h *InvestorHandler) Get(c *gin.Context) {
	inv, err := h.profileSvc.GetInvestor(c.Request.Context(), c.Param("investor_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

// SubmitAssessment handles POST /investors/:investor_id/assessments
// @Summary Submit a risk questionnaire
// @Description Score the responses and replace the investor's active risk profile
// @Tags investors
// @Accept json
// @Produce json
// @Param investor_id path string true "Investor ID"
// @Param request body models.SubmitAssessmentRequest true "Questionnaire responses"
// @Success 201 {object} models.RiskProfile
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /investors/{investor_id}/assessments [post]
func (h *InvestorHandler) SubmitAssessment(c *gin.Context) {
	var req models.SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	profile, err := h.profileSvc.SubmitAssessment(c.Request.Context(), c.Param("investor_id"), req.Responses)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// GetProfile handles GET /investors/:investor_id/profile
// @Summary Get the active risk profile
// @Tags investors
// @Produce json
// @Param investor_id path string true "Investor ID"
// @Success 200 {object} models.RiskProfile
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /investors/{investor_id}/profile [get]
func (h *InvestorHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileSvc.GetActiveProfile(c.Request.Context(), c.Param("investor_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ProfileHistory handles GET /investors/:investor_id/profiles
// @Summary List risk profile history
// @Description Every profile the investor has held, newest first
// @Tags investors
// @Produce json
// @Param investor_id path string true "Investor ID"
// @Success 200 {object} models.ProfileHistoryResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /investors/{investor_id}/profiles [get]
func (h *InvestorHandler) ProfileHistory(c *gin.Context) {
	investorID := c.Param("investor_id")
	profiles, err := h.profileSvc.ProfileHistory(c.Request.Context(), investorID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProfileHistoryResponse{
		InvestorID: investorID,
		Profiles:   profiles,
	})
}
