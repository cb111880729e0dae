package middleware

import (
	"net/http"
	"strings"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/gin-gonic/gin"
)

const InvestorIDKey = "investor_id"

// ValidateInvestor is a stubbed authentication middleware that extracts the caller's
// investor ID from the X-Investor-ID header
func ValidateInvestor() gin.HandlerFunc {
	return func(c *gin.Context) {
		investorID := strings.TrimSpace(c.GetHeader("X-Investor-ID"))
		if investorID != "" {
			c.Set(InvestorIDKey, investorID)
		}
		c.Next()
	}
}

// GetInvestorID retrieves the caller's investor ID from the context
func GetInvestorID(c *gin.Context) (string, bool) {
	investorID, exists := c.Get(InvestorIDKey)
	if !exists {
		return "", false
	}
	return investorID.(string), true
}

// RequireMatchingInvestor rejects requests whose caller identity names a different
// investor than the :investor_id path parameter. Anonymous requests pass through.
func RequireMatchingInvestor() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetInvestorID(c)
		if ok && caller != c.Param("investor_id") {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "forbidden",
				Message: "X-Investor-ID does not match the requested investor",
			})
			return
		}
		c.Next()
	}
}
