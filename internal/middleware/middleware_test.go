package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ValidateInvestor())
	r.GET("/investors/:investor_id", RequireMatchingInvestor(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireMatchingInvestor(t *testing.T) {
	testCases := []struct {
		name   string
		header string
		want   int
	}{
		{"anonymous", "", http.StatusOK},
		{"matching", "inv-1", http.StatusOK},
		{"mismatch", "inv-2", http.StatusForbidden},
	}
	r := newRouter()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/investors/inv-1", nil)
			if tc.header != "" {
				req.Header.Set("X-Investor-ID", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	orig := log.StandardLogger().Out
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ValidateInvestor(), RequestLogger())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Investor-ID", "inv-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "path=/health")
	assert.Contains(t, buf.String(), "investor_id=inv-1")
	assert.Contains(t, buf.String(), "status=200")
}
