// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/creator-ledger/backend/internal/domain/error"
	"github.com/creator-ledger/backend/internal/integration/entrypoint/dto"
)

// CronSecretHeader carries the shared secret for scheduled triggers.
const CronSecretHeader = "X-Cron-Secret"

// CronAuthMiddleware guards internal endpoints triggered by the scheduler.
type CronAuthMiddleware struct {
	secret string
}

// NewCronAuthMiddleware creates a new cron auth middleware instance.
func NewCronAuthMiddleware(secret string) *CronAuthMiddleware {
	return &CronAuthMiddleware{
		secret: secret,
	}
}

// Authenticate returns a Gin middleware handler that checks the cron secret.
// The response is identical for a missing and a wrong secret.
func (m *CronAuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(CronSecretHeader)

		if m.secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(m.secret)) != 1 {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Unauthorized",
				Code:  string(domainerror.ErrCodeInvalidTriggerSecret),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
