// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/creator-ledger/backend/internal/application/usecase/dashboard"
	domainerror "github.com/creator-ledger/backend/internal/domain/error"
	"github.com/creator-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/creator-ledger/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getKPIsUseCase *dashboard.GetKPIsUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(getKPIsUseCase *dashboard.GetKPIsUseCase) *DashboardController {
	return &DashboardController{
		getKPIsUseCase: getKPIsUseCase,
	}
}

// GetKPIs handles GET /dashboard/kpis requests.
func (c *DashboardController) GetKPIs(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Authentication required",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := dashboard.GetKPIsInput{UserID: userID}

	if raw := ctx.Query("start_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start_date, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateRange),
			})
			return
		}
		input.StartDate = parsed
	}
	if raw := ctx.Query("end_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end_date, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateRange),
			})
			return
		}
		input.EndDate = parsed
	}

	output, err := c.getKPIsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToKPIsResponse(output))
}
