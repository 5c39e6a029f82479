// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creator-ledger/backend/internal/application/usecase/platform"
	domainerror "github.com/creator-ledger/backend/internal/domain/error"
	"github.com/creator-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/creator-ledger/backend/internal/integration/entrypoint/middleware"
)

// PlatformController handles platform connection endpoints.
type PlatformController struct {
	listUseCase *platform.ListConnectionsUseCase
}

// NewPlatformController creates a new platform controller instance.
func NewPlatformController(listUseCase *platform.ListConnectionsUseCase) *PlatformController {
	return &PlatformController{
		listUseCase: listUseCase,
	}
}

// List handles GET /platforms requests.
func (c *PlatformController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Authentication required",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), platform.ListConnectionsInput{
		UserID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToListConnectionsResponse(output))
}
