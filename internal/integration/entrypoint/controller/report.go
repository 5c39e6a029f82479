// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/creator-ledger/backend/config"
	"github.com/creator-ledger/backend/internal/application/adapter"
	"github.com/creator-ledger/backend/internal/application/usecase/report"
	"github.com/creator-ledger/backend/internal/domain/entity"
	domainerror "github.com/creator-ledger/backend/internal/domain/error"
	"github.com/creator-ledger/backend/internal/integration/entrypoint/dto"
)

// ReportController handles the scheduled quarterly report trigger.
type ReportController struct {
	runUseCase *report.RunQuarterlyReportUseCase
	runLock    adapter.RunLock
	cfg        config.ReportConfig
}

// NewReportController creates a new report controller instance.
func NewReportController(
	runUseCase *report.RunQuarterlyReportUseCase,
	runLock adapter.RunLock,
	cfg config.ReportConfig,
) *ReportController {
	return &ReportController{
		runUseCase: runUseCase,
		runLock:    runLock,
		cfg:        cfg,
	}
}

// TriggerQuarterly handles POST /internal/reports/quarterly requests.
// The run is synchronous; the scheduler gets the full summary back.
func (c *ReportController) TriggerQuarterly(ctx *gin.Context) {
	var req dto.TriggerReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidPeriod),
		})
		return
	}

	period, err := c.resolvePeriod(req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeInvalidPeriod),
		})
		return
	}

	lockKey := fmt.Sprintf("%s_%s",
		period.Start.Format("2006-01-02"), period.End.Format("2006-01-02"))

	acquired, err := c.runLock.Acquire(ctx.Request.Context(), lockKey, c.cfg.RunLockTTL)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}
	if !acquired {
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: "A report run for this period is already in progress",
			Code:  string(domainerror.ErrCodeRunInProgress),
		})
		return
	}
	defer func() {
		if err := c.runLock.Release(context.Background(), lockKey); err != nil {
			slog.Warn("Failed to release report run lock", "key", lockKey, "error", err)
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.cfg.RunTimeout)
	defer cancel()

	result, err := c.runUseCase.Execute(runCtx, report.RunReportInput{Period: period})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportRunResponse(result))
}

// resolvePeriod builds the reporting period from the request, defaulting to
// the previous calendar quarter when no dates were given.
func (c *ReportController) resolvePeriod(req dto.TriggerReportRequest) (*entity.ReportingPeriod, error) {
	if req.StartDate == "" && req.EndDate == "" {
		period := report.PreviousQuarter(time.Now().UTC())
		return &period, nil
	}
	if req.StartDate == "" || req.EndDate == "" {
		return nil, errors.New("start_date and end_date must both be set")
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, errors.New("invalid start_date, expected YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, errors.New("invalid end_date, expected YYYY-MM-DD")
	}

	return &entity.ReportingPeriod{Start: start, End: end}, nil
}

// handleReportError maps report errors to HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		status := http.StatusInternalServerError
		if reportErr.Code == domainerror.ErrCodeInvalidPeriod {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
