package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/kemaleren/lazyflow/internal/domain/runs"

	"github.com/gin-gonic/gin"
)

// RunHandler defines the interface for handling run-history operations
type RunHandler interface {
	ListRuns(ctx *gin.Context)
	GetRunByID(ctx *gin.Context)
	DeleteRunByID(ctx *gin.Context)
}

// runHandler struct holds the history service
type runHandler struct {
	historyService runs.RunHistoryService
}

// NewRunHandler creates a new RunHandler
func NewRunHandler(historyService runs.RunHistoryService) RunHandler {
	return &runHandler{
		historyService: historyService,
	}
}

// ListRuns fetches run records optionally with query parameters
func (handler *runHandler) ListRuns(ctx *gin.Context) {
	query := runs.NewRunQuery()

	if planName := ctx.Query("plan"); len(planName) > 0 {
		query.PlanName = planName
	}

	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = runs.RunStatus(status)
	}

	if sortBy := ctx.Query("sort_by"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sort_order"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = atoiOrZero(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = atoiOrZero(offset)
	}

	runList, err := handler.historyService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error listing runs: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	responses := make([]RunResponse, 0, len(runList))
	for _, run := range runList {
		responses = append(responses, NewRunResponse(run))
	}

	ctx.JSON(http.StatusOK, responses)
}

// GetRunByID fetches one run record with its step results
func (handler *runHandler) GetRunByID(ctx *gin.Context) {
	runID := ctx.Param("id")

	run, err := handler.historyService.GetByID(ctx, runID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error fetching run: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, NewRunResponse(run))
}

// DeleteRunByID deletes a run record and its step results
func (handler *runHandler) DeleteRunByID(ctx *gin.Context) {
	runID := ctx.Param("id")

	if err := handler.historyService.DeleteByID(ctx, runID); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error deleting run: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusNoContent, nil)
}

func atoiOrZero(s string) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return value
}
