package v1

import (
	"net/http"

	"github.com/kemaleren/lazyflow/internal/domain/runs"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, historyService runs.RunHistoryService) {
	v1 := r.Group(BasePath) // lookup in version file

	// Run history routes
	runHandler := NewRunHandler(historyService)
	v1.GET("/runs", runHandler.ListRuns)
	v1.GET("/runs/:id", runHandler.GetRunByID)
	v1.DELETE("/runs/:id", runHandler.DeleteRunByID)

	// Liveness
	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
	})
}
