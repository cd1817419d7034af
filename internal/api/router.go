package api

import (
	"etl-dashboard/internal/api/handler"
	"etl-dashboard/pkg/router"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "etl-dashboard/docs" // swagger docs registration
)

// RegisterRoutes wires the dashboard API onto the router. More specific
// routes come first because the router matches in registration order.
func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.POST("/api/v1/runs", h.CreateRun)
	r.GET("/api/v1/runs", h.ListRuns)
	r.GET("/api/v1/runs/*/logs", h.GetRunLogs)
	r.GET("/api/v1/runs/*/summary", h.GetRunSummary)
	r.GET("/api/v1/runs/*/records", h.GetRunRecords)
	r.GET("/api/v1/runs/*/charts", h.GetRunCharts)
	r.GET("/api/v1/runs/*/stats", h.GetRunStats)
	r.GET("/api/v1/runs/*/download", h.DownloadRun)
	r.POST("/api/v1/runs/*/retry", h.RetryRun)
	// Generic run route last
	r.GET("/api/v1/runs/*", h.GetRun)

	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
