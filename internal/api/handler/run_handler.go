package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"etl-dashboard/internal/charts"
	"etl-dashboard/internal/model"
	"etl-dashboard/internal/pipeline"
	"etl-dashboard/internal/store"
	"etl-dashboard/pkg/utils"

	"github.com/google/uuid"
)

// Handler serves the dashboard API. It owns the run-history store and an
// in-memory index of finished engines so read endpoints can reach each run's
// dataset, logs and stats. Engines are never shared between runs.
type Handler struct {
	store   *store.Store
	outputs *utils.OutputManager

	mu      sync.RWMutex
	engines map[string]*pipeline.Engine
}

// New creates a Handler backed by the given store and output manager.
func New(st *store.Store, outputs *utils.OutputManager) *Handler {
	return &Handler{
		store:   st,
		outputs: outputs,
		engines: make(map[string]*pipeline.Engine),
	}
}

// RunRequest is the body of POST /api/v1/runs.
type RunRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Rows        int    `json:"rows,omitempty"`
	Seed        *int64 `json:"seed,omitempty"`
}

// CreateRun executes a full pipeline run
// @Summary Run the ETL pipeline
// @Description Run extract, transform and load synchronously with the given source and destination
// @Tags runs
// @Accept json
// @Produce json
// @Param run body RunRequest true "Run parameters"
// @Success 200 {object} map[string]interface{} "Run outcome"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [post]
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.Source == "" {
		req.Source = string(model.SourceSample)
	}
	if req.Destination == "" {
		req.Destination = string(model.DestinationMemory)
	}

	runID := uuid.New().String()
	source := model.SourceType(req.Source)
	dest := model.Destination(req.Destination)

	if err := h.store.SaveRun(runID, source, dest); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	h.execute(w, runID, source, dest, req.Rows, req.Seed)
}

// execute runs a pipeline synchronously, records the outcome and writes the
// response. Unknown sources and destinations are not rejected up front: the
// engine reports them as the failing stage, which is what the dashboard
// displays.
func (h *Handler) execute(w http.ResponseWriter, runID string, source model.SourceType, dest model.Destination, rows int, seed *int64) {
	opts := []pipeline.Option{}
	if rows > 0 {
		opts = append(opts, pipeline.WithRows(rows))
	}
	if seed != nil {
		opts = append(opts, pipeline.WithSeed(*seed))
	}
	if dest == model.DestinationCSV {
		if _, err := h.outputs.CreateRunOutputDir(runID); err != nil {
			log.Printf("run %s: %v", runID, err)
		}
		opts = append(opts, pipeline.WithOutputPath(h.outputs.OutputFilePath(runID, "etl_output.csv")))
	}

	eng := pipeline.New(opts...)
	status := eng.RunFullPipeline(source, dest)

	h.mu.Lock()
	h.engines[runID] = eng
	h.mu.Unlock()

	runState, outputFile := "completed", ""
	if !status.Succeeded {
		runState = "failed"
	}
	if ls := eng.LoadStatus(); ls != nil {
		outputFile = ls.Filename
	}
	if err := h.store.UpdateRun(runID, runState, status.FailedStage, len(eng.Dataset()), outputFile); err != nil {
		log.Printf("run %s: failed to update run: %v", runID, err)
	}
	if err := h.store.SaveLogs(runID, eng.Logs()); err != nil {
		log.Printf("run %s: failed to save logs: %v", runID, err)
	}

	resp := map[string]interface{}{
		"run_id":  runID,
		"status":  status,
		"records": len(eng.Dataset()),
	}
	if outputFile != "" {
		resp["download_url"] = h.outputs.DownloadURL(runID)
	}
	writeJSON(w, resp)
}

// ListRuns lists run history
// @Summary List pipeline runs
// @Tags runs
// @Produce json
// @Success 200 {array} model.RunRecord "Run history, newest first"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [get]
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"runs": runs, "count": len(runs)})
}

// GetRun fetches one run's history entry
// @Summary Get a pipeline run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} model.RunRecord "Run details"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id} [get]
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "")
	if !ok {
		return
	}
	run, err := h.store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	writeJSON(w, run)
}

// GetRunLogs returns the persisted log entries for a run
// @Summary Get run logs
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Param limit query int false "Maximum entries to return"
// @Success 200 {object} map[string]interface{} "Log entries, oldest first"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/logs [get]
func (h *Handler) GetRunLogs(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/logs")
	if !ok {
		return
	}
	limit := queryInt(r, "limit", 100)
	logs, err := h.store.GetLogs(runID, limit)
	if err != nil {
		http.Error(w, "Failed to retrieve logs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{
		"run_id": runID,
		"logs":   logs,
		"count":  len(logs),
		"limit":  limit,
	})
}

// GetRunSummary returns summary statistics for a run
// @Summary Get run summary statistics
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} model.SummaryStats "Summary statistics"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Failure 409 {object} map[string]interface{} "Run has no transformed dataset"
// @Router /runs/{id}/summary [get]
func (h *Handler) GetRunSummary(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/summary")
	if !ok {
		return
	}
	eng, ok := h.engine(runID)
	if !ok {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	stats, err := eng.SummaryStats()
	if err != nil {
		var serr *pipeline.StateError
		if errors.As(err, &serr) {
			http.Error(w, serr.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Failed to compute summary", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

// GetRunRecords returns transformed records, optionally filtered
// @Summary Get transformed records
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Param limit query int false "Maximum rows to return"
// @Param region query string false "Filter by region"
// @Param product query string false "Filter by product name"
// @Success 200 {object} map[string]interface{} "Records"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id}/records [get]
func (h *Handler) GetRunRecords(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/records")
	if !ok {
		return
	}
	eng, ok := h.engine(runID)
	if !ok {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	limit := queryInt(r, "limit", 100)
	region := r.URL.Query().Get("region")
	product := r.URL.Query().Get("product")

	records := make(model.Dataset, 0, limit)
	for _, rec := range eng.Dataset() {
		if region != "" && rec.Region != region {
			continue
		}
		if product != "" && rec.ProductName != product {
			continue
		}
		records = append(records, rec)
		if len(records) == limit {
			break
		}
	}

	writeJSON(w, map[string]interface{}{
		"run_id":  runID,
		"records": records,
		"count":   len(records),
		"limit":   limit,
	})
}

// GetRunCharts returns render-ready dashboard figures for a run
// @Summary Get dashboard figures
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Chart configs and tables"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Failure 409 {object} map[string]interface{} "Run has no transformed dataset"
// @Router /runs/{id}/charts [get]
func (h *Handler) GetRunCharts(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/charts")
	if !ok {
		return
	}
	eng, ok := h.engine(runID)
	if !ok {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	stats, err := eng.SummaryStats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	writeJSON(w, map[string]interface{}{
		"run_id":       runID,
		"figures":      charts.Build(stats),
		"stages":       charts.StageTable(len(eng.RawDataset()), len(eng.Dataset()), eng.LoadStatus()),
		"column_stats": charts.ColumnStatsTable(pipeline.DescribeColumns(eng.Dataset())),
	})
}

// GetRunStats returns per-column numeric statistics for a run
// @Summary Get column statistics
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Column statistics"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Failure 409 {object} map[string]interface{} "Run has no transformed dataset"
// @Router /runs/{id}/stats [get]
func (h *Handler) GetRunStats(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/stats")
	if !ok {
		return
	}
	eng, ok := h.engine(runID)
	if !ok {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	if eng.Dataset() == nil {
		http.Error(w, "Run has no transformed dataset", http.StatusConflict)
		return
	}
	writeJSON(w, map[string]interface{}{
		"run_id":  runID,
		"columns": pipeline.DescribeColumns(eng.Dataset()),
	})
}

// DownloadRun serves a run's CSV output file
// @Summary Download run output
// @Tags runs
// @Produce application/octet-stream
// @Param id path string true "Run ID"
// @Success 200 {file} file "CSV attachment"
// @Failure 404 {object} map[string]interface{} "File not found"
// @Router /runs/{id}/download [get]
func (h *Handler) DownloadRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/download")
	if !ok {
		return
	}
	run, err := h.store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	if run.OutputFile == "" {
		http.Error(w, "Run has no output file", http.StatusNotFound)
		return
	}
	if _, err := h.outputs.FileSize(run.OutputFile); err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "etl_output.csv"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	http.ServeFile(w, r, run.OutputFile)
}

// RetryRun re-runs a pipeline with its original parameters
// @Summary Retry a pipeline run
// @Description Re-run a finished pipeline with the same source and destination
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run outcome"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id}/retry [post]
func (h *Handler) RetryRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/retry")
	if !ok {
		return
	}
	run, err := h.store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	h.execute(w, runID, run.Source, run.Destination, 0, nil)
}

func (h *Handler) engine(runID string) (*pipeline.Engine, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	eng, ok := h.engines[runID]
	return eng, ok
}

// runIDFromPath extracts the run ID between the collection prefix and the
// given suffix, writing a 400 response when the path is malformed.
func runIDFromPath(w http.ResponseWriter, r *http.Request, suffix string) (string, bool) {
	const prefix = "/api/v1/runs/"
	path := r.URL.Path
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return "", false
	}
	runID := path[len(prefix) : len(path)-len(suffix)]
	if runID == "" || strings.Contains(runID, "/") {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return "", false
	}
	return runID, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	if s := r.URL.Query().Get(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
