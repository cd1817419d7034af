package pipeline

import (
	"fmt"
	"time"

	"etl-dashboard/internal/model"
)

// Stage names the pipeline's units of work.
type Stage string

const (
	StageExtract   Stage = "extract"
	StageTransform Stage = "transform"
	StageLoad      Stage = "load"
)

// State tracks how far the engine has progressed. Stages may only be called
// in forward order.
type State string

const (
	StateIdle        State = "idle"
	StateExtracted   State = "extracted"
	StateTransformed State = "transformed"
	StateLoaded      State = "loaded"
)

// Default extraction parameters. The fixed seed keeps sample runs
// reproducible across restarts.
const (
	DefaultSeed = 42
	DefaultRows = 100
)

// Engine owns one pipeline run: its datasets, state and log buffer. Engines
// are not safe for concurrent use; overlapping runs get independent
// instances.
type Engine struct {
	seed       int64
	rows       int
	now        func() time.Time
	outputPath string

	raw         model.Dataset
	transformed model.Dataset
	loadStatus  *model.LoadStatus
	logs        []model.LogEntry
	state       State
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed overrides the random seed for sample extraction.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithRows overrides the number of sample rows extracted.
func WithRows(rows int) Option {
	return func(e *Engine) {
		if rows > 0 {
			e.rows = rows
		}
	}
}

// WithClock overrides the engine clock. Sample dates end at the clock's
// "now", so tests pin this to get fully deterministic datasets.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithOutputPath sets the file written by the CSV destination. Without it,
// load falls back to a timestamped etl_output_*.csv in the working directory.
func WithOutputPath(path string) Option {
	return func(e *Engine) { e.outputPath = path }
}

// New creates an idle engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		seed:  DefaultSeed,
		rows:  DefaultRows,
		now:   time.Now,
		state: StateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the engine's current pipeline state.
func (e *Engine) State() State { return e.state }

// RawDataset returns the extracted dataset, nil before extract.
func (e *Engine) RawDataset() model.Dataset { return e.raw }

// Dataset returns the transformed dataset, nil before transform.
func (e *Engine) Dataset() model.Dataset { return e.transformed }

// LoadStatus returns the outcome of the last load, nil before load.
func (e *Engine) LoadStatus() *model.LoadStatus { return e.loadStatus }

// Logs returns the entries appended by stage calls since the run started.
func (e *Engine) Logs() []model.LogEntry { return e.logs }

// RunFullPipeline executes extract, transform and load in order. It stops at
// the first failing stage and reports it; errors never escape the call
// boundary.
func (e *Engine) RunFullPipeline(source model.SourceType, dest model.Destination) model.RunStatus {
	e.reset()
	e.logf(StageExtract, "info", 0, "starting full pipeline: source=%s destination=%s", source, dest)

	if err := e.Extract(source); err != nil {
		return model.RunStatus{FailedStage: string(StageExtract)}
	}
	if err := e.Transform(); err != nil {
		return model.RunStatus{FailedStage: string(StageTransform)}
	}
	if err := e.Load(dest); err != nil {
		return model.RunStatus{FailedStage: string(StageLoad)}
	}

	e.logf(StageLoad, "info", len(e.transformed), "full pipeline completed successfully")
	return model.RunStatus{Succeeded: true}
}

// reset clears all run state so the engine behaves like a fresh instance.
// The log buffer is cleared at the start of each run.
func (e *Engine) reset() {
	e.raw = nil
	e.transformed = nil
	e.loadStatus = nil
	e.logs = nil
	e.state = StateIdle
}

func (e *Engine) logf(stage Stage, level string, rows int, format string, args ...interface{}) {
	e.logs = append(e.logs, model.LogEntry{
		Time:    e.now(),
		Stage:   string(stage),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Rows:    rows,
	})
}
