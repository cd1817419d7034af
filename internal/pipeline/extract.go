package pipeline

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"etl-dashboard/internal/model"
)

var sampleRegions = []string{"North", "South", "East", "West"}

// Extract produces a raw dataset from the given source. Only the sample
// source is implemented; anything else fails with UnsupportedSourceError and
// leaves the engine untouched. Calling Extract on a used engine starts a new
// run.
func (e *Engine) Extract(source model.SourceType) error {
	switch source {
	case model.SourceSample:
	default:
		err := &UnsupportedSourceError{Source: source}
		e.logf(StageExtract, "error", 0, "%v", err)
		return err
	}

	if e.state != StateIdle {
		e.reset()
	}
	e.logf(StageExtract, "info", 0, "starting extraction from %s", source)

	e.raw = generateSampleSales(e.seed, e.rows, e.now())
	e.state = StateExtracted
	e.logf(StageExtract, "info", len(e.raw), "extracted %d records successfully", len(e.raw))
	return nil
}

// generateSampleSales builds rows consecutive days of synthetic sales ending
// at end. The value stream depends only on seed and rows, so a fixed clock
// gives byte-identical datasets across runs.
func generateSampleSales(seed int64, rows int, end time.Time) model.Dataset {
	rng := rand.New(rand.NewSource(seed))
	end = midnightUTC(end)

	ds := make(model.Dataset, 0, rows)
	for i := 0; i < rows; i++ {
		ds = append(ds, model.Record{
			Date:        end.AddDate(0, 0, -(rows - 1 - i)),
			ProductID:   1000 + rng.Intn(100),
			ProductName: fmt.Sprintf("Product_%d", i%10),
			Quantity:    1 + rng.Intn(49),
			UnitPrice:   round2(10 + rng.Float64()*490),
			Region:      sampleRegions[rng.Intn(len(sampleRegions))],
			CustomerID:  1 + rng.Intn(50),
		})
	}
	return ds
}

// midnightUTC truncates a timestamp to its UTC calendar day. Dates must be
// exact map-key comparable for dedup and CSV round-trips.
func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
