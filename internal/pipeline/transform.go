package pipeline

import (
	"math"

	"etl-dashboard/internal/model"
)

// Price category buckets, right-inclusive: Low (0,100], Medium (100,300],
// High (300,1000].
const (
	priceLowMax    = 100
	priceMediumMax = 300
	priceHighMax   = 1000
)

// Transform derives calculated columns and cleans the raw dataset. It fails
// with StateError when no extract has run, leaving the engine unchanged.
func (e *Engine) Transform() error {
	if e.raw == nil {
		err := &StateError{Op: "transform", State: e.state}
		e.logf(StageTransform, "error", 0, "no data to transform: run extract first")
		return err
	}

	e.logf(StageTransform, "info", 0, "starting transformation")

	before := len(e.raw)
	out := TransformDataset(e.raw)
	if removed := before - len(out); removed > 0 {
		e.logf(StageTransform, "info", len(out), "removed %d duplicate or incomplete records", removed)
	}

	e.transformed = out
	e.state = StateTransformed
	e.logf(StageTransform, "info", len(out), "transformation complete: %d records transformed", len(out))
	return nil
}

// TransformDataset returns a cleaned copy of in with all derived columns
// populated. It never mutates its input, is deterministic, and is idempotent:
// applying it to its own output changes nothing.
func TransformDataset(in model.Dataset) model.Dataset {
	out := make(model.Dataset, 0, len(in))
	seen := make(map[model.Record]struct{}, len(in))

	for _, rec := range in {
		// Rows missing a primary key field are dropped; missing numerics
		// are zero-filled.
		if rec.Date.IsZero() || rec.ProductName == "" {
			continue
		}
		if math.IsNaN(rec.UnitPrice) {
			rec.UnitPrice = 0
		}

		rec = derive(rec)
		if _, dup := seen[rec]; dup {
			continue
		}
		seen[rec] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// derive recomputes every calculated column from the base fields, overwriting
// any prior values so repeated transforms converge.
func derive(rec model.Record) model.Record {
	rec.Revenue = round2(float64(rec.Quantity) * rec.UnitPrice)
	rec.PriceCategory = priceCategory(rec.UnitPrice)
	rec.Month = int(rec.Date.Month())
	rec.Quarter = (int(rec.Date.Month())-1)/3 + 1
	rec.DayOfWeek = rec.Date.Weekday().String()
	return rec
}

func priceCategory(price float64) string {
	switch {
	case price <= 0 || price > priceHighMax:
		return ""
	case price <= priceLowMax:
		return "Low"
	case price <= priceMediumMax:
		return "Medium"
	default:
		return "High"
	}
}
