package pipeline

import (
	"fmt"
	"sort"

	"etl-dashboard/internal/model"
)

// SummaryStats computes aggregate statistics over the transformed dataset.
// It is a pure read, recomputed on every call, and fails with StateError
// before any transform has completed.
func (e *Engine) SummaryStats() (model.SummaryStats, error) {
	if e.transformed == nil {
		return model.SummaryStats{}, &StateError{Op: "summarize", State: e.state}
	}
	return Summarize(e.transformed), nil
}

// Summarize computes summary statistics for a transformed dataset.
func Summarize(ds model.Dataset) model.SummaryStats {
	stats := model.SummaryStats{
		TotalRecords:      len(ds),
		RevenueByRegion:   make(map[string]float64),
		RevenueByCategory: make(map[string]float64),
		RevenueByQuarter:  make(map[string]float64),
	}
	if len(ds) == 0 {
		return stats
	}

	products := make(map[string]float64)
	customers := make(map[int]struct{})
	daily := make(map[string]float64)
	minDate, maxDate := ds[0].Date, ds[0].Date

	for _, rec := range ds {
		stats.TotalRevenue += rec.Revenue
		stats.RevenueByRegion[rec.Region] += rec.Revenue
		stats.RevenueByCategory[rec.PriceCategory] += rec.Revenue
		stats.RevenueByQuarter[fmt.Sprintf("Q%d", rec.Quarter)] += rec.Revenue
		products[rec.ProductName] += rec.Revenue
		customers[rec.CustomerID] = struct{}{}
		daily[rec.Date.Format(csvDateLayout)] += rec.Revenue

		if rec.Date.Before(minDate) {
			minDate = rec.Date
		}
		if rec.Date.After(maxDate) {
			maxDate = rec.Date
		}
	}

	stats.TotalRevenue = round2(stats.TotalRevenue)
	stats.AvgRevenue = round2(stats.TotalRevenue / float64(len(ds)))
	stats.DateRange = fmt.Sprintf("%s to %s", minDate.Format(csvDateLayout), maxDate.Format(csvDateLayout))
	stats.UniqueProducts = len(products)
	stats.UniqueCustomers = len(customers)
	stats.Regions = len(stats.RevenueByRegion)
	for k, v := range stats.RevenueByRegion {
		stats.RevenueByRegion[k] = round2(v)
	}
	for k, v := range stats.RevenueByCategory {
		stats.RevenueByCategory[k] = round2(v)
	}
	for k, v := range stats.RevenueByQuarter {
		stats.RevenueByQuarter[k] = round2(v)
	}

	stats.DailyRevenue = make([]model.DailyRevenue, 0, len(daily))
	for date, revenue := range daily {
		stats.DailyRevenue = append(stats.DailyRevenue, model.DailyRevenue{Date: date, Revenue: round2(revenue)})
	}
	sort.Slice(stats.DailyRevenue, func(i, j int) bool {
		return stats.DailyRevenue[i].Date < stats.DailyRevenue[j].Date
	})

	stats.TopProducts = topProducts(products, 10)
	return stats
}

// topProducts ranks products by revenue, descending, name ascending on ties.
func topProducts(revenue map[string]float64, limit int) []model.ProductRevenue {
	ranked := make([]model.ProductRevenue, 0, len(revenue))
	for name, total := range revenue {
		ranked = append(ranked, model.ProductRevenue{Product: name, Revenue: round2(total)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].Product < ranked[j].Product
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// DescribeColumns computes count/mean/min/max for every numeric column of a
// dataset, backing the dashboard's column statistics table.
func DescribeColumns(ds model.Dataset) []model.ColumnStats {
	columns := []struct {
		name  string
		value func(model.Record) float64
	}{
		{"product_id", func(r model.Record) float64 { return float64(r.ProductID) }},
		{"quantity", func(r model.Record) float64 { return float64(r.Quantity) }},
		{"unit_price", func(r model.Record) float64 { return r.UnitPrice }},
		{"customer_id", func(r model.Record) float64 { return float64(r.CustomerID) }},
		{"revenue", func(r model.Record) float64 { return r.Revenue }},
		{"month", func(r model.Record) float64 { return float64(r.Month) }},
		{"quarter", func(r model.Record) float64 { return float64(r.Quarter) }},
	}

	out := make([]model.ColumnStats, 0, len(columns))
	for _, col := range columns {
		cs := model.ColumnStats{Column: col.name, Count: len(ds)}
		for i, rec := range ds {
			v := col.value(rec)
			if i == 0 {
				cs.Min, cs.Max = v, v
			}
			if v < cs.Min {
				cs.Min = v
			}
			if v > cs.Max {
				cs.Max = v
			}
			cs.Mean += v
		}
		if len(ds) > 0 {
			cs.Mean = round2(cs.Mean / float64(len(ds)))
		}
		out = append(out, cs)
	}
	return out
}
