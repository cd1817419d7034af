package charts

import (
	"fmt"
	"sort"

	"etl-dashboard/internal/model"
)

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// priceCategoryOrder fixes the bar order of the category chart.
var priceCategoryOrder = []string{"Low", "Medium", "High"}

// Build produces the dashboard's full figure set from summary statistics.
// Figures with no data are omitted.
func Build(stats model.SummaryStats) []*ChartConfig {
	all := []*ChartConfig{
		RevenueByRegion(stats),
		RevenueByCategory(stats),
		DailyRevenue(stats),
		TopProducts(stats),
		QuarterlyRevenue(stats),
	}
	figures := make([]*ChartConfig, 0, len(all))
	for _, cfg := range all {
		if cfg != nil {
			figures = append(figures, cfg)
		}
	}
	return figures
}

// RevenueByRegion builds the revenue distribution pie.
func RevenueByRegion(stats model.SummaryStats) *ChartConfig {
	points := sortedPoints(stats.RevenueByRegion)
	return newChart("pie", "Revenue Distribution by Region", "", "Revenue", points)
}

// RevenueByCategory builds the revenue-per-price-category bar chart.
func RevenueByCategory(stats model.SummaryStats) *ChartConfig {
	points := make([]ChartPoint, 0, len(priceCategoryOrder))
	for _, cat := range priceCategoryOrder {
		if v, ok := stats.RevenueByCategory[cat]; ok {
			points = append(points, ChartPoint{Label: cat, Value: v})
		}
	}
	return newChart("bar", "Revenue by Price Category", "Price Category", "Revenue", points)
}

// DailyRevenue builds the revenue-over-time line chart.
func DailyRevenue(stats model.SummaryStats) *ChartConfig {
	points := make([]ChartPoint, 0, len(stats.DailyRevenue))
	for _, d := range stats.DailyRevenue {
		points = append(points, ChartPoint{Label: d.Date, Value: d.Revenue})
	}
	return newChart("line", "Daily Revenue Trend", "Date", "Revenue", points)
}

// TopProducts builds the top-10-products bar chart.
func TopProducts(stats model.SummaryStats) *ChartConfig {
	points := make([]ChartPoint, 0, len(stats.TopProducts))
	for _, p := range stats.TopProducts {
		points = append(points, ChartPoint{Label: p.Product, Value: p.Revenue})
	}
	return newChart("bar", "Top 10 Products by Revenue", "Product", "Revenue", points)
}

// QuarterlyRevenue builds the revenue-per-quarter bar chart.
func QuarterlyRevenue(stats model.SummaryStats) *ChartConfig {
	points := sortedPoints(stats.RevenueByQuarter)
	return newChart("bar", "Quarterly Revenue", "Quarter", "Revenue", points)
}

// StageTable builds the pipeline overview table: one row per stage with its
// status and row count.
func StageTable(extracted, transformed int, load *model.LoadStatus) *TableData {
	loadStatus, loadRecords := "Pending", 0
	if load != nil {
		loadStatus = load.Status
		loadRecords = load.Records
	}

	rows := [][]string{
		{"Extract", stageLabel(extracted > 0), fmt.Sprintf("%d", extracted)},
		{"Transform", stageLabel(transformed > 0), fmt.Sprintf("%d", transformed)},
		{"Load", loadStatus, fmt.Sprintf("%d", loadRecords)},
	}

	return &TableData{
		Title: "Pipeline Stages",
		Columns: []Column{
			{Key: "stage", Label: "Stage", Type: "text", Align: "left"},
			{Key: "status", Label: "Status", Type: "text", Align: "center"},
			{Key: "records", Label: "Records", Type: "number", Align: "right"},
		},
		Rows: rows,
	}
}

// ColumnStatsTable renders DescribeColumns output for the data preview tab.
func ColumnStatsTable(cols []model.ColumnStats) *TableData {
	rows := make([][]string, 0, len(cols))
	for _, c := range cols {
		rows = append(rows, []string{
			c.Column,
			fmt.Sprintf("%d", c.Count),
			fmt.Sprintf("%.2f", c.Mean),
			fmt.Sprintf("%.2f", c.Min),
			fmt.Sprintf("%.2f", c.Max),
		})
	}
	return &TableData{
		Title: "Column Statistics",
		Columns: []Column{
			{Key: "column", Label: "Column", Type: "text", Align: "left"},
			{Key: "count", Label: "Count", Type: "number", Align: "right"},
			{Key: "mean", Label: "Mean", Type: "number", Align: "right"},
			{Key: "min", Label: "Min", Type: "number", Align: "right"},
			{Key: "max", Label: "Max", Type: "number", Align: "right"},
		},
		Rows: rows,
	}
}

func stageLabel(done bool) string {
	if done {
		return "Complete"
	}
	return "Pending"
}

func newChart(chartType, title, xAxis, yAxis string, points []ChartPoint) *ChartConfig {
	if len(points) == 0 {
		return nil
	}
	cfg := &ChartConfig{
		ChartType:  chartType,
		Title:      title,
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     []ChartSeries{{Name: title, Data: points}},
		ShowLegend: true,
		ShowGrid:   chartType != "pie",
	}
	cfg.Colors = assignColors(len(points))
	return cfg
}

// sortedPoints converts a grouping map to label-sorted points so chart output
// is stable across runs.
func sortedPoints(groups map[string]float64) []ChartPoint {
	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	points := make([]ChartPoint, 0, len(labels))
	for _, label := range labels {
		points = append(points, ChartPoint{Label: label, Value: groups[label]})
	}
	return points
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
