// Package charts turns summary statistics into render-ready chart and table
// payloads for the dashboard frontend.
package charts

// ChartConfig defines how the frontend should render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"` // "bar", "line", "pie"
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries is one data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is a single labeled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TableData defines how the frontend should render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text" or "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary carries totals rendered under a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
