package model

// SummaryStats is the aggregate view of a transformed dataset. It is computed
// on demand and never persisted.
type SummaryStats struct {
	TotalRecords    int     `json:"total_records"`
	TotalRevenue    float64 `json:"total_revenue"`
	AvgRevenue      float64 `json:"avg_revenue"`
	DateRange       string  `json:"date_range"`
	UniqueProducts  int     `json:"unique_products"`
	UniqueCustomers int     `json:"unique_customers"`
	Regions         int     `json:"regions"`

	RevenueByRegion   map[string]float64 `json:"revenue_by_region"`
	RevenueByCategory map[string]float64 `json:"revenue_by_category"`
	RevenueByQuarter  map[string]float64 `json:"revenue_by_quarter"`
	DailyRevenue      []DailyRevenue     `json:"daily_revenue"`
	TopProducts       []ProductRevenue   `json:"top_products"`
}

// DailyRevenue is one point of the revenue-over-time series.
type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// ProductRevenue ranks a product by total revenue.
type ProductRevenue struct {
	Product string  `json:"product"`
	Revenue float64 `json:"revenue"`
}

// ColumnStats describes one numeric column of a dataset.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}
