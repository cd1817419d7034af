package model

import "time"

// SourceType identifies where extraction pulls data from.
type SourceType string

// Destination identifies where the load stage writes data to.
type Destination string

const (
	// SourceSample generates seeded synthetic sales data in memory.
	SourceSample SourceType = "sample"

	// DestinationMemory keeps the transformed dataset in memory only.
	DestinationMemory Destination = "memory"
	// DestinationCSV writes the transformed dataset to a CSV file.
	DestinationCSV Destination = "csv"
)

// Record is one row of sales data. The first seven fields are produced by
// extraction; the rest are derived during transformation and stay zero-valued
// on a raw record.
type Record struct {
	Date        time.Time `json:"date"`
	ProductID   int       `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	Region      string    `json:"region"`
	CustomerID  int       `json:"customer_id"`

	Revenue       float64 `json:"revenue,omitempty"`
	PriceCategory string  `json:"price_category,omitempty"`
	Month         int     `json:"month,omitempty"`
	Quarter       int     `json:"quarter,omitempty"`
	DayOfWeek     string  `json:"day_of_week,omitempty"`
}

// Dataset is an ordered collection of records sharing one schema.
type Dataset []Record

// LogEntry describes the outcome of one pipeline stage action.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Stage   string    `json:"stage"`
	Level   string    `json:"level"` // "info" or "error"
	Message string    `json:"message"`
	Rows    int       `json:"rows,omitempty"`
}

// LoadStatus records the outcome of the most recent load.
type LoadStatus struct {
	Destination Destination `json:"destination"`
	Records     int         `json:"records_loaded"`
	Timestamp   time.Time   `json:"timestamp"`
	Status      string      `json:"status"`
	Filename    string      `json:"filename,omitempty"`
}

// RunStatus is the result of a full pipeline run. FailedStage is empty when
// the run succeeded.
type RunStatus struct {
	Succeeded   bool   `json:"succeeded"`
	FailedStage string `json:"failed_stage,omitempty"`
}

// RunRecord is the persisted history entry for one pipeline run.
type RunRecord struct {
	ID          string      `json:"id"`
	Source      SourceType  `json:"source"`
	Destination Destination `json:"destination"`
	Status      string      `json:"status"`
	FailedStage string      `json:"failed_stage,omitempty"`
	Records     int         `json:"records"`
	OutputFile  string      `json:"output_file,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
