package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"etl-dashboard/internal/model"
)

// csvHeader is the column order of CSV output, base fields first, derived
// fields after.
var csvHeader = []string{
	"date", "product_id", "product_name", "quantity", "unit_price",
	"region", "customer_id", "revenue", "price_category", "month",
	"quarter", "day_of_week",
}

const csvDateLayout = "2006-01-02"

// Load writes the transformed dataset to the given destination. It fails with
// StateError before a transform, UnsupportedDestinationError for an unknown
// destination, and LoadError for I/O failures. The dataset is preserved
// regardless of the outcome.
func (e *Engine) Load(dest model.Destination) error {
	if e.transformed == nil {
		err := &StateError{Op: "load", State: e.state}
		e.logf(StageLoad, "error", 0, "no transformed data to load: run transform first")
		return err
	}

	e.logf(StageLoad, "info", 0, "starting load to %s", dest)

	switch dest {
	case model.DestinationMemory:
		e.loadStatus = &model.LoadStatus{
			Destination: dest,
			Records:     len(e.transformed),
			Timestamp:   e.now(),
			Status:      "SUCCESS",
		}
		e.state = StateLoaded
		e.logf(StageLoad, "info", len(e.transformed), "successfully loaded %d records to memory", len(e.transformed))
		return nil

	case model.DestinationCSV:
		path := e.outputPath
		if path == "" {
			path = fmt.Sprintf("etl_output_%s.csv", e.now().Format("20060102_150405"))
		}
		if err := WriteCSV(path, e.transformed); err != nil {
			lerr := &LoadError{Destination: dest, Path: path, Err: err}
			e.logf(StageLoad, "error", 0, "error loading to CSV: %v", err)
			return lerr
		}
		e.loadStatus = &model.LoadStatus{
			Destination: dest,
			Records:     len(e.transformed),
			Timestamp:   e.now(),
			Status:      "SUCCESS",
			Filename:    path,
		}
		e.state = StateLoaded
		e.logf(StageLoad, "info", len(e.transformed), "successfully loaded %d records to %s", len(e.transformed), path)
		return nil

	default:
		err := &UnsupportedDestinationError{Destination: dest}
		e.logf(StageLoad, "error", 0, "%v", err)
		return err
	}
}

// WriteCSV writes a dataset as UTF-8 comma-separated values with a header
// row. The file handle is scoped to this call.
func WriteCSV(path string, ds model.Dataset) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, rec := range ds {
		if err := w.Write(csvRow(rec)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func csvRow(rec model.Record) []string {
	return []string{
		rec.Date.Format(csvDateLayout),
		strconv.Itoa(rec.ProductID),
		rec.ProductName,
		strconv.Itoa(rec.Quantity),
		strconv.FormatFloat(rec.UnitPrice, 'f', 2, 64),
		rec.Region,
		strconv.Itoa(rec.CustomerID),
		strconv.FormatFloat(rec.Revenue, 'f', 2, 64),
		rec.PriceCategory,
		strconv.Itoa(rec.Month),
		strconv.Itoa(rec.Quarter),
		rec.DayOfWeek,
	}
}

// ReadCSV reads a file written by WriteCSV back into a dataset.
func ReadCSV(path string) (model.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("unexpected CSV header: got %d columns, want %d", len(header), len(csvHeader))
	}

	var ds model.Dataset
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}
		rec, err := parseCSVRow(row)
		if err != nil {
			return nil, err
		}
		ds = append(ds, rec)
	}
	return ds, nil
}

func parseCSVRow(row []string) (model.Record, error) {
	var rec model.Record
	date, err := time.ParseInLocation(csvDateLayout, row[0], time.UTC)
	if err != nil {
		return rec, fmt.Errorf("bad date %q: %w", row[0], err)
	}
	rec.Date = date
	if rec.ProductID, err = strconv.Atoi(row[1]); err != nil {
		return rec, fmt.Errorf("bad product_id %q: %w", row[1], err)
	}
	rec.ProductName = row[2]
	if rec.Quantity, err = strconv.Atoi(row[3]); err != nil {
		return rec, fmt.Errorf("bad quantity %q: %w", row[3], err)
	}
	if rec.UnitPrice, err = strconv.ParseFloat(row[4], 64); err != nil {
		return rec, fmt.Errorf("bad unit_price %q: %w", row[4], err)
	}
	rec.Region = row[5]
	if rec.CustomerID, err = strconv.Atoi(row[6]); err != nil {
		return rec, fmt.Errorf("bad customer_id %q: %w", row[6], err)
	}
	if rec.Revenue, err = strconv.ParseFloat(row[7], 64); err != nil {
		return rec, fmt.Errorf("bad revenue %q: %w", row[7], err)
	}
	rec.PriceCategory = row[8]
	if rec.Month, err = strconv.Atoi(row[9]); err != nil {
		return rec, fmt.Errorf("bad month %q: %w", row[9], err)
	}
	if rec.Quarter, err = strconv.Atoi(row[10]); err != nil {
		return rec, fmt.Errorf("bad quarter %q: %w", row[10], err)
	}
	rec.DayOfWeek = row[11]
	return rec, nil
}
