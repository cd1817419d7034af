package pipeline_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"etl-dashboard/internal/model"
	"etl-dashboard/internal/pipeline"
)

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestEngine(opts ...pipeline.Option) *pipeline.Engine {
	return pipeline.New(append([]pipeline.Option{pipeline.WithClock(fixedClock)}, opts...)...)
}

// =============================================================================
// Extract
// =============================================================================

func TestExtract_Sample(t *testing.T) {
	eng := newTestEngine()
	require.NoError(t, eng.Extract(model.SourceSample))
	require.Equal(t, pipeline.StateExtracted, eng.State())

	ds := eng.RawDataset()
	require.Len(t, ds, pipeline.DefaultRows)

	regions := map[string]bool{"North": true, "South": true, "East": true, "West": true}
	for i, rec := range ds {
		require.False(t, rec.Date.IsZero())
		require.GreaterOrEqual(t, rec.ProductID, 1000)
		require.Less(t, rec.ProductID, 1100)
		require.NotEmpty(t, rec.ProductName)
		require.GreaterOrEqual(t, rec.Quantity, 1)
		require.Less(t, rec.Quantity, 50)
		require.GreaterOrEqual(t, rec.UnitPrice, 10.0)
		require.Less(t, rec.UnitPrice, 500.0)
		require.True(t, regions[rec.Region], "unknown region %q", rec.Region)
		require.GreaterOrEqual(t, rec.CustomerID, 1)
		require.LessOrEqual(t, rec.CustomerID, 50)

		// Derived fields stay empty on raw records.
		require.Zero(t, rec.Revenue)
		require.Empty(t, rec.PriceCategory)

		// Dates are consecutive days ending at the engine clock's day.
		want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(pipeline.DefaultRows - 1 - i))
		require.Equal(t, want, rec.Date)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	a := newTestEngine()
	b := newTestEngine()
	require.NoError(t, a.Extract(model.SourceSample))
	require.NoError(t, b.Extract(model.SourceSample))
	require.Equal(t, a.RawDataset(), b.RawDataset())

	c := newTestEngine(pipeline.WithSeed(7))
	require.NoError(t, c.Extract(model.SourceSample))
	require.NotEqual(t, a.RawDataset(), c.RawDataset())
}

func TestExtract_WithRows(t *testing.T) {
	eng := newTestEngine(pipeline.WithRows(25))
	require.NoError(t, eng.Extract(model.SourceSample))
	require.Len(t, eng.RawDataset(), 25)
}

func TestExtract_UnsupportedSource(t *testing.T) {
	eng := newTestEngine()
	err := eng.Extract(model.SourceType("database"))

	var serr *pipeline.UnsupportedSourceError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, model.SourceType("database"), serr.Source)

	require.Nil(t, eng.RawDataset())
	require.Equal(t, pipeline.StateIdle, eng.State())
}

// =============================================================================
// Transform
// =============================================================================

func TestTransform_BeforeExtract(t *testing.T) {
	eng := newTestEngine()
	err := eng.Transform()

	var serr *pipeline.StateError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, pipeline.StateIdle, eng.State())
	require.Nil(t, eng.Dataset())
}

func TestTransform_DerivedFields(t *testing.T) {
	date := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC) // a Wednesday

	cases := []struct {
		name         string
		price        float64
		quantity     int
		wantRevenue  float64
		wantCategory string
	}{
		{"low", 50.00, 3, 150.00, "Low"},
		{"low boundary", 100.00, 1, 100.00, "Low"},
		{"medium", 150.50, 2, 301.00, "Medium"},
		{"medium boundary", 300.00, 1, 300.00, "Medium"},
		{"high", 450.25, 4, 1801.00, "High"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := model.Dataset{{
				Date: date, ProductID: 1001, ProductName: "Product_1",
				Quantity: tc.quantity, UnitPrice: tc.price,
				Region: "North", CustomerID: 7,
			}}
			out := pipeline.TransformDataset(in)
			require.Len(t, out, 1)

			rec := out[0]
			require.Equal(t, tc.wantRevenue, rec.Revenue)
			require.Equal(t, tc.wantCategory, rec.PriceCategory)
			require.Equal(t, 2, rec.Month)
			require.Equal(t, 1, rec.Quarter)
			require.Equal(t, "Wednesday", rec.DayOfWeek)
		})
	}
}

func TestTransformDataset_Cleaning(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	good := model.Record{
		Date: date, ProductID: 1002, ProductName: "Product_2",
		Quantity: 5, UnitPrice: 20, Region: "East", CustomerID: 3,
	}

	in := model.Dataset{
		good,
		good, // full-row duplicate
		{ProductName: "Product_9", Quantity: 1, UnitPrice: 30},       // zero date: dropped
		{Date: date, Quantity: 1, UnitPrice: 30, Region: "West"},     // no product name: dropped
		{Date: date, ProductID: 1003, ProductName: "Product_3", Quantity: 2, UnitPrice: math.NaN(), Region: "South", CustomerID: 4},
	}

	out := pipeline.TransformDataset(in)
	require.Len(t, out, 2)
	require.Equal(t, "Product_2", out[0].ProductName)

	// NaN price zero-filled, which zeroes revenue and leaves no category.
	require.Equal(t, 0.0, out[1].UnitPrice)
	require.Equal(t, 0.0, out[1].Revenue)
	require.Empty(t, out[1].PriceCategory)
}

func TestTransformDataset_Idempotent(t *testing.T) {
	eng := newTestEngine()
	require.NoError(t, eng.Extract(model.SourceSample))

	once := pipeline.TransformDataset(eng.RawDataset())
	twice := pipeline.TransformDataset(once)
	require.Equal(t, once, twice)
}

func TestTransform_DoesNotMutateRaw(t *testing.T) {
	eng := newTestEngine()
	require.NoError(t, eng.Extract(model.SourceSample))

	before := append(model.Dataset(nil), eng.RawDataset()...)
	require.NoError(t, eng.Transform())
	require.Equal(t, before, eng.RawDataset())
	require.Equal(t, pipeline.StateTransformed, eng.State())
	require.Len(t, eng.Dataset(), len(before))
}

// =============================================================================
// Load
// =============================================================================

func TestLoad_BeforeTransform(t *testing.T) {
	eng := newTestEngine()
	require.NoError(t, eng.Extract(model.SourceSample))

	var serr *pipeline.StateError
	require.ErrorAs(t, eng.Load(model.DestinationMemory), &serr)
	require.Equal(t, pipeline.StateExtracted, eng.State())
}

func TestLoad_Memory(t *testing.T) {
	eng := newTestEngine()
	require.NoError(t, eng.Extract(model.SourceSample))
	require.NoError(t, eng.Transform())
	require.NoError(t, eng.Load(model.DestinationMemory))

	require.Equal(t, pipeline.StateLoaded, eng.State())
	ls := eng.LoadStatus()
	require.NotNil(t, ls)
	require.Equal(t, model.DestinationMemory, ls.Destination)
	require.Equal(t, len(eng.Dataset()), ls.Records)
	require.Equal(t, "SUCCESS", ls.Status)
	require.Empty(t, ls.Filename)
}

func TestLoad_CSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "etl_output.csv")
	eng := newTestEngine(pipeline.WithOutputPath(path))
	require.NoError(t, eng.Extract(model.SourceSample))
	require.NoError(t, eng.Transform())
	require.NoError(t, eng.Load(model.DestinationCSV))

	require.Equal(t, path, eng.LoadStatus().Filename)

	got, err := pipeline.ReadCSV(path)
	require.NoError(t, err)
	require.Equal(t, eng.Dataset(), got)
}

func TestLoad_CSVFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// The target directory path is an existing regular file, so the write
	// must fail.
	path := filepath.Join(blocker, "etl_output.csv")
	eng := newTestEngine(pipeline.WithOutputPath(path))
	require.NoError(t, eng.Extract(model.SourceSample))
	require.NoError(t, eng.Transform())

	before := eng.Dataset()
	err := eng.Load(model.DestinationCSV)

	var lerr *pipeline.LoadError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, model.DestinationCSV, lerr.Destination)
	require.Equal(t, path, lerr.Path)
	require.Error(t, errors.Unwrap(lerr))

	// Load failure never loses the dataset.
	require.Equal(t, before, eng.Dataset())
	require.Equal(t, pipeline.StateTransformed, eng.State())
	require.Nil(t, eng.LoadStatus())
}

func TestLoad_UnsupportedDestination(t *testing.T) {
	eng := newTestEngine()
	require.NoError(t, eng.Extract(model.SourceSample))
	require.NoError(t, eng.Transform())

	var derr *pipeline.UnsupportedDestinationError
	require.ErrorAs(t, eng.Load(model.Destination("s3")), &derr)
	require.Equal(t, model.Destination("s3"), derr.Destination)
	require.NotNil(t, eng.Dataset())
}

// =============================================================================
// Full pipeline
// =============================================================================

func TestRunFullPipeline_Success(t *testing.T) {
	eng := newTestEngine()
	status := eng.RunFullPipeline(model.SourceSample, model.DestinationMemory)

	require.True(t, status.Succeeded)
	require.Empty(t, status.FailedStage)
	require.Equal(t, pipeline.StateLoaded, eng.State())
	require.NotEmpty(t, eng.Logs())
}

func TestRunFullPipeline_UnknownSource(t *testing.T) {
	eng := newTestEngine()
	status := eng.RunFullPipeline(model.SourceType("unknown"), model.DestinationMemory)

	require.False(t, status.Succeeded)
	require.Equal(t, "extract", status.FailedStage)
	require.Nil(t, eng.RawDataset())
	require.Nil(t, eng.Dataset())
}

func TestRunFullPipeline_UnknownDestination(t *testing.T) {
	eng := newTestEngine()
	status := eng.RunFullPipeline(model.SourceSample, model.Destination("postgres"))

	require.False(t, status.Succeeded)
	require.Equal(t, "load", status.FailedStage)
	require.NotNil(t, eng.Dataset())
	require.Nil(t, eng.LoadStatus())
}

func TestRunFullPipeline_ClearsLogs(t *testing.T) {
	eng := newTestEngine()
	eng.RunFullPipeline(model.SourceSample, model.DestinationMemory)
	first := len(eng.Logs())
	require.NotZero(t, first)

	eng.RunFullPipeline(model.SourceSample, model.DestinationMemory)
	require.Len(t, eng.Logs(), first)
}

func TestRunFullPipeline_ErrorLogged(t *testing.T) {
	eng := newTestEngine()
	eng.RunFullPipeline(model.SourceType("unknown"), model.DestinationMemory)

	var sawError bool
	for _, entry := range eng.Logs() {
		if entry.Level == "error" && entry.Stage == "extract" {
			sawError = true
		}
	}
	require.True(t, sawError, "expected an error log entry for the extract stage")
}

// =============================================================================
// Parse helpers
// =============================================================================

func TestParseSourceType(t *testing.T) {
	src, err := pipeline.ParseSourceType("sample")
	require.NoError(t, err)
	require.Equal(t, model.SourceSample, src)

	_, err = pipeline.ParseSourceType("api")
	var serr *pipeline.UnsupportedSourceError
	require.ErrorAs(t, err, &serr)
}

func TestParseDestination(t *testing.T) {
	for _, valid := range []string{"memory", "csv"} {
		dest, err := pipeline.ParseDestination(valid)
		require.NoError(t, err)
		require.Equal(t, model.Destination(valid), dest)
	}

	_, err := pipeline.ParseDestination("kafka")
	var derr *pipeline.UnsupportedDestinationError
	require.ErrorAs(t, err, &derr)
}
