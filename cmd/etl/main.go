package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"etl-dashboard/internal/model"
	"etl-dashboard/internal/pipeline"
)

// One-shot pipeline runner: executes a full run and prints the outcome,
// summary statistics and execution log.
func main() {
	source := flag.String("source", string(model.SourceSample), "source type")
	dest := flag.String("dest", string(model.DestinationMemory), "load destination (memory or csv)")
	out := flag.String("o", "", "CSV output path (csv destination only)")
	rows := flag.Int("rows", pipeline.DefaultRows, "number of sample rows")
	seed := flag.Int64("seed", pipeline.DefaultSeed, "random seed for sample data")
	flag.Parse()

	src, err := pipeline.ParseSourceType(*source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	destination, err := pipeline.ParseDestination(*dest)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	opts := []pipeline.Option{
		pipeline.WithRows(*rows),
		pipeline.WithSeed(*seed),
	}
	if *out != "" {
		opts = append(opts, pipeline.WithOutputPath(*out))
	}

	eng := pipeline.New(opts...)
	status := eng.RunFullPipeline(src, destination)

	for _, entry := range eng.Logs() {
		fmt.Printf("[%s] %-9s %-5s %s\n",
			entry.Time.Format("2006-01-02 15:04:05"), entry.Stage, entry.Level, entry.Message)
	}

	if !status.Succeeded {
		fmt.Fprintf(os.Stderr, "pipeline failed at stage %q\n", status.FailedStage)
		os.Exit(1)
	}

	stats, err := eng.SummaryStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "summary unavailable: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nSummary")
	fmt.Fprintf(w, "total records\t%d\n", stats.TotalRecords)
	fmt.Fprintf(w, "total revenue\t%.2f\n", stats.TotalRevenue)
	fmt.Fprintf(w, "avg revenue\t%.2f\n", stats.AvgRevenue)
	fmt.Fprintf(w, "date range\t%s\n", stats.DateRange)
	fmt.Fprintf(w, "unique products\t%d\n", stats.UniqueProducts)
	fmt.Fprintf(w, "unique customers\t%d\n", stats.UniqueCustomers)
	fmt.Fprintf(w, "regions\t%d\n", stats.Regions)
	for region, revenue := range stats.RevenueByRegion {
		fmt.Fprintf(w, "revenue %s\t%.2f\n", region, revenue)
	}
	w.Flush()
}
