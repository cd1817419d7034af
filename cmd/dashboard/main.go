package main

import (
	"flag"
	"log"

	"etl-dashboard/internal/api"
	"etl-dashboard/internal/api/handler"
	"etl-dashboard/internal/store"
	"etl-dashboard/pkg/router"
	"etl-dashboard/pkg/utils"
)

// @title ETL Dashboard API
// @version 1.0
// @description Sales ETL pipeline with run history, summary statistics and dashboard figures.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "dashboard.db", "run-history sqlite database")
	outputDir := flag.String("out", "outputs", "directory for run output files")
	flag.Parse()

	st, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	h := handler.New(st, utils.NewOutputManager(*outputDir))

	r := router.New()
	api.RegisterRoutes(r, h)
	r.Start(*addr)
}
