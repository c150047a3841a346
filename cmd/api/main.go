package main

import (
	"context"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"slotcorr/adapters/excel"
	"slotcorr/adapters/postgres"
	"slotcorr/app"
	"slotcorr/ports"
	"slotcorr/ui"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	var runs ports.RunRepository
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			log.Fatalf("[api] failed to connect to postgres: %v", err)
		}
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("[api] failed to ensure schema: %v", err)
		}
		runs = postgres.NewRunRepository(db)
		log.Printf("[api] run persistence enabled")
	} else {
		log.Printf("[api] DATABASE_URL not set; runs will not be persisted")
	}

	service := app.NewAnalysisService(excel.NewSeriesReader(), runs)
	server := ui.NewServer(service)
	if err := server.Start(ui.Config{Port: port}); err != nil {
		log.Fatalf("[api] server failed: %v", err)
	}
}
