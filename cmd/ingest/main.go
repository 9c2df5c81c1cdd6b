package main

import (
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taipeihouse/server/config"
	"taipeihouse/server/internal/database"
	"taipeihouse/server/internal/ingest"
	"taipeihouse/server/internal/queue"
)

// One-shot import of the historical transactions CSV into a fresh catalog
// database. Not a runtime concern: run it once before starting the server.
func main() {
	csvPath := flag.String("csv", "taipei_house_prices.csv", "path to the transactions CSV")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Create the schema through the same migrations the server runs.
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}
	db.Close()

	file, err := os.Open(*csvPath)
	if err != nil {
		logger.WithError(err).Fatalf("Failed to open CSV at %s", *csvPath)
	}
	defer file.Close()

	logger.Infof("Parsing CSV at: %s", *csvPath)
	rows, err := ingest.ReadSourceRows(file)
	if err != nil {
		logger.WithError(err).Fatal("Failed to parse CSV")
	}
	logger.Infof("Parsed %d rows", len(rows))

	gormDB, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{})
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database for writing")
	}

	rowQueue := queue.NewRowQueue(cfg.Ingest.QueueSize, logger)
	writer := ingest.NewBatchWriter(gormDB, rowQueue, cfg, logger)
	writer.Start()
	rowQueue.Start()

	for start := 0; start < len(rows); start += cfg.Ingest.BatchSize {
		end := start + cfg.Ingest.BatchSize
		if end > len(rows) {
			end = len(rows)
		}
		// The queue bounds how much parsed data sits in flight; back off
		// while the writer catches up.
		for {
			err := rowQueue.Push(rows[start:end])
			if err == nil {
				break
			}
			if err != queue.ErrQueueFull {
				logger.WithError(err).Fatal("Failed to enqueue batch")
			}
			time.Sleep(50 * time.Millisecond)
		}
	}

	// Wait for the writer to drain the queue.
	for writer.Imported() < int64(len(rows)) {
		if err := writer.Err(); err != nil {
			logger.WithError(err).Fatal("Import failed")
		}
		time.Sleep(100 * time.Millisecond)
	}
	rowQueue.Close()

	if err := writer.Finalize(); err != nil {
		logger.WithError(err).Fatal("Failed to finalize import")
	}
	logger.Infof("Import complete: %d listings", writer.Imported())
}
