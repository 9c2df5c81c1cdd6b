package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// Port the HTTP API listens on
		Port string `env:"PORT" envDefault:"5250"`
	}

	// Database configuration
	Database struct {
		// Path to the sqlite database file
		Path string `env:"DB_PATH" envDefault:"database/taipei.db"`
	}

	// Listings configuration
	Listings struct {
		// Number of listings per page
		PageSize int `env:"PAGE_SIZE" envDefault:"20"`

		// Maximum number of affordability suggestions returned
		SuggestionLimit int `env:"SUGGESTION_LIMIT" envDefault:"50"`
	}

	// Ingest configuration
	Ingest struct {
		// Number of CSV rows per batch pushed to the writer
		BatchSize int `env:"INGEST_BATCH_SIZE" envDefault:"500"`

		// Buffered batches held by the ingest queue
		QueueSize int `env:"INGEST_QUEUE_SIZE" envDefault:"16"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"INGEST_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"INGEST_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
