// cmd/seeder/main.go
package main

import (
	"os"

	"github.com/unclebandit/campaign-builder/internal/config"
	"github.com/unclebandit/campaign-builder/internal/db"
)

func main() {
	cfg := config.Load()
	logger := cfg.NewLogger("campaign-seeder")

	if cfg.DatabaseURL == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer conn.Close()

	seedFiles := []string{
		"seed/schema.sql",
		"seed/contacts.sql",
		"seed/segments.sql",
	}

	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Fatal().Err(err).Str("file", file).Msg("failed to read seed file")
		}

		if _, err := conn.Exec(string(content)); err != nil {
			logger.Fatal().Err(err).Str("file", file).Msg("failed to execute seed file")
		}
		logger.Info().Str("file", file).Msg("seeded")
	}

	logger.Info().Msg("database seeding completed successfully!")
}
