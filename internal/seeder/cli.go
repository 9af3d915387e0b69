package seeder

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/prohunt/prohunt/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the seeding tool.
func ShowHelp() {
	os.Stdout.WriteString(`Prohunt Seed Tool
=================

Populates a Prohunt database with demo profiles and projects, and
optionally verifies dashboard aggregation against a running service.

Usage:
  go run cmd/seed/main.go [options]

Options:
  -db string
        Path to the sqlite database (default "prohunt.db")
  -url string
        Base URL of a running service; when set, each seeded user's
        dashboard is fetched and checked against the expected aggregates
  -users int
        Number of demo profiles to create (default 25)
  -projects int
        Number of projects per profile (default 8)
  -workers int
        Number of concurrent workers (default CPU cores)
  -timeout duration
        HTTP request timeout for verification (default 30s)
  -log string
        Log file for seeding output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed the default database
  go run cmd/seed/main.go

  # Seed a custom database with more data
  go run cmd/seed/main.go -db demo.db -users 100 -projects 20

  # Seed and verify against a running service
  go run cmd/seed/main.go -db prohunt.db -url http://localhost:9080
`)
}
