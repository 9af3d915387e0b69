package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/prohunt/prohunt/internal/seeder"
)

// Default configuration constants.
const (
	defaultNumUsers        = 25
	defaultProjectsPerUser = 8
	defaultTimeout         = 30 * time.Second
	defaultRunTimeout      = 10 * time.Minute
)

func main() {
	var (
		dbPath          = flag.String("db", "prohunt.db", "Path to the sqlite database")
		baseURL         = flag.String("url", "", "Base URL of a running service for dashboard verification")
		numUsers        = flag.Int("users", defaultNumUsers, "Number of demo profiles to create")
		projectsPerUser = flag.Int("projects", defaultProjectsPerUser, "Number of projects per profile")
		workers         = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		timeout         = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile         = flag.String("log", "", "Log file for seeding output (default: seed_log_TIMESTAMP.log)")
		verbose         = flag.Bool("verbose", false, "Enable verbose logging")
		help            = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seeder.ShowHelp()
		return
	}

	if err := seeder.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &seeder.Config{
		DatabasePath:    *dbPath,
		BaseURL:         *baseURL,
		NumUsers:        *numUsers,
		ProjectsPerUser: *projectsPerUser,
		Workers:         *workers,
		Timeout:         *timeout,
		LogFile:         *logFile,
		Verbose:         *verbose,
	}

	if err := seeder.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		return
	}
}
