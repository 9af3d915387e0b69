package seeder

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	DatabasePath    string        // Path to the sqlite database to seed
	BaseURL         string        // Base URL of a running service for verification; empty skips it
	NumUsers        int           // Number of demo profiles to create
	ProjectsPerUser int           // Number of projects per profile
	Workers         int           // Number of concurrent workers
	Timeout         time.Duration // HTTP request timeout for verification
	LogFile         string        // Log file for seeding output
	Verbose         bool          // Enable verbose logging
}

// Stats tracks what a seeding run produced.
type Stats struct {
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
	ProfilesCreated int
	ProjectsCreated int
	UsersVerified   int
	VerifyFailures  int
}
