package seeder

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/prohunt/prohunt/internal/domain/model"
	"github.com/prohunt/prohunt/internal/domain/vocabulary"
)

// Status distribution weights out of statusWeightTotal.
const (
	statusWeightTotal = 10
	weightOpen        = 4 // 0-3
	weightInProgress  = 3 // 4-6
	weightCompleted   = 2 // 7-8
	// remainder is On Hold
)

// Project attribute pools.
var (
	projectAdjectives = []string{
		"Realtime", "Scalable", "Legacy", "Greenfield", "Internal",
		"Customer-facing", "Experimental", "Mission-critical",
	}
	projectNouns = []string{
		"Billing Platform", "Analytics Pipeline", "Mobile App",
		"Recommendation Engine", "Admin Console", "API Gateway",
		"Data Warehouse", "Chat Service", "Fraud Detector",
	}
	complexities  = []string{"Low", "Medium", "High"}
	locations     = []string{"Remote", "On-site", "Hybrid"}
	shifts        = []string{"Day", "Night", "Flexible"}
	compensations = []string{"Price", "Hourly", "Equity"}
)

// randomInt returns a uniform random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func pick(pool []string) string {
	return pool[randomInt(len(pool))]
}

// randomStatus draws a status from a weighted distribution so dashboards
// show a believable mix of buckets.
func randomStatus() string {
	switch n := randomInt(statusWeightTotal); {
	case n < weightOpen:
		return model.StatusOpen
	case n < weightOpen+weightInProgress:
		return model.StatusInProgress
	case n < weightOpen+weightInProgress+weightCompleted:
		return model.StatusCompleted
	default:
		return model.StatusOnHold
	}
}

// randomSkills samples between 1 and max skills from the built-in
// vocabulary, duplicates allowed just like real user input.
func randomSkills(max int) []string {
	pool := vocabulary.Skills()
	count := 1 + randomInt(max)
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, pool[randomInt(len(pool))])
	}
	return out
}

// generateProfileID creates a demo profile id.
func generateProfileID(index int) string {
	return fmt.Sprintf("demo-%03d-%s", index, uuid.NewString()[:8])
}

// generateProject creates a project for the given creator with varied,
// plausible attributes.
func generateProject(createdBy string, index int) model.Project {
	name := fmt.Sprintf("%s %s #%d", pick(projectAdjectives), pick(projectNouns), index+1)
	return model.Project{
		ID:               uuid.NewString(),
		CreatedBy:        createdBy,
		Name:             name,
		Description:      "Demo project seeded for " + createdBy,
		Domain:           pick(vocabulary.Domains()),
		RequiredSkills:   randomSkills(4),
		PreferredSkills:  randomSkills(3),
		Complexity:       pick(complexities),
		Location:         pick(locations),
		Shift:            pick(shifts),
		CompensationType: pick(compensations),
		Status:           randomStatus(),
	}
}
