// Package analytics derives dashboard summary statistics from a snapshot of
// project records.
package analytics

import (
	"sort"

	"github.com/prohunt/prohunt/internal/domain/model"
)

// Stats is the derived dashboard summary. SkillsUsed is the deduplicated
// set of every skill appearing in any record's required skills, sorted for
// stable JSON output; membership is case-sensitive with no normalization.
type Stats struct {
	Total      int      `json:"total"`
	Completed  int      `json:"completed"`
	Active     int      `json:"active"`
	SkillsUsed []string `json:"skills_used"`
}

// Aggregate computes Stats over a freshly fetched snapshot. A nil snapshot
// is treated as empty. Completed counts exact matches on "Completed";
// Active counts "In Progress" and "Open"; "On Hold" and unrecognized
// statuses land in neither bucket. Pure function; malformed per-record
// fields normalize to empty rather than fail.
func Aggregate(records []model.Project) Stats {
	stats := Stats{
		Total:      len(records),
		SkillsUsed: []string{},
	}

	seen := make(map[string]struct{})
	for _, r := range records {
		switch r.Status {
		case model.StatusCompleted:
			stats.Completed++
		case model.StatusInProgress, model.StatusOpen:
			stats.Active++
		}
		for _, skill := range r.RequiredSkills {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			stats.SkillsUsed = append(stats.SkillsUsed, skill)
		}
	}

	sort.Strings(stats.SkillsUsed)
	return stats
}
