// Package model contains domain models passed between layers.
package model

import "time"

// Project statuses as stored. The literal strings matter: dashboard
// aggregation matches on them exactly.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusOnHold     = "On Hold"
)

// ValidStatuses lists the statuses accepted on create/update. Unrecognized
// statuses are still tolerated on read; they simply count toward neither the
// completed nor the active dashboard bucket.
var ValidStatuses = map[string]struct{}{
	StatusOpen:       {},
	StatusInProgress: {},
	StatusCompleted:  {},
	StatusOnHold:     {},
}

// Defaults applied to new projects when the client omits a field.
const (
	DefaultComplexity   = "Medium"
	DefaultLocation     = "Remote"
	DefaultShift        = "Day"
	DefaultCompensation = "Price"
	DefaultDomain       = "Software Development"
)

// Project describes one collaboration project owned by a profile.
type Project struct {
	ID               string    `json:"id"`
	CreatedBy        string    `json:"created_by"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Domain           string    `json:"domain"`
	RequiredSkills   []string  `json:"required_skills"`
	PreferredSkills  []string  `json:"preferred_skills"`
	Complexity       string    `json:"complexity"`
	Location         string    `json:"location"`
	Shift            string    `json:"shift"`
	CompensationType string    `json:"compensation_type"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ApplyDefaults fills zero-valued attribute fields with the stock defaults
// used when composing recommendation requests and creating projects.
func (p *Project) ApplyDefaults() {
	if p.Complexity == "" {
		p.Complexity = DefaultComplexity
	}
	if p.Location == "" {
		p.Location = DefaultLocation
	}
	if p.Shift == "" {
		p.Shift = DefaultShift
	}
	if p.CompensationType == "" {
		p.CompensationType = DefaultCompensation
	}
	if p.Domain == "" {
		p.Domain = DefaultDomain
	}
	if p.Status == "" {
		p.Status = StatusOpen
	}
	if p.RequiredSkills == nil {
		p.RequiredSkills = []string{}
	}
	if p.PreferredSkills == nil {
		p.PreferredSkills = []string{}
	}
}
