// Package repository defines the profile/project store interface and its
// SQLite implementation.
package repository

import (
	"context"

	"github.com/prohunt/prohunt/internal/domain/model"
)

// Store provides read/write access to profiles and projects.
type Store interface {
	// EnsureProfile creates a profile row for id if none exists yet.
	// "No row" is an expected condition here; any other storage error is
	// returned as-is. Reports whether a row was created.
	EnsureProfile(ctx context.Context, id, email string) (bool, error)

	// GetProfile returns the profile for id, or ErrNotFound.
	GetProfile(ctx context.Context, id string) (model.Profile, error)

	// UpdateProfile overwrites the mutable profile fields.
	UpdateProfile(ctx context.Context, p model.Profile) error

	// SetProfileSkills replaces the skills list for id.
	SetProfileSkills(ctx context.Context, id string, skills []string) error

	// SetProfilePreferredDomains replaces the preferred domains for id.
	SetProfilePreferredDomains(ctx context.Context, id string, domains []string) error

	// SetAvatarURL records the stored avatar location for id.
	SetAvatarURL(ctx context.Context, id, url string) error

	// CreateProject persists a new project.
	CreateProject(ctx context.Context, p model.Project) error

	// GetProject returns the project for id, or ErrNotFound.
	GetProject(ctx context.Context, id string) (model.Project, error)

	// ListProjectsByCreator returns the creator's projects, oldest first.
	ListProjectsByCreator(ctx context.Context, createdBy string) ([]model.Project, error)

	// UpdateProject overwrites the mutable project fields, or ErrNotFound.
	UpdateProject(ctx context.Context, p model.Project) error

	// DeleteProject removes the project for id, or ErrNotFound.
	DeleteProject(ctx context.Context, id string) error

	// CountProfiles and CountProjects report store scale for monitoring.
	CountProfiles(ctx context.Context) (int, error)
	CountProjects(ctx context.Context) (int, error)

	// Close releases the underlying database handle.
	Close() error
}
