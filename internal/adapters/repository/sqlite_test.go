package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prohunt/prohunt/internal/domain/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestProject(createdBy string) model.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := model.Project{
		ID:             uuid.NewString(),
		CreatedBy:      createdBy,
		Name:           "Collaboration Platform",
		RequiredSkills: []string{"Go", "PostgreSQL"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	p.ApplyDefaults()
	return p
}

func TestEnsureProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.EnsureProfile(ctx, "user-1", "u1@example.com")
	require.NoError(t, err)
	assert.True(t, created)

	// Second call finds the existing row and must not recreate it.
	created, err = s.EnsureProfile(ctx, "user-1", "other@example.com")
	require.NoError(t, err)
	assert.False(t, created)

	p, err := s.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", p.Email)
	assert.Empty(t, p.Skills)
	assert.Empty(t, p.PreferredDomains)
	assert.Empty(t, p.Certifications)
	assert.Empty(t, p.Experience)
}

func TestGetProfileNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.EnsureProfile(ctx, "user-1", "u1@example.com")
	require.NoError(t, err)

	p, err := s.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	p.UserName = "Dana"
	p.Location = "Berlin"
	p.Skills = []string{"Go", "Rust"}
	p.PreferredDomains = []string{"FinTech"}
	p.Certifications = []model.Certification{
		{Name: "CKA", URL: "https://example.com/cka"},
		{Name: "AWS SAA"},
	}
	p.Experience = []string{"Backend engineer at Initech"}
	p.Availability = true

	require.NoError(t, s.UpdateProfile(ctx, p))

	got, err := s.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Dana", got.UserName)
	assert.Equal(t, []string{"Go", "Rust"}, got.Skills)
	assert.Equal(t, []string{"FinTech"}, got.PreferredDomains)
	assert.Equal(t, p.Certifications, got.Certifications)
	assert.Equal(t, []string{"Backend engineer at Initech"}, got.Experience)
	assert.True(t, got.Availability)

	p.ID = "missing"
	assert.ErrorIs(t, s.UpdateProfile(ctx, p), ErrNotFound)
}

func TestSetProfileLists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.EnsureProfile(ctx, "user-1", "u1@example.com")
	require.NoError(t, err)

	// Duplicates must round-trip unchanged; the store does not dedupe.
	require.NoError(t, s.SetProfileSkills(ctx, "user-1", []string{"Python", "Python"}))
	require.NoError(t, s.SetProfilePreferredDomains(ctx, "user-1", []string{"EdTech"}))

	p, err := s.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "Python"}, p.Skills)
	assert.Equal(t, []string{"EdTech"}, p.PreferredDomains)

	assert.ErrorIs(t, s.SetProfileSkills(ctx, "missing", []string{"Go"}), ErrNotFound)
}

func TestSetAvatarURL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.EnsureProfile(ctx, "user-1", "u1@example.com")
	require.NoError(t, err)

	require.NoError(t, s.SetAvatarURL(ctx, "user-1", "https://cdn.example.com/avatars/user-1.png"))

	p, err := s.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/user-1.png", p.AvatarURL)

	assert.ErrorIs(t, s.SetAvatarURL(ctx, "missing", "x"), ErrNotFound)
}

func TestProjectCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.EnsureProfile(ctx, "user-1", "u1@example.com")
	require.NoError(t, err)

	proj := newTestProject("user-1")
	require.NoError(t, s.CreateProject(ctx, proj))

	got, err := s.GetProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.Name, got.Name)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, got.RequiredSkills)
	assert.Equal(t, model.StatusOpen, got.Status)
	assert.Equal(t, model.DefaultComplexity, got.Complexity)

	got.Status = model.StatusCompleted
	got.RequiredSkills = append(got.RequiredSkills, "Kubernetes")
	require.NoError(t, s.UpdateProject(ctx, got))

	updated, err := s.GetProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, updated.Status)
	assert.Len(t, updated.RequiredSkills, 3)

	require.NoError(t, s.DeleteProject(ctx, proj.ID))
	_, err = s.GetProject(ctx, proj.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteProject(ctx, proj.ID), ErrNotFound)
}

func TestListProjectsByCreator(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.EnsureProfile(ctx, "user-1", "u1@example.com")
	require.NoError(t, err)
	_, err = s.EnsureProfile(ctx, "user-2", "u2@example.com")
	require.NoError(t, err)

	first := newTestProject("user-1")
	second := newTestProject("user-1")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	other := newTestProject("user-2")

	require.NoError(t, s.CreateProject(ctx, first))
	require.NoError(t, s.CreateProject(ctx, second))
	require.NoError(t, s.CreateProject(ctx, other))

	got, err := s.ListProjectsByCreator(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	// Unknown creator yields an empty, non-nil slice.
	empty, err := s.ListProjectsByCreator(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	profiles, err := s.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Zero(t, profiles)

	_, err = s.EnsureProfile(ctx, "user-1", "u1@example.com")
	require.NoError(t, err)
	require.NoError(t, s.CreateProject(ctx, newTestProject("user-1")))

	profiles, err = s.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, profiles)

	projects, err := s.CountProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, projects)
}
