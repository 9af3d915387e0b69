package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/prohunt/prohunt/internal/domain/model"
	"github.com/prohunt/prohunt/pkg/metrics"
)

const defaultMaxOpenConns = 1

// SQLiteStore implements Store on an embedded SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Option applies a configuration option to the SQLiteStore.
type Option func(*settings)

type settings struct {
	maxOpenConns int
}

// WithMaxOpenConns bounds the connection pool. SQLite tolerates a single
// writer; the default of 1 avoids SQLITE_BUSY under concurrent writes.
func WithMaxOpenConns(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxOpenConns = n
		}
	}
}

// NewSQLiteStore opens (and migrates) the database at dataSourceName.
func NewSQLiteStore(dataSourceName string, opts ...Option) (*SQLiteStore, error) {
	cfg := settings{maxOpenConns: defaultMaxOpenConns}
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.maxOpenConns)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    user_name TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    bio TEXT NOT NULL DEFAULT '',
    website TEXT NOT NULL DEFAULT '',
    avatar_url TEXT NOT NULL DEFAULT '',
    skills TEXT NOT NULL DEFAULT '[]',
    preferred_domains TEXT NOT NULL DEFAULT '[]',
    certifications TEXT NOT NULL DEFAULT '[]',
    experience TEXT NOT NULL DEFAULT '[]',
    availability INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    created_by TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    domain TEXT NOT NULL DEFAULT '',
    required_skills TEXT NOT NULL DEFAULT '[]',
    preferred_skills TEXT NOT NULL DEFAULT '[]',
    complexity TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    shift TEXT NOT NULL DEFAULT '',
    compensation_type TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'Open',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    FOREIGN KEY (created_by) REFERENCES profiles(id)
);
CREATE INDEX IF NOT EXISTS idx_projects_created_by ON projects(created_by);
CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// EnsureProfile creates a profile row for id if none exists yet.
func (s *SQLiteStore) EnsureProfile(ctx context.Context, id, email string) (bool, error) {
	_, err := s.GetProfile(ctx, id)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, ErrNotFound):
		// Expected: fall through to create.
	default:
		return false, err
	}

	now := time.Now().UTC()
	defer observeWrite(time.Now())
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, email, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, id, email, now, now)
	if err != nil {
		metrics.RecordStoreError()
		return false, fmt.Errorf("failed to create profile: %w", err)
	}
	return true, nil
}

// GetProfile returns the profile for id, or ErrNotFound.
func (s *SQLiteStore) GetProfile(ctx context.Context, id string) (model.Profile, error) {
	defer observeQuery(time.Now())

	var p model.Profile
	var skillsRaw, domainsRaw, certsRaw, experienceRaw string
	var availability int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, user_name, phone, location, bio, website,
		       avatar_url, skills, preferred_domains, certifications,
		       experience, availability, created_at, updated_at
		FROM profiles WHERE id = ?
	`, id).Scan(
		&p.ID, &p.Email, &p.UserName, &p.Phone, &p.Location, &p.Bio,
		&p.Website, &p.AvatarURL, &skillsRaw, &domainsRaw, &certsRaw,
		&experienceRaw, &availability, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrNotFound
	}
	if err != nil {
		metrics.RecordStoreError()
		return model.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	p.Skills = decodeStrings(skillsRaw)
	p.PreferredDomains = decodeStrings(domainsRaw)
	p.Certifications = decodeCertifications(certsRaw)
	p.Experience = decodeStrings(experienceRaw)
	p.Availability = availability != 0
	return p, nil
}

// UpdateProfile overwrites the mutable profile fields.
func (s *SQLiteStore) UpdateProfile(ctx context.Context, p model.Profile) error {
	defer observeWrite(time.Now())

	res, err := s.db.ExecContext(ctx, `
		UPDATE profiles
		SET email = ?, user_name = ?, phone = ?, location = ?, bio = ?,
		    website = ?, skills = ?, preferred_domains = ?,
		    certifications = ?, experience = ?, availability = ?,
		    updated_at = ?
		WHERE id = ?
	`,
		p.Email, p.UserName, p.Phone, p.Location, p.Bio, p.Website,
		encodeStrings(p.Skills), encodeStrings(p.PreferredDomains),
		encodeCertifications(p.Certifications), encodeStrings(p.Experience),
		boolToInt(p.Availability), time.Now().UTC(), p.ID,
	)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return requireRow(res)
}

// SetProfileSkills replaces the skills list for id.
func (s *SQLiteStore) SetProfileSkills(ctx context.Context, id string, skills []string) error {
	return s.setProfileList(ctx, id, "skills", skills)
}

// SetProfilePreferredDomains replaces the preferred domains for id.
func (s *SQLiteStore) SetProfilePreferredDomains(ctx context.Context, id string, domains []string) error {
	return s.setProfileList(ctx, id, "preferred_domains", domains)
}

func (s *SQLiteStore) setProfileList(ctx context.Context, id, column string, values []string) error {
	defer observeWrite(time.Now())

	// column is one of two compile-time constants, never caller input.
	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET `+column+` = ?, updated_at = ? WHERE id = ?`,
		encodeStrings(values), time.Now().UTC(), id,
	)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("failed to update profile %s: %w", column, err)
	}
	return requireRow(res)
}

// SetAvatarURL records the stored avatar location for id.
func (s *SQLiteStore) SetAvatarURL(ctx context.Context, id, url string) error {
	defer observeWrite(time.Now())

	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET avatar_url = ?, updated_at = ? WHERE id = ?`,
		url, time.Now().UTC(), id,
	)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("failed to set avatar url: %w", err)
	}
	return requireRow(res)
}

// CreateProject persists a new project.
func (s *SQLiteStore) CreateProject(ctx context.Context, p model.Project) error {
	defer observeWrite(time.Now())

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (
			id, created_by, name, description, domain,
			required_skills, preferred_skills, complexity, location,
			shift, compensation_type, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.CreatedBy, p.Name, p.Description, p.Domain,
		encodeStrings(p.RequiredSkills), encodeStrings(p.PreferredSkills),
		p.Complexity, p.Location, p.Shift, p.CompensationType, p.Status,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

const projectColumns = `id, created_by, name, description, domain,
	required_skills, preferred_skills, complexity, location, shift,
	compensation_type, status, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (model.Project, error) {
	var p model.Project
	var required, preferred string
	err := row.Scan(
		&p.ID, &p.CreatedBy, &p.Name, &p.Description, &p.Domain,
		&required, &preferred, &p.Complexity, &p.Location, &p.Shift,
		&p.CompensationType, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Project{}, err
	}
	p.RequiredSkills = decodeStrings(required)
	p.PreferredSkills = decodeStrings(preferred)
	return p, nil
}

// GetProject returns the project for id, or ErrNotFound.
func (s *SQLiteStore) GetProject(ctx context.Context, id string) (model.Project, error) {
	defer observeQuery(time.Now())

	row := s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, ErrNotFound
	}
	if err != nil {
		metrics.RecordStoreError()
		return model.Project{}, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// ListProjectsByCreator returns the creator's projects, oldest first.
func (s *SQLiteStore) ListProjectsByCreator(ctx context.Context, createdBy string) ([]model.Project, error) {
	defer observeQuery(time.Now())

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE created_by = ? ORDER BY created_at ASC`,
		createdBy)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			metrics.RecordStoreError()
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}
	return out, nil
}

// UpdateProject overwrites the mutable project fields, or ErrNotFound.
func (s *SQLiteStore) UpdateProject(ctx context.Context, p model.Project) error {
	defer observeWrite(time.Now())

	res, err := s.db.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, description = ?, domain = ?, required_skills = ?,
		    preferred_skills = ?, complexity = ?, location = ?, shift = ?,
		    compensation_type = ?, status = ?, updated_at = ?
		WHERE id = ?
	`,
		p.Name, p.Description, p.Domain,
		encodeStrings(p.RequiredSkills), encodeStrings(p.PreferredSkills),
		p.Complexity, p.Location, p.Shift, p.CompensationType, p.Status,
		time.Now().UTC(), p.ID,
	)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireRow(res)
}

// DeleteProject removes the project for id, or ErrNotFound.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	defer observeWrite(time.Now())

	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return requireRow(res)
}

// CountProfiles reports the number of profile rows.
func (s *SQLiteStore) CountProfiles(ctx context.Context) (int, error) {
	return s.count(ctx, "profiles")
}

// CountProjects reports the number of project rows.
func (s *SQLiteStore) CountProjects(ctx context.Context) (int, error) {
	return s.count(ctx, "projects")
}

func (s *SQLiteStore) count(ctx context.Context, table string) (int, error) {
	defer observeQuery(time.Now())

	var n int
	// table is one of two compile-time constants, never caller input.
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// requireRow converts a zero-row update/delete into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		// []string cannot fail to marshal; keep the column well-formed anyway.
		return "[]"
	}
	return string(raw)
}

func decodeStrings(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func encodeCertifications(values []model.Certification) string {
	if values == nil {
		values = []model.Certification{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeCertifications(raw string) []model.Certification {
	var out []model.Certification
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []model.Certification{}
	}
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func observeQuery(start time.Time) {
	metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
}

func observeWrite(start time.Time) {
	metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
}
