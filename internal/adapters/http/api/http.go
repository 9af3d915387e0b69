// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	serviceapp "github.com/prohunt/prohunt/internal/app"

	"github.com/prohunt/prohunt/internal/adapters/recommend"
	"github.com/prohunt/prohunt/internal/adapters/repository"
	"github.com/prohunt/prohunt/internal/domain/analytics"
	"github.com/prohunt/prohunt/internal/domain/avatar"
	"github.com/prohunt/prohunt/internal/domain/model"
	"github.com/prohunt/prohunt/internal/domain/tags"
	"github.com/prohunt/prohunt/internal/domain/vocabulary"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Suggestion queries over the built-in vocabularies.
	Suggest(ctx context.Context, kind vocabulary.Kind, query string, limit int) ([]string, error)

	// Project lifecycle.
	CreateProject(ctx context.Context, p model.Project) (model.Project, error)
	GetProject(ctx context.Context, id string) (model.Project, error)
	ListProjects(ctx context.Context, createdBy string) ([]model.Project, error)
	UpdateProject(ctx context.Context, p model.Project) (model.Project, error)
	DeleteProject(ctx context.Context, id string) error

	// Dashboard aggregation over a user's projects.
	Dashboard(ctx context.Context, userID string) (analytics.Stats, error)

	// Candidate recommendations for a project.
	Recommendations(ctx context.Context, projectID, userID string) ([]model.Candidate, error)

	// Auth callback completion.
	ExchangeAndEnsure(ctx context.Context, code string) (model.Session, bool, error)

	// Profile reads, writes, and tag lists.
	GetProfile(ctx context.Context, id string) (model.Profile, error)
	UpdateProfile(ctx context.Context, p model.Profile) (model.Profile, error)
	AddSkill(ctx context.Context, userID, skill string) ([]string, error)
	RemoveSkill(ctx context.Context, userID string, index int) ([]string, error)
	AddPreferredDomain(ctx context.Context, userID, domain string) ([]string, error)
	RemovePreferredDomain(ctx context.Context, userID string, index int) ([]string, error)

	// Avatar ingestion.
	EnqueueAvatar(ctx context.Context, userID string, data []byte) error
	AvatarMaxBytes() int64
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	suggestHandler   *SuggestHandler
	projectsHandler  *ProjectsHandler
	dashboardHandler *DashboardHandler
	authHandler      *AuthHandler
	profilesHandler  *ProfilesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, redirects AuthRedirects) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		suggestHandler:   NewSuggestHandler(deps),
		projectsHandler:  NewProjectsHandler(deps),
		dashboardHandler: NewDashboardHandler(deps),
		authHandler:      NewAuthHandler(deps, redirects),
		profilesHandler:  NewProfilesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/suggest", MetricsMiddleware(s.suggestHandler.HandleSuggest, "suggest"))
	mux.HandleFunc("/dashboard", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	mux.HandleFunc("/projects", MetricsMiddleware(s.projectsHandler.HandleProjects, "projects"))
	mux.HandleFunc("/projects/", MetricsMiddleware(s.projectsHandler.HandleProject, "projects"))
	mux.HandleFunc("/auth/callback", MetricsMiddleware(s.authHandler.HandleCallback, "auth_callback"))
	mux.HandleFunc("/profiles/", MetricsMiddleware(s.profilesHandler.HandleProfile, "profiles"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service-layer failures into stable HTTP
// status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, tags.ErrIndexOutOfRange),
		errors.Is(err, avatar.ErrTooLarge),
		errors.Is(err, avatar.ErrUnsupportedType),
		errors.Is(err, serviceapp.ErrUnknownVocabulary):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, serviceapp.ErrUploadQueueSaturated):
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	case errors.Is(err, serviceapp.ErrUploadsUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	case errors.Is(err, recommend.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "timeout", err)
	case errors.Is(err, recommend.ErrUnavailable), errors.Is(err, recommend.ErrBadResponse):
		writeError(w, http.StatusBadGateway, "bad_gateway", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
