// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/prohunt/prohunt/internal/domain/model"
)

// ProjectDependencies defines the interface for project operations.
type ProjectDependencies interface {
	CreateProject(ctx context.Context, p model.Project) (model.Project, error)
	GetProject(ctx context.Context, id string) (model.Project, error)
	ListProjects(ctx context.Context, createdBy string) ([]model.Project, error)
	UpdateProject(ctx context.Context, p model.Project) (model.Project, error)
	DeleteProject(ctx context.Context, id string) error
	Recommendations(ctx context.Context, projectID, userID string) ([]model.Candidate, error)
}

// ProjectsHandler handles project requests.
type ProjectsHandler struct {
	deps ProjectDependencies
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(deps ProjectDependencies) *ProjectsHandler {
	return &ProjectsHandler{deps: deps}
}

// projectRequest mirrors the OpenAPI schema for project writes.
type projectRequest struct {
	CreatedBy        string   `json:"created_by"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Domain           string   `json:"domain"`
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	Complexity       string   `json:"complexity"`
	Location         string   `json:"location"`
	Shift            string   `json:"shift"`
	CompensationType string   `json:"compensation_type"`
	Status           string   `json:"status"`
}

func (p projectRequest) validate() error {
	switch {
	case strings.TrimSpace(p.CreatedBy) == "":
		return errors.New("missing created_by")
	case strings.TrimSpace(p.Name) == "":
		return errors.New("missing name")
	}
	if p.Status != "" {
		if _, ok := model.ValidStatuses[p.Status]; !ok {
			return errors.New("invalid status")
		}
	}
	return nil
}

func (p projectRequest) toModel() model.Project {
	return model.Project{
		CreatedBy:        p.CreatedBy,
		Name:             p.Name,
		Description:      p.Description,
		Domain:           p.Domain,
		RequiredSkills:   p.RequiredSkills,
		PreferredSkills:  p.PreferredSkills,
		Complexity:       p.Complexity,
		Location:         p.Location,
		Shift:            p.Shift,
		CompensationType: p.CompensationType,
		Status:           p.Status,
	}
}

// HandleProjects handles the /projects collection: POST creates a project
// and GET lists a creator's projects.
func (h *ProjectsHandler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

// HandleProject handles /projects/{id} and /projects/{id}/recommendations.
func (h *ProjectsHandler) HandleProject(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/projects/")
	if path == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	if id, ok := strings.CutSuffix(path, "/recommendations"); ok {
		if r.Method != http.MethodGet || id == "" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}
		h.handleRecommendations(w, r, id)
		return
	}

	if strings.Contains(path, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, path)
	case http.MethodPut:
		h.handleUpdate(w, r, path)
	case http.MethodDelete:
		h.handleDelete(w, r, path)
	default:
		http.NotFound(w, r)
	}
}

func (h *ProjectsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	created, err := h.deps.CreateProject(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProjectsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	createdBy := r.URL.Query().Get("created_by")
	if createdBy == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing created_by"))
		return
	}

	projects, err := h.deps.ListProjects(r.Context(), createdBy)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectsHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	project, err := h.deps.GetProject(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectsHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	p := req.toModel()
	p.ID = id
	updated, err := h.deps.UpdateProject(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProjectsHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.deps.DeleteProject(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRecommendations proxies the ranked candidate lookup. An empty
// result after filtering is reported as not found so the caller can show
// an explicit no-data state instead of an empty list.
func (h *ProjectsHandler) handleRecommendations(w http.ResponseWriter, r *http.Request, id string) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing user_id"))
		return
	}

	candidates, err := h.deps.Recommendations(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if len(candidates) == 0 {
		writeError(w, http.StatusNotFound, "not_found", errors.New("no candidates found"))
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}
