// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/prohunt/prohunt/internal/domain/avatar"
	"github.com/prohunt/prohunt/internal/domain/model"
)

// ProfileDependencies defines the interface for profile operations.
type ProfileDependencies interface {
	GetProfile(ctx context.Context, id string) (model.Profile, error)
	UpdateProfile(ctx context.Context, p model.Profile) (model.Profile, error)
	AddSkill(ctx context.Context, userID, skill string) ([]string, error)
	RemoveSkill(ctx context.Context, userID string, index int) ([]string, error)
	AddPreferredDomain(ctx context.Context, userID, domain string) ([]string, error)
	RemovePreferredDomain(ctx context.Context, userID string, index int) ([]string, error)
	EnqueueAvatar(ctx context.Context, userID string, data []byte) error
	AvatarMaxBytes() int64
}

// ProfilesHandler handles profile requests.
type ProfilesHandler struct {
	deps ProfileDependencies
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(deps ProfileDependencies) *ProfilesHandler {
	return &ProfilesHandler{deps: deps}
}

// profileRequest mirrors the OpenAPI schema for PUT /profiles/{id}.
type profileRequest struct {
	UserName       string                `json:"user_name"`
	Phone          string                `json:"phone"`
	Location       string                `json:"location"`
	Bio            string                `json:"bio"`
	Website        string                `json:"website"`
	Certifications []model.Certification `json:"certifications"`
	Experience     []string              `json:"experience"`
	Availability   bool                  `json:"availability"`
}

// tagRequest carries a single selected tag for the list endpoints.
type tagRequest struct {
	Item string `json:"item"`
}

type tagListResponse struct {
	Items []string `json:"items"`
}

// HandleProfile dispatches /profiles/{id} and its sub-resources.
func (h *ProfilesHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/profiles/")
	if path == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, id)
		case http.MethodPut:
			h.handleUpdate(w, r, id)
		default:
			http.NotFound(w, r)
		}
	case len(parts) == 2 && parts[1] == "avatar" && r.Method == http.MethodPost:
		h.handleAvatar(w, r, id)
	case len(parts) == 2 && r.Method == http.MethodPost:
		h.handleAddTag(w, r, id, parts[1])
	case len(parts) == 3 && r.Method == http.MethodDelete:
		h.handleRemoveTag(w, r, id, parts[1], parts[2])
	default:
		http.NotFound(w, r)
	}
}

func (h *ProfilesHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.deps.GetProfile(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfilesHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	current, err := h.deps.GetProfile(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	current.UserName = req.UserName
	current.Phone = req.Phone
	current.Location = req.Location
	current.Bio = req.Bio
	current.Website = req.Website
	current.Certifications = req.Certifications
	current.Experience = req.Experience
	current.Availability = req.Availability

	updated, err := h.deps.UpdateProfile(r.Context(), current)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProfilesHandler) handleAddTag(w http.ResponseWriter, r *http.Request, id, list string) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Item) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	var items []string
	var err error
	switch list {
	case "skills":
		items, err = h.deps.AddSkill(r.Context(), id, req.Item)
	case "preferred-domains":
		items, err = h.deps.AddPreferredDomain(r.Context(), id, req.Item)
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tagListResponse{Items: items})
}

func (h *ProfilesHandler) handleRemoveTag(w http.ResponseWriter, r *http.Request, id, list, rawIndex string) {
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid index"))
		return
	}

	var items []string
	switch list {
	case "skills":
		items, err = h.deps.RemoveSkill(r.Context(), id, index)
	case "preferred-domains":
		items, err = h.deps.RemovePreferredDomain(r.Context(), id, index)
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tagListResponse{Items: items})
}

// handleAvatar accepts the image either as a multipart "avatar" field or
// as the raw request body, and hands it to the async upload pipeline.
// Acceptance means queued, not stored; the profile's avatar_url updates
// once a worker finishes.
func (h *ProfilesHandler) handleAvatar(w http.ResponseWriter, r *http.Request, id string) {
	body := io.Reader(r.Body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("avatar")
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		defer file.Close()
		body = file
	}

	// Read one byte past the configured cap so an oversized payload is
	// rejected by validation rather than silently truncated.
	limit := h.deps.AvatarMaxBytes()
	if limit <= 0 {
		limit = avatar.MaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	if err := h.deps.EnqueueAvatar(r.Context(), id, data); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
