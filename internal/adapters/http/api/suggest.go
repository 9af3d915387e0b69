// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prohunt/prohunt/internal/domain/vocabulary"
)

// SuggestDependencies defines the interface for suggestion queries.
type SuggestDependencies interface {
	Suggest(ctx context.Context, kind vocabulary.Kind, query string, limit int) ([]string, error)
}

// SuggestHandler handles vocabulary suggestion requests.
type SuggestHandler struct {
	deps SuggestDependencies
}

// NewSuggestHandler creates a new suggest handler.
func NewSuggestHandler(deps SuggestDependencies) *SuggestHandler {
	return &SuggestHandler{deps: deps}
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// HandleSuggest handles GET /suggest?kind=skills&q=pyt&limit=10 requests.
// A missing kind defaults to skills; an empty query yields an empty list.
func (h *SuggestHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	kind := vocabulary.KindSkills
	if k := r.URL.Query().Get("kind"); k != "" {
		kind = vocabulary.Kind(k)
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		limit = n
	}

	suggestions, err := h.deps.Suggest(r.Context(), kind, r.URL.Query().Get("q"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
}
