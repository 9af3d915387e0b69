// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/prohunt/prohunt/internal/domain/model"
)

// AuthDependencies defines the interface for the auth callback flow.
type AuthDependencies interface {
	ExchangeAndEnsure(ctx context.Context, code string) (model.Session, bool, error)
}

// AuthRedirects holds the post-callback redirect targets.
type AuthRedirects struct {
	Success string
	Failure string
}

// AuthHandler handles the provider's callback redirect.
type AuthHandler struct {
	deps      AuthDependencies
	redirects AuthRedirects
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(deps AuthDependencies, redirects AuthRedirects) *AuthHandler {
	if redirects.Success == "" {
		redirects.Success = "/secure/dashboard"
	}
	if redirects.Failure == "" {
		redirects.Failure = "/auth/login"
	}
	return &AuthHandler{deps: deps, redirects: redirects}
}

// HandleCallback handles GET /auth/callback?code= requests. The browser is
// always redirected: to the dashboard when the exchange succeeds and a
// profile exists for the user, back to the login page otherwise. Errors
// never render as JSON here since the client is mid-redirect; exchange
// failures surface as an "error" query on the login URL.
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, h.redirects.Failure, http.StatusFound)
		return
	}

	if _, _, err := h.deps.ExchangeAndEnsure(r.Context(), code); err != nil {
		http.Redirect(w, r, h.failureURL(err), http.StatusFound)
		return
	}

	http.Redirect(w, r, h.redirects.Success, http.StatusFound)
}

// failureURL appends the failure reason to the login redirect target.
func (h *AuthHandler) failureURL(err error) string {
	sep := "?"
	if strings.Contains(h.redirects.Failure, "?") {
		sep = "&"
	}
	return h.redirects.Failure + sep + "error=" + url.QueryEscape(err.Error())
}
