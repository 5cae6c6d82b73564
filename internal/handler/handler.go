// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/studyspot/studyspot/internal/model"
	"github.com/studyspot/studyspot/internal/service"
	"github.com/studyspot/studyspot/internal/session"
)

// Deps are the collaborators shared by the page handlers.
type Deps struct {
	Accounts *service.AccountService
	Listings *service.ListingService
	Sessions *session.Manager
	Views    *Renderer
	Logger   *slog.Logger
	Map      MapConfig
}

// MapConfig positions the map page's initial view.
type MapConfig struct {
	Center model.LatLng
	Zoom   int
}

// Handler serves the pages that belong to no resource: root, 404 and 405.
type Handler struct {
	deps Deps
}

// New creates a new Handler instance.
func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Root handles GET /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/home", http.StatusFound)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.deps.Views.Render(w, http.StatusNotFound, "not_found", Page{
		Title: "Not found",
		User:  h.deps.currentUser(r),
	})
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// currentUser resolves the logged-in user, or nil.
// Lookup failures are logged and treated as logged out.
func (d Deps) currentUser(r *http.Request) *model.User {
	userID, err := d.Sessions.UserID(r)
	if err != nil {
		d.Logger.Warn("session_lookup_failed", "error", err)
		return nil
	}

	user, err := d.Accounts.CurrentUser(r.Context(), userID)
	if err != nil {
		d.Logger.Warn("current_user_failed", "error", err)
		return nil
	}
	return user
}

// serverError logs err and renders the generic error page.
func (d Deps) serverError(w http.ResponseWriter, r *http.Request, err error) {
	d.Logger.Error("internal_error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
	)
	d.Views.Render(w, http.StatusInternalServerError, "error", Page{Title: "Error"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeText writes a plain-text response with the given status code.
func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
