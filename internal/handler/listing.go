package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studyspot/studyspot/internal/handler/dto"
	"github.com/studyspot/studyspot/internal/model"
	"github.com/studyspot/studyspot/internal/service"
)

// ListingHandler handles HTTP requests for study-spot listings.
type ListingHandler struct {
	deps Deps
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(deps Deps) *ListingHandler {
	return &ListingHandler{deps: deps}
}

type homeData struct {
	Filters  dto.ListingFilters
	Listings []*model.Listing
	Count    int
}

type formData struct {
	Form   dto.ListingForm
	Action string
	Submit string
}

type mapData struct {
	Pins   []service.MapPin
	Center model.LatLng
	Zoom   int
}

// Home handles GET /home.
func (h *ListingHandler) Home(w http.ResponseWriter, r *http.Request) {
	filters := dto.FiltersFromQuery(r.URL.Query())

	listings, err := h.svc().List(r.Context(), filters.Query())
	if err != nil {
		h.deps.serverError(w, r, err)
		return
	}

	h.deps.Views.Render(w, http.StatusOK, "home", Page{
		Title: "Study spots",
		User:  h.deps.currentUser(r),
		Data:  homeData{Filters: filters, Listings: listings, Count: len(listings)},
	})
}

// View handles GET /posts/{id}.
func (h *ListingHandler) View(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc().Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.deps.Views.Render(w, http.StatusOK, "view_post", Page{
		Title: listing.Location,
		User:  h.deps.currentUser(r),
		Data:  listing,
	})
}

// CreateForm handles GET /posts/create.
func (h *ListingHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	user := h.deps.currentUser(r)

	var form dto.ListingForm
	if user != nil {
		form.NetID = user.NetID
	}

	h.renderCreate(w, r, user, http.StatusOK, form, "")
}

// Create handles POST /posts/create.
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	form := dto.FromValues(r.PostForm)

	listing, err := h.svc().Create(r.Context(), form.Service())
	if err != nil {
		if msg := fieldMessage(err); msg != "" {
			h.renderCreate(w, r, h.deps.currentUser(r), http.StatusUnprocessableEntity, form, msg)
			return
		}
		h.handleServiceError(w, r, err)
		return
	}

	h.deps.Logger.Info("listing_created",
		"listing_id", listing.ID,
		"has_hours", listing.Hours != "",
	)

	http.Redirect(w, r, "/posts/"+listing.ID, http.StatusSeeOther)
}

// EditForm handles GET /posts/{id}/edit.
func (h *ListingHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc().Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.renderEdit(w, r, http.StatusOK, dto.FromListing(listing), "", "")
}

// Edit handles POST /posts/{id}/edit.
// A rejected update redisplays the stored record overlaid with what was submitted.
func (h *ListingHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	updated, err := h.svc().Update(r.Context(), id, dto.FromValues(r.PostForm).Service())
	if err != nil {
		if msg := fieldMessage(err); msg != "" && updated != nil {
			merged := dto.FromListing(updated).Overlay(r.PostForm)
			h.renderEdit(w, r, http.StatusUnprocessableEntity, merged, msg, "")
			return
		}
		h.handleServiceError(w, r, err)
		return
	}

	h.deps.Logger.Info("listing_updated", "listing_id", updated.ID)

	h.renderEdit(w, r, http.StatusOK, dto.FromListing(updated), "", "Post updated successfully!")
}

// Delete handles POST /posts/{id}/delete.
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc().Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			writeText(w, http.StatusNotFound, "Post not found")
			return
		}
		h.handleServiceError(w, r, err)
		return
	}

	h.deps.Logger.Info("listing_deleted", "listing_id", id)
	writeText(w, http.StatusOK, "Deleted successfully")
}

// Map handles GET /map.
func (h *ListingHandler) Map(w http.ResponseWriter, r *http.Request) {
	pins, err := h.svc().MapPins(r.Context())
	if err != nil {
		h.deps.serverError(w, r, err)
		return
	}

	h.deps.Views.Render(w, http.StatusOK, "map", Page{
		Title: "Map",
		User:  h.deps.currentUser(r),
		Data:  mapData{Pins: pins, Center: h.deps.Map.Center, Zoom: h.deps.Map.Zoom},
	})
}

func (h *ListingHandler) svc() *service.ListingService {
	return h.deps.Listings
}

func (h *ListingHandler) renderCreate(w http.ResponseWriter, r *http.Request, user *model.User, status int, form dto.ListingForm, msg string) {
	h.deps.Views.Render(w, status, "create_post", Page{
		Title: "New study spot",
		User:  user,
		Error: msg,
		Data:  formData{Form: form, Action: "/posts/create", Submit: "Create post"},
	})
}

func (h *ListingHandler) renderEdit(w http.ResponseWriter, r *http.Request, status int, form dto.ListingForm, errMsg, okMsg string) {
	h.deps.Views.Render(w, status, "edit_post", Page{
		Title:   "Edit study spot",
		User:    h.deps.currentUser(r),
		Error:   errMsg,
		Message: okMsg,
		Data:    formData{Form: form, Action: "/posts/" + form.ID + "/edit", Submit: "Save changes"},
	})
}

// handleServiceError maps service errors to HTTP responses.
func (h *ListingHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrListingNotFound):
		writeText(w, http.StatusNotFound, "Post not found")
	default:
		h.deps.serverError(w, r, err)
	}
}

// fieldMessage maps a listing validation error to its form message.
// It returns "" for errors that are not validation failures.
func fieldMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidMapLink):
		return "Please enter a valid Google Maps link."
	case errors.Is(err, service.ErrInvalidHours):
		return "Hours must be a range like 09:00-18:00."
	case errors.Is(err, service.ErrInvalidNoiseLevel):
		return "Please choose a noise level from the list."
	case errors.Is(err, service.ErrInvalidSeating):
		return "Please choose a seating type from the list."
	case errors.Is(err, service.ErrInvalidWiFi):
		return "Please choose a WiFi option from the list."
	case errors.Is(err, service.ErrInvalidOutlets):
		return "Please choose an outlets option from the list."
	case errors.Is(err, service.ErrInvalidReservable):
		return "Reservable must be yes or no."
	default:
		return ""
	}
}
