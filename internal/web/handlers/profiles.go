package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/store"
)

// ProfilesHandler serves attendee profiles.
type ProfilesHandler struct {
	store *store.Store
}

// NewProfilesHandler creates a profiles handler over the store.
func NewProfilesHandler(st *store.Store) *ProfilesHandler {
	return &ProfilesHandler{store: st}
}

// List handles GET /api/v1/profiles with an optional ?q= name filter.
func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var profiles []store.AttendeeProfile
	if query != "" {
		profiles = h.store.SearchProfiles(query)
	} else {
		profiles = h.store.Profiles()
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"profiles": profiles,
		"count":    len(profiles),
	})
}

// Get handles GET /api/v1/profiles/{id}.
func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profile, ok := h.store.Profile(id)
	if !ok {
		respondError(w, http.StatusNotFound, "profile not found")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
