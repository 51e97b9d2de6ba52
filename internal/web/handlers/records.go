package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/store"
)

// defaultRecordLimit is how many records List returns without an explicit limit.
const defaultRecordLimit = 50

// RecordsHandler serves the attendance record log and store-wide operations.
type RecordsHandler struct {
	store *store.Store
}

// NewRecordsHandler creates a records handler over the store.
func NewRecordsHandler(st *store.Store) *RecordsHandler {
	return &RecordsHandler{store: st}
}

// List handles GET /api/v1/records?limit=N, most recent first.
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecordLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	records := h.store.RecentRecords(limit)
	respondJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"count":   len(records),
	})
}

// Stats handles GET /api/v1/stats.
func (h *RecordsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	records, profiles, present := h.store.Counts()
	respondJSON(w, http.StatusOK, map[string]int{
		"records":  records,
		"profiles": profiles,
		"present":  present,
	})
}

// Clear handles DELETE /api/v1/data. Wipes both collections.
func (h *RecordsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearAll(r.Context()); err != nil {
		log.Printf("failed to clear attendance data: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to clear attendance data")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
