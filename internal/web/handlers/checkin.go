package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/pipeline"
)

// maxCaptureSize caps the multipart form we are willing to read. Kiosk
// stills are webcam frames, nowhere near this.
const maxCaptureSize = 16 << 20 // 16 MB

// CheckinHandler handles capture submissions from the kiosk front end.
type CheckinHandler struct {
	pipeline *pipeline.Pipeline
}

// NewCheckinHandler creates a checkin handler over the pipeline.
func NewCheckinHandler(pl *pipeline.Pipeline) *CheckinHandler {
	return &CheckinHandler{pipeline: pl}
}

// Checkin handles POST /api/v1/checkin. It expects a multipart form with
// "name", "email" and an "image" file, runs the full resolution and replies
// with the outcome. Rejections map to distinct status codes so the front end
// can present them without parsing the body.
func (h *CheckinHandler) Checkin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCaptureSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !strings.Contains(email, "@") {
		respondError(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read image file")
		return
	}

	outcome, err := h.pipeline.Resolve(r.Context(), pipeline.Capture{
		Name:  name,
		Email: email,
		Image: image,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrResolveInProgress) {
			respondError(w, http.StatusTooManyRequests, "another capture is being resolved, retry shortly")
			return
		}
		log.Printf("checkin for %s failed: %v", sanitizeForLog(email), err)
		respondError(w, http.StatusInternalServerError, "failed to resolve capture")
		return
	}

	respondJSON(w, statusForOutcome(outcome), outcome)
}

// statusForOutcome maps a pipeline outcome to an HTTP status code.
func statusForOutcome(outcome *pipeline.Outcome) int {
	if outcome.Accepted {
		return http.StatusOK
	}
	switch outcome.Reason {
	case pipeline.ReasonCheckoutMismatch:
		return http.StatusConflict
	case pipeline.ReasonUnreadableImage:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
