// Package pipeline turns one capture event into one attendance decision.
// It fuses the available identity signals in strict precedence order (face
// descriptor, image embedding, pixel fallback, email, new enrollment),
// applies the presence toggle and the same-day exit gate, and commits the
// result through the store. Nothing is written until the full decision,
// gate included, has succeeded.
package pipeline

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/config"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/extractor"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/matcher"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/metrics"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/similarity"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/store"
)

// ErrResolveInProgress is returned when a capture arrives while a previous
// run is still resolving. Runs are not reentrant; the caller must retry
// after the current run finishes.
var ErrResolveInProgress = errors.New("a capture is already being resolved")

// Stage names which signal resolved the identity.
type Stage string

const (
	StageFace       Stage = "face"
	StageEmbedding  Stage = "embedding"
	StagePixel      Stage = "pixel"
	StageEmail      Stage = "email"
	StageEnrollment Stage = "enrollment"
)

// RejectReason classifies a rejected run.
type RejectReason string

const (
	// ReasonUnreadableImage means the captured still could not be decoded.
	ReasonUnreadableImage RejectReason = "unreadable_image"
	// ReasonCheckoutMismatch means the same-day exit gate failed: the new
	// capture does not look like today's entry image.
	ReasonCheckoutMismatch RejectReason = "checkout_mismatch"
)

// Capture is one submission from the kiosk: the captured still plus the
// form fields. The caller validates the form contract (non-empty name,
// email containing "@") before submitting.
type Capture struct {
	Name  string
	Email string
	Image []byte
}

// Outcome is the discriminated result of one run. Accepted outcomes carry
// the written record and updated profile; rejected ones carry the reason
// and guarantee that no state was mutated.
type Outcome struct {
	Accepted      bool                   `json:"accepted"`
	Reason        RejectReason           `json:"reason,omitempty"`
	Stage         Stage                  `json:"stage,omitempty"`
	Confidence    float64                `json:"confidence,omitempty"`
	NewEnrollment bool                   `json:"newEnrollment,omitempty"`
	Record        store.AttendanceRecord `json:"record,omitzero"`
	Profile       store.AttendeeProfile  `json:"profile,omitzero"`
}

// Pipeline orchestrates extractors, match engines and the store for one
// capture at a time.
type Pipeline struct {
	store    *store.Store
	faces    extractor.FaceDetector // nil when no face service is configured
	embedder extractor.Embedder     // nil when no embedding service is configured

	faceEngine      *matcher.Engine
	embeddingEngine *matcher.Engine
	pixelThreshold  float64
	gateThreshold   float64

	// pixelConfidence is swappable so tests can dial exact confidences.
	pixelConfidence func(a, b []byte) (float64, error)

	mu sync.Mutex // held for the whole of one run
}

// New wires a pipeline over the store and the optional extractor
// collaborators.
func New(st *store.Store, faces extractor.FaceDetector, embedder extractor.Embedder, thresholds config.MatchingThresholds) *Pipeline {
	return &Pipeline{
		store:           st,
		faces:           faces,
		embedder:        embedder,
		faceEngine:      matcher.NewEngine("face", thresholds.Face, similarity.EuclideanConfidence),
		embeddingEngine: matcher.NewEngine("embedding", thresholds.Embedding, similarity.CosineConfidence),
		pixelThreshold:  thresholds.Pixel,
		gateThreshold:   thresholds.CheckoutGate,
		pixelConfidence: similarity.PixelConfidence,
	}
}

// identity is the intermediate result of the precedence chain.
type identity struct {
	attendeeID string
	stage      Stage
	confidence float64
	isNew      bool
}

// Resolve runs the full decision for one capture. It returns
// ErrResolveInProgress when another run holds the pipeline.
func (p *Pipeline) Resolve(ctx context.Context, capture Capture) (*Outcome, error) {
	if !p.mu.TryLock() {
		return nil, ErrResolveInProgress
	}
	defer p.mu.Unlock()

	if !similarity.DecodableImage(capture.Image) {
		metrics.Rejections.WithLabelValues(string(ReasonUnreadableImage)).Inc()
		return &Outcome{Reason: ReasonUnreadableImage}, nil
	}

	faceVec := p.extractFace(ctx, capture.Image)
	embedding, id := p.resolveIdentity(ctx, capture, faceVec)

	outcome := p.applyTransition(ctx, capture, id, faceVec, embedding)
	if outcome.Accepted {
		metrics.Checkins.WithLabelValues(string(outcome.Record.Type)).Inc()
		metrics.MatchStage.WithLabelValues(string(outcome.Stage)).Inc()
	} else {
		metrics.Rejections.WithLabelValues(string(outcome.Reason)).Inc()
	}
	return outcome, nil
}

// extractFace runs the face detector when one is available and ready.
// Extraction failures are never fatal; the stage just has no vector.
func (p *Pipeline) extractFace(ctx context.Context, image []byte) []float32 {
	if p.faces == nil || !p.faces.Ready(ctx) {
		return nil
	}
	vec, err := p.faces.DetectFace(ctx, image)
	if err != nil {
		log.Printf("warning: face detection failed, skipping stage: %v", err)
		return nil
	}
	return vec
}

// extractEmbedding runs the embedder when one is available and ready.
func (p *Pipeline) extractEmbedding(ctx context.Context, image []byte) []float32 {
	if p.embedder == nil || !p.embedder.Ready(ctx) {
		return nil
	}
	vec, err := p.embedder.ComputeEmbedding(ctx, image)
	if err != nil {
		log.Printf("warning: embedding extraction failed, skipping stage: %v", err)
		return nil
	}
	return vec
}

// resolveIdentity walks the precedence chain until a stage produces a
// confident identity. Each stage runs only when every earlier stage came up
// empty, and each snapshots the catalog at its own start. The embedding is
// returned as well so an extraction triggered by stage two still lands on
// the written record.
func (p *Pipeline) resolveIdentity(ctx context.Context, capture Capture, faceVec []float32) ([]float32, identity) {
	// Stage 1: face descriptor match.
	if len(faceVec) > 0 {
		result := p.faceEngine.Match(faceVec, p.store.VectorCatalog(store.VectorFace))
		if result.IsMatch {
			return nil, identity{attendeeID: result.AttendeeID, stage: StageFace, confidence: result.Confidence}
		}
	}

	// Stage 2: image embedding match.
	embedding := p.extractEmbedding(ctx, capture.Image)
	if len(embedding) > 0 {
		result := p.embeddingEngine.Match(embedding, p.store.VectorCatalog(store.VectorEmbedding))
		if result.IsMatch {
			return embedding, identity{attendeeID: result.AttendeeID, stage: StageEmbedding, confidence: result.Confidence}
		}
	}

	// Stage 3: raw pixel fallback against every stored appearance.
	if id, ok := p.pixelFallback(capture.Image); ok {
		return embedding, id
	}

	// Stage 4: email fallback.
	if profile, ok := p.store.ProfileByEmail(capture.Email); ok {
		return embedding, identity{attendeeID: profile.ID, stage: StageEmail, confidence: 1}
	}

	// Stage 5: new enrollment.
	return embedding, identity{attendeeID: uuid.NewString(), stage: StageEnrollment, isNew: true}
}

// pixelFallback compares the capture against every profile's last image and
// takes the maximum confidence. Images that fail to decode are skipped.
func (p *Pipeline) pixelFallback(image []byte) (identity, bool) {
	best := identity{stage: StagePixel}
	for _, candidate := range p.store.ImageCatalog() {
		conf, err := p.pixelConfidence(image, candidate.Image)
		if err != nil {
			log.Printf("warning: pixel comparison with profile %s failed: %v", candidate.AttendeeID, err)
			continue
		}
		if conf > best.confidence {
			best.confidence = conf
			best.attendeeID = candidate.AttendeeID
		}
	}
	if best.confidence > p.pixelThreshold {
		return best, true
	}
	return identity{}, false
}

// applyTransition determines the entry/exit transition for the resolved
// identity, applies the same-day exit gate, and on acceptance writes exactly
// one record and one profile update.
func (p *Pipeline) applyTransition(ctx context.Context, capture Capture, id identity, faceVec, embedding []float32) *Outcome {
	recordType := store.RecordEntry
	profile, hasProfile := p.store.Profile(id.attendeeID)
	if hasProfile && profile.Status == store.StatusIn {
		recordType = store.RecordExit
	}

	if recordType == store.RecordExit {
		if entry, ok := p.store.TodayEntryRecord(id.attendeeID); ok {
			conf, err := p.pixelConfidence(capture.Image, entry.Image)
			if err != nil {
				// A corrupt stored entry image must not strand the
				// attendee in IN forever; skip the gate like a failed
				// extraction.
				log.Printf("warning: checkout gate comparison failed, skipping gate: %v", err)
			} else if conf < p.gateThreshold {
				return &Outcome{
					Reason:     ReasonCheckoutMismatch,
					Stage:      id.stage,
					Confidence: conf,
				}
			}
		}
	}

	record := p.store.AddRecord(ctx, store.NewRecord{
		AttendeeID: id.attendeeID,
		Name:       capture.Name,
		Email:      capture.Email,
		Image:      capture.Image,
		Type:       recordType,
		FaceVector: faceVec,
		Embedding:  embedding,
	})

	status := store.StatusIn
	if recordType == store.RecordExit {
		status = store.StatusOut
	}
	patch := store.ProfilePatch{
		ID:         id.attendeeID,
		LastImage:  capture.Image,
		FaceVector: faceVec,
		Embedding:  embedding,
		Status:     &status,
	}
	if recordType == store.RecordEntry {
		patch.LastEntry = &record.Timestamp
	} else {
		patch.LastExit = &record.Timestamp
	}
	if id.isNew {
		patch.Name = &capture.Name
		patch.Email = &capture.Email
	}

	updated := p.store.UpdateProfile(ctx, patch)

	return &Outcome{
		Accepted:      true,
		Stage:         id.stage,
		Confidence:    id.confidence,
		NewEnrollment: id.isNew,
		Record:        record,
		Profile:       updated,
	}
}
