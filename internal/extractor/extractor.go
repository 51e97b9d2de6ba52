// Package extractor talks to the face/embedding service that turns captured
// stills into fixed-length vectors. Both extractors are optional
// collaborators: when the service is down or returns nothing, the caller is
// expected to skip the corresponding matching stage, not fail the run.
package extractor

import "context"

// FaceDetector produces a face descriptor from an encoded image, or nil when
// no face is found.
type FaceDetector interface {
	// Ready reports whether the detector can currently serve requests.
	Ready(ctx context.Context) bool
	// DetectFace returns the descriptor of the most confident face in the
	// image, or nil when none is detected.
	DetectFace(ctx context.Context, imageData []byte) ([]float32, error)
}

// Embedder produces a whole-image embedding from an encoded image.
type Embedder interface {
	Ready(ctx context.Context) bool
	// ComputeEmbedding returns the image embedding, or nil when the service
	// could not produce one.
	ComputeEmbedding(ctx context.Context, imageData []byte) ([]float32, error)
}
