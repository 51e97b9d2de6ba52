package extractor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

// newTestService spins up a mock extraction service.
func newTestService(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range handlers {
		mux.HandleFunc(pattern, handler)
	}
	return httptest.NewServer(mux)
}

func TestDetectFacePicksBestScore(t *testing.T) {
	server := newTestService(t, map[string]http.HandlerFunc{
		"/embed/face": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"faces_count": 2,
				"faces": []map[string]any{
					{"face_index": 0, "embedding": []float32{0.1, 0.2}, "det_score": 0.55},
					{"face_index": 1, "embedding": []float32{0.3, 0.4}, "det_score": 0.91},
				},
			})
		},
	})
	defer server.Close()

	client := NewClient(server.URL)
	vec, err := client.DetectFace(context.Background(), []byte("image"))
	if err != nil {
		t.Fatalf("DetectFace failed: %v", err)
	}
	if !reflect.DeepEqual(vec, []float32{0.3, 0.4}) {
		t.Errorf("DetectFace = %v; want descriptor of the 0.91 face", vec)
	}
}

func TestDetectFaceNoFaces(t *testing.T) {
	server := newTestService(t, map[string]http.HandlerFunc{
		"/embed/face": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"faces_count": 0, "faces": []any{}})
		},
	})
	defer server.Close()

	client := NewClient(server.URL)
	vec, err := client.DetectFace(context.Background(), []byte("image"))
	if err != nil {
		t.Fatalf("DetectFace failed: %v", err)
	}
	if vec != nil {
		t.Errorf("no faces should yield nil descriptor, got %v", vec)
	}
}

func TestComputeEmbedding(t *testing.T) {
	server := newTestService(t, map[string]http.HandlerFunc{
		"/embed/image": func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(10 << 20); err != nil {
				t.Errorf("service did not receive multipart form: %v", err)
			}
			if _, _, err := r.FormFile("file"); err != nil {
				t.Errorf("missing file part: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"dim":       3,
				"embedding": []float32{0.5, 0.6, 0.7},
				"model":     "clip",
			})
		},
	})
	defer server.Close()

	client := NewClient(server.URL)
	vec, err := client.ComputeEmbedding(context.Background(), []byte("image"))
	if err != nil {
		t.Fatalf("ComputeEmbedding failed: %v", err)
	}
	if !reflect.DeepEqual(vec, []float32{0.5, 0.6, 0.7}) {
		t.Errorf("ComputeEmbedding = %v; want [0.5 0.6 0.7]", vec)
	}
}

func TestComputeEmbeddingEmptyResponse(t *testing.T) {
	server := newTestService(t, map[string]http.HandlerFunc{
		"/embed/image": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{}})
		},
	})
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.ComputeEmbedding(context.Background(), []byte("image")); err == nil {
		t.Error("empty embedding should be an error")
	}
}

func TestComputeEmbeddingServiceError(t *testing.T) {
	server := newTestService(t, map[string]http.HandlerFunc{
		"/embed/image": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		},
	})
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.ComputeEmbedding(context.Background(), []byte("image")); err == nil {
		t.Error("non-200 response should be an error")
	}
}

func TestReady(t *testing.T) {
	healthy := true
	server := newTestService(t, map[string]http.HandlerFunc{
		"/health": func(w http.ResponseWriter, r *http.Request) {
			if healthy {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusServiceUnavailable)
			}
		},
	})
	defer server.Close()

	client := NewClient(server.URL)
	if !client.Ready(context.Background()) {
		t.Error("healthy service should report ready")
	}

	// Result is cached, so flipping the service does not flip Ready yet.
	healthy = false
	if !client.Ready(context.Background()) {
		t.Error("health result should be cached")
	}
}

func TestReadyServiceDown(t *testing.T) {
	client := NewClient("http://127.0.0.1:1") // nothing listens here
	if client.Ready(context.Background()) {
		t.Error("unreachable service should report not ready")
	}
}
