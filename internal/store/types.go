package store

import "time"

// RecordType distinguishes the two directions of an attendance record.
type RecordType string

const (
	RecordEntry RecordType = "entry"
	RecordExit  RecordType = "exit"
)

// PresenceStatus is the derived presence state carried on a profile. It must
// always agree with the type of the attendee's most recent record; only the
// store transition logic writes it.
type PresenceStatus string

const (
	StatusIn  PresenceStatus = "in"
	StatusOut PresenceStatus = "out"
)

// VectorKind selects which stored vector a catalog export reads.
type VectorKind string

const (
	VectorFace      VectorKind = "face"
	VectorEmbedding VectorKind = "embedding"
)

// AttendanceRecord is one immutable check-in or check-out event. Records are
// never mutated or individually deleted, only bulk-cleared.
type AttendanceRecord struct {
	ID         string     `json:"id"`
	AttendeeID string     `json:"attendeeId"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Image      []byte     `json:"image"`
	Timestamp  time.Time  `json:"timestamp"`
	Type       RecordType `json:"type"`
	FaceVector []float32  `json:"faceVector,omitempty"`
	Embedding  []float32  `json:"embedding,omitempty"`
}

// AttendeeProfile aggregates one physical attendee: latest appearance,
// latest vectors (last write wins per kind) and presence state. Its ID is
// shared with the record that first created it.
type AttendeeProfile struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	LastImage  []byte         `json:"lastImage"`
	FaceVector []float32      `json:"faceVector,omitempty"`
	Embedding  []float32      `json:"embedding,omitempty"`
	Status     PresenceStatus `json:"currentStatus"`
	LastEntry  *time.Time     `json:"lastEntry,omitempty"`
	LastExit   *time.Time     `json:"lastExit,omitempty"`
}

// NewRecord carries the caller-supplied fields of a record; the store
// assigns ID and timestamp.
type NewRecord struct {
	AttendeeID string
	Name       string
	Email      string
	Image      []byte
	Type       RecordType
	FaceVector []float32
	Embedding  []float32
}

// ProfilePatch is a partial profile update. Nil pointer fields and nil
// slices leave the existing value untouched; only supplied fields win.
type ProfilePatch struct {
	ID         string
	Name       *string
	Email      *string
	LastImage  []byte
	FaceVector []float32
	Embedding  []float32
	Status     *PresenceStatus
	LastEntry  *time.Time
	LastExit   *time.Time
}
