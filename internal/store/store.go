// Package store owns the durable attendance collections: the newest-first
// record log and the attendee profiles. All access goes through store
// operations; every mutating call fully serializes the affected collection
// to its blob before returning.
package store

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/blob"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/matcher"
)

const (
	recordsKey  = "attendance_records"
	profilesKey = "attendee_profiles"
)

// Store holds both collections in memory and mirrors them into the blob
// store on every mutation.
type Store struct {
	mu       sync.Mutex
	blobs    blob.Store
	records  []AttendanceRecord // index 0 is always the most recent
	profiles []AttendeeProfile  // insertion order, semantically unordered

	now func() time.Time
}

// Open loads both collections from the blob store. A missing or malformed
// blob degrades to an empty collection; corruption is logged, never fatal.
func Open(ctx context.Context, blobs blob.Store) *Store {
	s := &Store{
		blobs: blobs,
		now:   time.Now,
	}
	s.records = loadCollection[AttendanceRecord](ctx, blobs, recordsKey)
	s.profiles = loadCollection[AttendeeProfile](ctx, blobs, profilesKey)
	return s
}

// loadCollection reads and decodes one blob, degrading to empty on any failure.
func loadCollection[T any](ctx context.Context, blobs blob.Store, key string) []T {
	data, err := blobs.Get(ctx, key)
	if err != nil {
		log.Printf("warning: failed to read blob %s, starting empty: %v", key, err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("warning: blob %s is corrupt, starting empty: %v", key, err)
		return nil
	}
	return items
}

// AddRecord assigns a fresh ID and timestamp, prepends the record and
// persists the log. Timestamps never go backwards even if the wall clock
// does, keeping the log ordering consistent with insertion order.
func (s *Store) AddRecord(ctx context.Context, partial NewRecord) AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	if len(s.records) > 0 && ts.Before(s.records[0].Timestamp) {
		ts = s.records[0].Timestamp
	}

	record := AttendanceRecord{
		ID:         uuid.NewString(),
		AttendeeID: partial.AttendeeID,
		Name:       partial.Name,
		Email:      partial.Email,
		Image:      partial.Image,
		Timestamp:  ts,
		Type:       partial.Type,
		FaceVector: partial.FaceVector,
		Embedding:  partial.Embedding,
	}

	s.records = append([]AttendanceRecord{record}, s.records...)
	s.persist(ctx, recordsKey, s.records)
	return record
}

// UpdateProfile merges the patch over an existing profile, or creates a new
// profile with empty defaults when the ID is unknown. Nil patch fields never
// erase existing values. Persists either way.
func (s *Store) UpdateProfile(ctx context.Context, patch ProfilePatch) AttendeeProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.profiles {
		if s.profiles[i].ID == patch.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.profiles = append(s.profiles, AttendeeProfile{
			ID:     patch.ID,
			Status: StatusOut,
		})
		idx = len(s.profiles) - 1
	}

	p := &s.profiles[idx]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.LastImage != nil {
		p.LastImage = patch.LastImage
	}
	if patch.FaceVector != nil {
		p.FaceVector = patch.FaceVector
	}
	if patch.Embedding != nil {
		p.Embedding = patch.Embedding
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.LastEntry != nil {
		p.LastEntry = patch.LastEntry
	}
	if patch.LastExit != nil {
		p.LastExit = patch.LastExit
	}

	s.persist(ctx, profilesKey, s.profiles)
	return *p
}

// Profile returns the profile with the given ID.
func (s *Store) Profile(id string) (AttendeeProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.profiles {
		if s.profiles[i].ID == id {
			return s.profiles[i], true
		}
	}
	return AttendeeProfile{}, false
}

// ProfileByEmail returns the first profile whose email matches
// case-insensitively, ignoring surrounding whitespace.
func (s *Store) ProfileByEmail(email string) (AttendeeProfile, bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		return AttendeeProfile{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.profiles {
		if strings.EqualFold(strings.TrimSpace(s.profiles[i].Email), email) {
			return s.profiles[i], true
		}
	}
	return AttendeeProfile{}, false
}

// Profiles returns a snapshot of all profiles.
func (s *Store) Profiles() []AttendeeProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]AttendeeProfile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// RecentRecords returns up to limit records, most recent first. The log is
// already newest-first so this is a plain prefix.
func (s *Store) RecentRecords(limit int) []AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > len(s.records) {
		limit = len(s.records)
	}
	out := make([]AttendanceRecord, limit)
	copy(out, s.records[:limit])
	return out
}

// LatestRecord returns the most recent record attributed to an attendee.
func (s *Store) LatestRecord(attendeeID string) (AttendanceRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].AttendeeID == attendeeID {
			return s.records[i], true
		}
	}
	return AttendanceRecord{}, false
}

// VectorCatalog exports (id, vector) pairs for every profile carrying the
// requested vector kind. The returned slice is a snapshot; later profile
// updates replace vectors wholesale and never mutate the exported ones.
func (s *Store) VectorCatalog(kind VectorKind) []matcher.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	var catalog []matcher.Candidate
	for i := range s.profiles {
		var vec []float32
		switch kind {
		case VectorFace:
			vec = s.profiles[i].FaceVector
		case VectorEmbedding:
			vec = s.profiles[i].Embedding
		}
		if len(vec) == 0 {
			continue
		}
		catalog = append(catalog, matcher.Candidate{
			AttendeeID: s.profiles[i].ID,
			Vector:     vec,
		})
	}
	return catalog
}

// ImageCatalog exports (id, last image) pairs for every profile that has a
// stored appearance. Feeds the pixel fallback stage.
func (s *Store) ImageCatalog() []ProfileImage {
	s.mu.Lock()
	defer s.mu.Unlock()

	var catalog []ProfileImage
	for i := range s.profiles {
		if len(s.profiles[i].LastImage) == 0 {
			continue
		}
		catalog = append(catalog, ProfileImage{
			AttendeeID: s.profiles[i].ID,
			Image:      s.profiles[i].LastImage,
		})
	}
	return catalog
}

// ProfileImage is one (attendee id, last image) pair for pixel matching.
type ProfileImage struct {
	AttendeeID string
	Image      []byte
}

// TodayEntryRecord returns the most recent ENTRY record for the attendee
// whose timestamp falls on the current calendar day in local time. Used only
// by the same-day exit gate.
func (s *Store) TodayEntryRecord(attendeeID string) (AttendanceRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().Local()
	y, m, d := today.Date()

	for i := range s.records {
		if s.records[i].Type != RecordEntry {
			continue
		}
		if s.records[i].AttendeeID != attendeeID {
			continue
		}
		ry, rm, rd := s.records[i].Timestamp.Local().Date()
		if ry == y && rm == m && rd == d {
			return s.records[i], true
		}
	}
	return AttendanceRecord{}, false
}

// Counts returns record count, profile count and how many attendees are
// currently marked present.
func (s *Store) Counts() (records, profiles, present int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.profiles {
		if s.profiles[i].Status == StatusIn {
			present++
		}
	}
	return len(s.records), len(s.profiles), present
}

// ClearAll empties both collections and removes their blobs.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.profiles = nil

	if err := s.blobs.Remove(ctx, recordsKey); err != nil {
		return err
	}
	if err := s.blobs.Remove(ctx, profilesKey); err != nil {
		return err
	}
	return nil
}

// persist serializes a collection into its blob. Write failures are logged
// and not propagated: memory keeps the mutation and the durability gap is
// accepted until the next successful write. Caller must hold the lock.
func (s *Store) persist(ctx context.Context, key string, collection any) {
	data, err := json.Marshal(collection)
	if err != nil {
		log.Printf("warning: failed to serialize %s: %v", key, err)
		return
	}
	if err := s.blobs.Set(ctx, key, data); err != nil {
		log.Printf("warning: failed to persist %s: %v", key, err)
	}
}
