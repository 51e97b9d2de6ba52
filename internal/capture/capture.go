// Package capture defines the still-image source the kiosk reads from. The
// real camera lives in the browser; this contract lets the CLI and tests
// drive the pipeline from other sources, such as a directory of stills.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrNotActive is returned by Still when the source has not been started.
var ErrNotActive = errors.New("capture source is not active")

// State mirrors the camera lifecycle the kiosk UI observes.
type State struct {
	Active  bool
	Loading bool
	Err     error
}

// Source produces encoded stills on demand.
type Source interface {
	Start(ctx context.Context) error
	Stop()
	// Still returns the next encoded image, or ErrNotActive when the
	// source is stopped.
	Still(ctx context.Context) ([]byte, error)
	State() State
}

// DirectorySource cycles through the image files of a directory in name
// order. Used by the simulate command to replay captures.
type DirectorySource struct {
	dir string

	mu     sync.Mutex
	active bool
	files  []string
	next   int
	err    error
}

// NewDirectorySource creates a source over a directory of image files.
func NewDirectorySource(dir string) *DirectorySource {
	return &DirectorySource{dir: dir}
}

// Start scans the directory for image files.
func (s *DirectorySource) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.err = fmt.Errorf("reading capture directory: %w", err)
		return s.err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png", ".gif", ".bmp":
			files = append(files, filepath.Join(s.dir, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		s.err = fmt.Errorf("no image files in %s", s.dir)
		return s.err
	}

	s.files = files
	s.next = 0
	s.active = true
	s.err = nil
	return nil
}

// Stop deactivates the source.
func (s *DirectorySource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// Still returns the next image in the cycle.
func (s *DirectorySource) Still(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, ErrNotActive
	}

	path := s.files[s.next]
	s.next = (s.next + 1) % len(s.files)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading still %s: %w", path, err)
	}
	return data, nil
}

// Len returns how many files the source cycles through. Zero before Start.
func (s *DirectorySource) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// FileAt returns the path of the i-th file in cycle order.
func (s *DirectorySource) FileAt(i int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[i]
}

// State reports the lifecycle state.
func (s *DirectorySource) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Active: s.active, Err: s.err}
}
