package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/blob"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/blob/postgres"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/config"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/extractor"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/pipeline"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/store"
)

// openBlobStore selects the blob backend: PostgreSQL when DATABASE_URL is
// set, the data directory otherwise. The closer is non-nil only for backends
// that hold a connection.
func openBlobStore(cfg *config.Config) (blob.Store, io.Closer, error) {
	if cfg.Storage.DatabaseURL != "" {
		fmt.Println("Using PostgreSQL blob storage")
		pg, err := postgres.New(cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
		}
		return pg, pg, nil
	}

	fmt.Printf("Using file blob storage in %s\n", cfg.Storage.DataDir)
	fs, err := blob.NewFileStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening data directory: %w", err)
	}
	return fs, nil, nil
}

// openPipeline wires the store and pipeline the way every command needs them.
func openPipeline(ctx context.Context, cfg *config.Config) (*store.Store, *pipeline.Pipeline, io.Closer, error) {
	blobs, closer, err := openBlobStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	st := store.Open(ctx, blobs)
	client := extractor.NewClient(cfg.Extractor.URL)
	pl := pipeline.New(st, client, client, cfg.Thresholds.Matching)
	return st, pl, closer, nil
}

// closeQuietly closes a closer when one exists.
func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
