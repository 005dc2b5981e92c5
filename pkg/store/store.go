// Package store keeps a history of rendered attractors.
//
// Every render the server produces is recorded with the options that
// produced it and the resulting statistics, so a render can be inspected or
// reproduced later. Points and artifacts themselves live in the cache; a
// record only holds what is needed to regenerate them.
//
// # Backends
//
//   - [MemoryStore]: in-process storage for development and tests
//   - [FileStore]: JSON files in a directory, for the CLI
//   - [MongoStore]: a MongoDB collection for multi-instance deployments
//
// # Usage
//
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "chaosgame")
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	rec := store.NewRecord(opts, result, store.DefaultTTL)
//	if err := st.Save(ctx, rec); err != nil {
//	    return err
//	}
//	recent, err := st.List(ctx, 20)
package store

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/chaosgame/pkg/core/game"
	"github.com/matzehuels/chaosgame/pkg/errors"
	"github.com/matzehuels/chaosgame/pkg/pipeline"
)

// Default values.
const (
	// DefaultTTL is how long records are kept.
	DefaultTTL = 30 * 24 * time.Hour

	// DefaultListLimit is used when List is called with a non-positive limit.
	DefaultListLimit = 50
)

// Record describes one render.
type Record struct {
	ID         string         `json:"id" bson:"_id"`
	Game       string         `json:"game" bson:"game"`
	Preset     string         `json:"preset,omitempty" bson:"preset,omitempty"`
	Controls   game.Controls  `json:"controls" bson:"controls"`
	Points     int            `json:"points" bson:"points"`
	Seed       uint64         `json:"seed" bson:"seed"`
	Width      int            `json:"width" bson:"width"`
	Height     int            `json:"height" bson:"height"`
	Formats    []string       `json:"formats" bson:"formats"`
	PointsHash string         `json:"points_hash,omitempty" bson:"points_hash,omitempty"`
	Stats      pipeline.Stats `json:"stats" bson:"stats"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
	ExpiresAt  time.Time      `json:"expires_at" bson:"expires_at"`
}

// NewRecord builds a record for a finished pipeline run. opts must be the
// validated options the run used.
func NewRecord(opts pipeline.Options, res *pipeline.Result, ttl time.Duration) *Record {
	now := time.Now().UTC()
	rec := &Record{
		ID:        uuid.NewString(),
		Game:      opts.Game,
		Preset:    opts.Preset,
		Controls:  opts.Controls.Clone(),
		Points:    opts.Points,
		Seed:      opts.Seed,
		Width:     opts.Width,
		Height:    opts.Height,
		Formats:   slices.Clone(opts.Formats),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if res != nil {
		rec.PointsHash = res.PointsHash
		rec.Stats = res.Stats
		rec.Controls = res.Controls.Clone()
	}
	return rec
}

// IsExpired reports whether the record has outlived its TTL.
func (r *Record) IsExpired() bool {
	return time.Now().After(r.ExpiresAt)
}

// Options reconstructs pipeline options that reproduce the render.
func (r *Record) Options() pipeline.Options {
	return pipeline.Options{
		Game:     r.Game,
		Controls: r.Controls.Clone(),
		Points:   r.Points,
		Seed:     r.Seed,
		Width:    r.Width,
		Height:   r.Height,
		Formats:  slices.Clone(r.Formats),
	}
}

// Store is the interface for record storage backends.
type Store interface {
	// Get retrieves a record by ID. Missing and expired records yield an
	// error with code RENDER_NOT_FOUND.
	Get(ctx context.Context, id string) (*Record, error)

	// Save stores or replaces a record.
	Save(ctx context.Context, rec *Record) error

	// List returns up to limit unexpired records, newest first.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired records.
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeRenderNotFound, "render %q not found", id)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// newestFirst sorts records by creation time, newest first, and truncates
// the result to limit.
func newestFirst(recs []*Record, limit int) []*Record {
	slices.SortFunc(recs, func(a, b *Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
