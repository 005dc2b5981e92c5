package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/chaosgame/pkg/errors"
	"github.com/matzehuels/chaosgame/pkg/pipeline"
)

func testRecord(t *testing.T, age time.Duration, ttl time.Duration) *Record {
	t.Helper()
	opts := pipeline.Options{Preset: "1", Points: 10}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	rec := NewRecord(opts, nil, ttl)
	rec.CreatedAt = rec.CreatedAt.Add(-age)
	rec.ExpiresAt = rec.CreatedAt.Add(ttl)
	return rec
}

// exerciseStore runs the behavior every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	older := testRecord(t, 2*time.Hour, DefaultTTL)
	newer := testRecord(t, time.Hour, DefaultTTL)
	expired := testRecord(t, 2*time.Hour, time.Hour)
	for _, rec := range []*Record{older, newer, expired} {
		if err := s.Save(ctx, rec); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	got, err := s.Get(ctx, older.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Preset != "Sierpinski Triangle" || got.Points != 10 {
		t.Errorf("Get() = %+v", got)
	}

	if _, err := s.Get(ctx, expired.ID); !errors.Is(err, errors.ErrCodeRenderNotFound) {
		t.Errorf("Get(expired) error = %v, want RENDER_NOT_FOUND", err)
	}
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, errors.ErrCodeRenderNotFound) {
		t.Errorf("Get(missing) error = %v, want RENDER_NOT_FOUND", err)
	}

	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() = %d records, want 2", len(list))
	}
	if list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Error("List() should return newest first")
	}

	list, err = s.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("List(1) = %d records, want 1", len(list))
	}

	if err := s.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup() error: %v", err)
	}
	if err := s.Delete(ctx, older.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := s.Delete(ctx, older.ID); err != nil {
		t.Errorf("Delete() of missing record should not fail: %v", err)
	}
	if _, err := s.Get(ctx, older.ID); err == nil {
		t.Error("Get() after Delete() should fail")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)

	if len(s.records) != 1 {
		t.Errorf("records after cleanup and delete = %d, want 1", len(s.records))
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if s.Path() != dir {
		t.Errorf("Path() = %s, want %s", s.Path(), dir)
	}
	exerciseStore(t, s)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("files after cleanup and delete = %d, want 1", len(entries))
	}
}

func TestFileStoreRejectsBadID(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(context.Background(), "../escape"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Get(../escape) error = %v, want INVALID_INPUT", err)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("CHAOSGAME_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("CHAOSGAME_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	db := "chaosgame_test_" + time.Now().Format("20060102150405")
	s, err := NewMongoStore(ctx, uri, db)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = s.client.Database(db).Drop(ctx)
		s.Close()
	}()
	exerciseStore(t, s)
}

func TestRecordOptions(t *testing.T) {
	rec := testRecord(t, 0, DefaultTTL)
	opts := rec.Options()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("reconstructed options invalid: %v", err)
	}
	if opts.Game != rec.Game || opts.Seed != rec.Seed || opts.Points != rec.Points {
		t.Errorf("Options() = %+v, want fields of %+v", opts, rec)
	}
}

func TestNewRecordUsesResult(t *testing.T) {
	opts := pipeline.Options{Points: 5}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	res := &pipeline.Result{
		PointsHash: "abc",
		Stats:      pipeline.Stats{Points: 5, EmptySteps: 1},
		Controls:   opts.Controls,
	}
	rec := NewRecord(opts, res, time.Hour)
	if rec.ID == "" {
		t.Error("ID should be set")
	}
	if rec.PointsHash != "abc" || rec.Stats.EmptySteps != 1 {
		t.Errorf("record did not take result fields: %+v", rec)
	}
	if rec.IsExpired() {
		t.Error("fresh record should not be expired")
	}
}
