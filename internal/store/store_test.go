package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// openTestStore opens an in-memory store and closes it with the test.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndFindRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	id, err := s.SaveRun(ctx, Run{
		Hash:             "h1",
		Source:           "talk.srt",
		CreatedAt:        created,
		OriginalDuration: 100,
		FinalDuration:    60,
		CompressionRatio: 0.4,
		GlobalSpeed:      1.25,
		TotalSegments:    40,
		KeptSegments:     30,
		MergedSegments:   12,
		ResultJSON:       `{"mode":"speed_first"}`,
	})
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if id == 0 {
		t.Error("SaveRun() returned zero id")
	}

	got, err := s.RunByHash(ctx, "h1")
	if err != nil {
		t.Fatalf("RunByHash() error = %v", err)
	}
	if got.Source != "talk.srt" {
		t.Errorf("Source = %v, want talk.srt", got.Source)
	}
	if got.KeptSegments != 30 || got.MergedSegments != 12 {
		t.Errorf("counts = %d/%d, want 30/12", got.KeptSegments, got.MergedSegments)
	}
	if got.GlobalSpeed != 1.25 {
		t.Errorf("GlobalSpeed = %v, want 1.25", got.GlobalSpeed)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestRunByHashNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.RunByHash(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("RunByHash() error = %v, want ErrNotFound", err)
	}
}

func TestSaveRunReplacesSameHash(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	firstID, err := s.SaveRun(ctx, Run{Hash: "h", Source: "a.srt", ResultJSON: "{}"})
	if err != nil {
		t.Fatal(err)
	}
	// Another insert in between moves the connection's last insert rowid
	otherID, err := s.SaveRun(ctx, Run{Hash: "other", Source: "o.srt", ResultJSON: "{}"})
	if err != nil {
		t.Fatal(err)
	}
	secondID, err := s.SaveRun(ctx, Run{Hash: "h", Source: "b.srt", ResultJSON: "{}"})
	if err != nil {
		t.Fatal(err)
	}

	if secondID != firstID {
		t.Errorf("SaveRun() id on update = %v, want %v", secondID, firstID)
	}
	if otherID == firstID {
		t.Errorf("SaveRun() reused id %v for a new hash", otherID)
	}

	got, err := s.RunByHash(ctx, "h")
	if err != nil {
		t.Fatalf("RunByHash() error = %v", err)
	}
	if got.ID != firstID {
		t.Errorf("ID = %v, want %v", got.ID, firstID)
	}
	if got.Source != "b.srt" {
		t.Errorf("Source = %v, want b.srt", got.Source)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns() returned %d runs, want 2", len(runs))
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, hash := range []string{"a", "b", "c"} {
		run := Run{Hash: hash, Source: hash + ".srt", CreatedAt: base.Add(time.Duration(i) * time.Hour), ResultJSON: "{}"}
		if _, err := s.SaveRun(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all", 0, []string{"c", "b", "a"}},
		{"limited", 2, []string{"c", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := s.ListRuns(ctx, tt.limit)
			if err != nil {
				t.Fatalf("ListRuns() error = %v", err)
			}
			if len(runs) != len(tt.want) {
				t.Fatalf("ListRuns() returned %d runs, want %d", len(runs), len(tt.want))
			}
			for i, hash := range tt.want {
				if runs[i].Hash != hash {
					t.Errorf("runs[%d].Hash = %v, want %v", i, runs[i].Hash, hash)
				}
			}
		})
	}
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runs.sqlite")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(strings.NewReader("hello"), []byte("target=0.5"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Fingerprint(strings.NewReader("hello"), []byte("target=0.5"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := Fingerprint(strings.NewReader("hello"), []byte("target=0.6"))
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != 64 {
		t.Errorf("Fingerprint() length = %d, want 64", len(a))
	}
	if a != b {
		t.Error("Fingerprint() not deterministic")
	}
	if a == c {
		t.Error("Fingerprint() ignores settings")
	}
}

func TestFingerprintFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.srt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	fromFile, err := FingerprintFile(path, nil)
	if err != nil {
		t.Fatalf("FingerprintFile() error = %v", err)
	}
	fromReader, _ := Fingerprint(strings.NewReader("hello"), nil)
	if fromFile != fromReader {
		t.Errorf("FingerprintFile() = %v, want %v", fromFile, fromReader)
	}

	if _, err := FingerprintFile(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("FingerprintFile() should fail for a missing file")
	}
}
