package storage

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestFileDraftStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	drafts := NewFileDraftStore(NewFileSystem(t.TempDir()))

	if err := drafts.Save(ctx, "act-1", "working text"); err != nil {
		t.Fatal(err)
	}
	got, err := drafts.Load(ctx, "act-1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "working text" {
		t.Errorf("loaded %q", got)
	}

	if err := drafts.Save(ctx, "act-1", "newer text"); err != nil {
		t.Fatal(err)
	}
	got, _ = drafts.Load(ctx, "act-1")
	if got != "newer text" {
		t.Errorf("overwrite: loaded %q", got)
	}
}

func TestFileDraftStoreMissing(t *testing.T) {
	ctx := context.Background()
	drafts := NewFileDraftStore(NewFileSystem(t.TempDir()))

	got, err := drafts.Load(ctx, "never-saved")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("missing draft should be empty, got %q", got)
	}

	// Discarding a draft that never existed is a no-op.
	if err := drafts.Discard(ctx, "never-saved"); err != nil {
		t.Fatal(err)
	}
}

func TestFileDraftStoreDiscard(t *testing.T) {
	ctx := context.Background()
	drafts := NewFileDraftStore(NewFileSystem(t.TempDir()))

	if err := drafts.Save(ctx, "act-1", "scratch"); err != nil {
		t.Fatal(err)
	}
	if err := drafts.Discard(ctx, "act-1"); err != nil {
		t.Fatal(err)
	}
	got, _ := drafts.Load(ctx, "act-1")
	if got != "" {
		t.Errorf("discarded draft should be empty, got %q", got)
	}
}

func TestFileDraftStoreEmptyActID(t *testing.T) {
	ctx := context.Background()
	drafts := NewFileDraftStore(NewFileSystem(t.TempDir()))

	if err := drafts.Save(ctx, "", "text"); err == nil {
		t.Error("expected error for empty act id")
	}
}

type recordingDraftStore struct {
	mu    sync.Mutex
	saves map[string][]string
}

func (r *recordingDraftStore) Save(ctx context.Context, actID, snapshot string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saves == nil {
		r.saves = make(map[string][]string)
	}
	r.saves[actID] = append(r.saves[actID], snapshot)
	return nil
}

func (r *recordingDraftStore) Load(ctx context.Context, actID string) (string, error) {
	return "", nil
}

func (r *recordingDraftStore) Discard(ctx context.Context, actID string) error {
	return nil
}

func (r *recordingDraftStore) savesFor(actID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.saves[actID]...)
}

func TestDraftFlusherCoalesces(t *testing.T) {
	rec := &recordingDraftStore{}
	f := NewDraftFlusher(rec, time.Hour, nil)

	f.Queue("act-1", "first")
	f.Queue("act-1", "second")
	f.Queue("act-1", "final")

	if err := f.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}

	saves := rec.savesFor("act-1")
	if len(saves) != 1 || saves[0] != "final" {
		t.Fatalf("expected one save of the latest snapshot, got %v", saves)
	}
}

func TestDraftFlusherTimer(t *testing.T) {
	rec := &recordingDraftStore{}
	f := NewDraftFlusher(rec, 10*time.Millisecond, nil)
	defer f.Close(context.Background())

	f.Queue("act-1", "auto")

	deadline := time.After(2 * time.Second)
	for len(rec.savesFor("act-1")) == 0 {
		select {
		case <-deadline:
			t.Fatal("timer flush never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}
	if got := rec.savesFor("act-1"); got[0] != "auto" {
		t.Errorf("flushed %q", got[0])
	}
}

func TestDraftFlusherCloseFlushesAndStops(t *testing.T) {
	rec := &recordingDraftStore{}
	f := NewDraftFlusher(rec, time.Hour, nil)

	f.Queue("act-1", "pending")
	if err := f.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := rec.savesFor("act-1"); len(got) != 1 || got[0] != "pending" {
		t.Fatalf("close should flush pending snapshots, got %v", got)
	}

	f.Queue("act-2", "late")
	if err := f.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := rec.savesFor("act-2"); len(got) != 0 {
		t.Fatalf("queue after close should be dropped, got %v", got)
	}
}
