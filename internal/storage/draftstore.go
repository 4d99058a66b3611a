package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DraftStore holds in-progress text separately from the immutable version
// history. A draft is scratch space; nothing reads it back into the act
// until the author commits a version.
type DraftStore interface {
	Save(ctx context.Context, actID string, snapshot string) error
	Load(ctx context.Context, actID string) (string, error)
	Discard(ctx context.Context, actID string) error
}

// FileDraftStore keeps one file per act under drafts/.
type FileDraftStore struct {
	storage Storage
}

func NewFileDraftStore(storage Storage) *FileDraftStore {
	return &FileDraftStore{storage: storage}
}

func draftPath(actID string) string {
	return fmt.Sprintf("drafts/%s.txt", actID)
}

func (d *FileDraftStore) Save(ctx context.Context, actID string, snapshot string) error {
	if actID == "" {
		return fmt.Errorf("saving draft: empty act id")
	}
	return d.storage.Save(ctx, draftPath(actID), []byte(snapshot))
}

// Load returns the stored snapshot, or "" when no draft exists.
func (d *FileDraftStore) Load(ctx context.Context, actID string) (string, error) {
	if actID == "" || !d.storage.Exists(ctx, draftPath(actID)) {
		return "", nil
	}
	data, err := d.storage.Load(ctx, draftPath(actID))
	if err != nil {
		return "", fmt.Errorf("loading draft for %s: %w", actID, err)
	}
	return string(data), nil
}

func (d *FileDraftStore) Discard(ctx context.Context, actID string) error {
	if actID == "" || !d.storage.Exists(ctx, draftPath(actID)) {
		return nil
	}
	return d.storage.Delete(ctx, draftPath(actID))
}

// DraftFlusher coalesces rapid snapshot updates and writes each act's latest
// snapshot once the stream goes quiet for the configured interval. The
// interval is a parameter so callers tune it to their editing cadence.
type DraftFlusher struct {
	store    DraftStore
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[string]string
	timer   *time.Timer
	closed  bool
}

func NewDraftFlusher(store DraftStore, interval time.Duration, logger *slog.Logger) *DraftFlusher {
	if logger == nil {
		logger = slog.Default()
	}
	return &DraftFlusher{
		store:    store,
		interval: interval,
		logger:   logger.With("component", "draft_flusher"),
		pending:  make(map[string]string),
	}
}

// Queue records the latest snapshot for an act and arms the flush timer.
// Later snapshots for the same act replace earlier unflushed ones.
func (f *DraftFlusher) Queue(actID, snapshot string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.pending[actID] = snapshot
	if f.timer == nil {
		f.timer = time.AfterFunc(f.interval, f.flushTimer)
	} else {
		f.timer.Reset(f.interval)
	}
}

func (f *DraftFlusher) flushTimer() {
	if err := f.Flush(context.Background()); err != nil {
		f.logger.Warn("draft flush failed", "error", err)
	}
}

// Flush writes every pending snapshot immediately.
func (f *DraftFlusher) Flush(ctx context.Context) error {
	f.mu.Lock()
	batch := f.pending
	f.pending = make(map[string]string)
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.mu.Unlock()

	var firstErr error
	for actID, snapshot := range batch {
		if err := f.store.Save(ctx, actID, snapshot); err != nil {
			f.logger.Warn("saving draft snapshot", "act_id", actID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close flushes whatever is pending and stops the timer. The flusher must
// not be queued to after Close.
func (f *DraftFlusher) Close(ctx context.Context) error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return f.Flush(ctx)
}
