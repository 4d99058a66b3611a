package outline

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/vampirenirmal/redline/internal/schema"
)

// Registry resolves outline references against book-outline documents stored
// as <outlineId>.json in a single directory. Lookups are nil-on-not-found,
// never errors: an unresolvable reference simply means the act has no plan
// to compare against.
type Registry struct {
	dir    string
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*schema.BookOutline

	watcher *fsnotify.Watcher
	done    chan struct{}
}

func NewRegistry(dir string) *Registry {
	return &Registry{
		dir:    dir,
		logger: slog.Default().With("component", "outline_registry"),
		cache:  make(map[string]*schema.BookOutline),
	}
}

// Get loads a book outline by id, consulting the cache first. Returns nil
// when the outline does not exist or fails to parse.
func (r *Registry) Get(outlineID string) *schema.BookOutline {
	if outlineID == "" {
		return nil
	}

	r.mu.RLock()
	cached, ok := r.cache[outlineID]
	r.mu.RUnlock()
	if ok {
		return cached
	}

	outline := r.load(outlineID)

	r.mu.Lock()
	r.cache[outlineID] = outline
	r.mu.Unlock()

	return outline
}

func (r *Registry) load(outlineID string) *schema.BookOutline {
	// Prefer <id>.json; fall back to the legacy <id>.outline.json layout.
	candidates := []string{
		filepath.Join(r.dir, outlineID+".json"),
		filepath.Join(r.dir, outlineID+".outline.json"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				r.logger.Warn("reading outline file failed",
					"path", path,
					"error", err,
				)
			}
			continue
		}

		var outline schema.BookOutline
		if err := json.Unmarshal(data, &outline); err != nil {
			r.logger.Error("invalid outline document",
				"path", path,
				"error", err,
			)
			return nil
		}
		return &outline
	}

	return nil
}

// ResolveActOutline walks book -> chapter -> act. Nil at any step means a
// clean not-found, never an error.
func (r *Registry) ResolveActOutline(ref *schema.OutlineRef) *schema.ActOutline {
	if ref == nil {
		return nil
	}
	book := r.Get(ref.OutlineID)
	if book == nil {
		return nil
	}
	for ci := range book.Chapters {
		if book.Chapters[ci].ChapterID != ref.ChapterID {
			continue
		}
		for ai := range book.Chapters[ci].Acts {
			if book.Chapters[ci].Acts[ai].ActID == ref.ActID {
				return &book.Chapters[ci].Acts[ai]
			}
		}
		return nil
	}
	return nil
}

// Watch starts invalidating the cache whenever an outline file changes, so
// long-running processes pick up externally edited plans. Stop with Close.
func (r *Registry) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating outline watcher: %w", err)
	}
	if err := watcher.Add(r.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watching outline dir %s: %w", r.dir, err)
	}

	r.watcher = watcher
	r.done = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				r.invalidate()
				r.logger.Debug("outline cache invalidated",
					"trigger", event.Name,
					"op", event.Op.String(),
				)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.logger.Warn("outline watcher error", "error", err)
			case <-r.done:
				return
			}
		}
	}()

	return nil
}

func (r *Registry) invalidate() {
	r.mu.Lock()
	r.cache = make(map[string]*schema.BookOutline)
	r.mu.Unlock()
}

// Close stops the watcher if one is running.
func (r *Registry) Close() error {
	if r.done != nil {
		close(r.done)
		r.done = nil
	}
	if r.watcher != nil {
		err := r.watcher.Close()
		r.watcher = nil
		return err
	}
	return nil
}
