// Package bible maintains the per-book story bible: the registries of
// reader promises and continuity warnings that outlive any single act.
package bible

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/vampirenirmal/redline/internal/schema"
	"github.com/vampirenirmal/redline/internal/storage"
)

// Service reads and writes story bibles. A missing or corrupt bible file
// degrades to an empty bible rather than an error; the registries are
// advisory and the author can always rebuild them.
type Service struct {
	store  storage.Storage
	logger *slog.Logger
}

func NewService(store storage.Storage) *Service {
	return &Service{
		store:  store,
		logger: slog.Default().With("component", "story_bible"),
	}
}

func biblePath(bookID string) string {
	return fmt.Sprintf("story-bible-%s.json", bookID)
}

// GetForBook loads the bible for a book, or an empty one when no file
// exists or the file fails to parse.
func (s *Service) GetForBook(ctx context.Context, bookID string) *schema.StoryBible {
	empty := &schema.StoryBible{
		PromiseRegistry:    []schema.ReaderPromise{},
		ContinuityRegistry: []schema.ContinuityWarning{},
	}

	data, err := s.store.Load(ctx, biblePath(bookID))
	if err != nil {
		return empty
	}

	var bible schema.StoryBible
	if err := json.Unmarshal(data, &bible); err != nil {
		s.logger.Error("story bible is corrupt, starting empty",
			"book_id", bookID,
			"error", err,
		)
		return empty
	}
	if bible.PromiseRegistry == nil {
		bible.PromiseRegistry = []schema.ReaderPromise{}
	}
	if bible.ContinuityRegistry == nil {
		bible.ContinuityRegistry = []schema.ContinuityWarning{}
	}
	return &bible
}

// SaveForBook persists the bible for a book.
func (s *Service) SaveForBook(ctx context.Context, bookID string, bible *schema.StoryBible) error {
	data, err := json.MarshalIndent(bible, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding story bible for %s: %w", bookID, err)
	}
	if err := s.store.Save(ctx, biblePath(bookID), data); err != nil {
		return fmt.Errorf("saving story bible for %s: %w", bookID, err)
	}
	return nil
}

// AddPromise appends a promise to the book's registry.
func (s *Service) AddPromise(ctx context.Context, bookID string, promise schema.ReaderPromise) error {
	bible := s.GetForBook(ctx, bookID)
	bible.PromiseRegistry = append(bible.PromiseRegistry, promise)
	return s.SaveForBook(ctx, bookID, bible)
}

// AddWarning appends a continuity warning to the book's registry.
func (s *Service) AddWarning(ctx context.Context, bookID string, warning schema.ContinuityWarning) error {
	bible := s.GetForBook(ctx, bookID)
	bible.ContinuityRegistry = append(bible.ContinuityRegistry, warning)
	return s.SaveForBook(ctx, bookID, bible)
}
