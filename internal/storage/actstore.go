package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/vampirenirmal/redline/internal/schema"
)

// ActStore reads and writes act documents. Raw documents are migrated on
// load, so legacy files keep working without a rewrite pass; they are only
// rewritten in the new shape when saved.
type ActStore struct {
	store  Storage
	logger *slog.Logger
}

func NewActStore(store Storage) *ActStore {
	return &ActStore{
		store:  store,
		logger: slog.Default().With("component", "act_store"),
	}
}

func actPath(bookID, chapterID, actID string) string {
	return path.Join("acts", bookID, chapterID, actID+".json")
}

// LoadRaw reads an act document as a raw map, migrated but not validated.
// The review pipeline wants this form so malformed acts still get feedback.
func (s *ActStore) LoadRaw(ctx context.Context, bookID, chapterID, actID string) (map[string]any, error) {
	data, err := s.store.Load(ctx, actPath(bookID, chapterID, actID))
	if err != nil {
		return nil, fmt.Errorf("loading act %s: %w", actID, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing act %s: %w", actID, err)
	}
	return schema.Migrate(raw), nil
}

// Load reads, migrates and decodes an act into its typed form.
func (s *ActStore) Load(ctx context.Context, bookID, chapterID, actID string) (*schema.Act, error) {
	raw, err := s.LoadRaw(ctx, bookID, chapterID, actID)
	if err != nil {
		return nil, err
	}
	act, err := schema.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding act %s: %w", actID, err)
	}
	return act, nil
}

// Save validates and persists an act. Invalid documents are rejected; the
// store never writes a document that would fail to load cleanly.
func (s *ActStore) Save(ctx context.Context, act *schema.Act) error {
	if errs := schema.Validate(act); len(errs) > 0 {
		return fmt.Errorf("act %s failed validation: %s", act.ID, errs.Error())
	}

	data, err := json.MarshalIndent(act, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding act %s: %w", act.ID, err)
	}

	p := actPath(act.BookID, act.ChapterID, act.ID)
	if err := s.store.Save(ctx, p, data); err != nil {
		return fmt.Errorf("saving act %s: %w", act.ID, err)
	}

	s.logger.Debug("act saved",
		"act_id", act.ID,
		"path", p,
		"versions", len(act.Versions),
		"reviews", len(act.Reviews),
	)
	return nil
}

// LoadAll loads every act in the corpus, optionally scoped to one book.
// Unreadable documents are logged and skipped so one corrupt file does not
// take the series dashboard down.
func (s *ActStore) LoadAll(ctx context.Context, bookID string) ([]*schema.Act, error) {
	scope := "**"
	if bookID != "" {
		scope = bookID + "/**"
	}
	paths, err := s.store.List(ctx, path.Join("acts", scope, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing acts: %w", err)
	}
	sort.Strings(paths)

	acts := make([]*schema.Act, 0, len(paths))
	for _, p := range paths {
		data, err := s.store.Load(ctx, p)
		if err != nil {
			s.logger.Warn("skipping unreadable act file", "path", p, "error", err)
			continue
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			s.logger.Warn("skipping unparseable act file", "path", p, "error", err)
			continue
		}
		act, err := schema.Decode(schema.Migrate(raw))
		if err != nil {
			s.logger.Warn("skipping undecodable act file", "path", p, "error", err)
			continue
		}
		acts = append(acts, act)
	}
	return acts, nil
}

// Exists reports whether an act document is present on disk.
func (s *ActStore) Exists(ctx context.Context, bookID, chapterID, actID string) bool {
	return s.store.Exists(ctx, actPath(bookID, chapterID, actID))
}

// ParseActPath splits a corpus-relative act path back into its ids. Used by
// the watch worker to report which act changed.
func ParseActPath(p string) (bookID, chapterID, actID string, ok bool) {
	parts := strings.Split(path.Clean(filepathToSlash(p)), "/")
	if len(parts) != 4 || parts[0] != "acts" || !strings.HasSuffix(parts[3], ".json") {
		return "", "", "", false
	}
	return parts[1], parts[2], strings.TrimSuffix(parts[3], ".json"), true
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
