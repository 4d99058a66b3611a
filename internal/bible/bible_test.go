package bible

import (
	"context"
	"testing"

	"github.com/vampirenirmal/redline/internal/schema"
	"github.com/vampirenirmal/redline/internal/storage"
)

func TestGetForBookMissingFile(t *testing.T) {
	svc := NewService(storage.NewFileSystem(t.TempDir()))

	got := svc.GetForBook(context.Background(), "book1")
	if got == nil {
		t.Fatal("expected empty bible, got nil")
	}
	if len(got.PromiseRegistry) != 0 || len(got.ContinuityRegistry) != 0 {
		t.Errorf("expected empty registries: %+v", got)
	}
}

func TestGetForBookCorruptFile(t *testing.T) {
	fs := storage.NewFileSystem(t.TempDir())
	if err := fs.Save(context.Background(), "story-bible-book1.json", []byte("{broken")); err != nil {
		t.Fatal(err)
	}

	svc := NewService(fs)
	got := svc.GetForBook(context.Background(), "book1")
	if len(got.PromiseRegistry) != 0 {
		t.Errorf("corrupt bible should degrade to empty: %+v", got)
	}
}

func TestAddPromiseRoundTrip(t *testing.T) {
	svc := NewService(storage.NewFileSystem(t.TempDir()))
	ctx := context.Background()

	promise := schema.ReaderPromise{
		PromiseID:   "p1",
		Strength:    schema.PromiseStructural,
		Status:      schema.PromiseIntroduced,
		PromiseText: "The crater's origin will be revealed.",
		IntroducedAt: schema.PromisePointer{
			BookID: "book1", ChapterID: "ch1", ActID: "act-1",
		},
	}
	if err := svc.AddPromise(ctx, "book1", promise); err != nil {
		t.Fatal(err)
	}

	got := svc.GetForBook(ctx, "book1")
	if len(got.PromiseRegistry) != 1 || got.PromiseRegistry[0].PromiseID != "p1" {
		t.Fatalf("registry = %+v", got.PromiseRegistry)
	}

	// Bibles are per book.
	other := svc.GetForBook(ctx, "book2")
	if len(other.PromiseRegistry) != 0 {
		t.Errorf("book2 registry should be empty: %+v", other.PromiseRegistry)
	}
}

func TestAddWarning(t *testing.T) {
	svc := NewService(storage.NewFileSystem(t.TempDir()))
	ctx := context.Background()

	warning := schema.ContinuityWarning{
		WarningID: "w1",
		Scope:     schema.ScopeBook,
		Category:  schema.CategoryTimeline,
		Severity:  schema.SeverityMedium,
		Message:   "Two winters pass in one chapter.",
		Status:    schema.WarningOpen,
	}
	if err := svc.AddWarning(ctx, "book1", warning); err != nil {
		t.Fatal(err)
	}
	if err := svc.AddWarning(ctx, "book1", warning); err != nil {
		t.Fatal(err)
	}

	got := svc.GetForBook(ctx, "book1")
	if len(got.ContinuityRegistry) != 2 {
		t.Fatalf("registry = %d entries", len(got.ContinuityRegistry))
	}
}
