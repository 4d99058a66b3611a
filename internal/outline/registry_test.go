package outline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vampirenirmal/redline/internal/schema"
)

const bookOutlineJSON = `{
  "outlineId": "book1-outline",
  "seriesId": "iron-season",
  "bookId": "book1",
  "bookTitle": "The Iron Season",
  "version": 1,
  "chapters": [
    {
      "chapterId": "ch1",
      "chapterNumber": 1,
      "title": "Embers",
      "acts": [
        {
          "actId": "act-1",
          "actNumber": 1,
          "title": "Threshold",
          "summary": "The hero leaves home.",
          "keyBeats": [
            {"text": "The hero crosses the threshold", "importance": "critical"}
          ]
        }
      ]
    }
  ]
}`

func writeOutlineFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRegistryGet(t *testing.T) {
	dir := t.TempDir()
	writeOutlineFile(t, dir, "book1-outline.json", bookOutlineJSON)

	r := NewRegistry(dir)

	got := r.Get("book1-outline")
	if got == nil {
		t.Fatal("expected outline, got nil")
	}
	if got.BookTitle != "The Iron Season" {
		t.Errorf("title = %q", got.BookTitle)
	}

	if r.Get("no-such-outline") != nil {
		t.Error("missing outline should resolve to nil")
	}
	if r.Get("") != nil {
		t.Error("empty id should resolve to nil")
	}
}

func TestRegistryGetLegacySuffix(t *testing.T) {
	dir := t.TempDir()
	writeOutlineFile(t, dir, "book1-outline.outline.json", bookOutlineJSON)

	r := NewRegistry(dir)
	if r.Get("book1-outline") == nil {
		t.Fatal("expected legacy .outline.json layout to resolve")
	}
}

func TestRegistryGetInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeOutlineFile(t, dir, "broken.json", "{not json")

	r := NewRegistry(dir)
	if r.Get("broken") != nil {
		t.Fatal("unparseable outline should resolve to nil")
	}
}

func TestResolveActOutline(t *testing.T) {
	dir := t.TempDir()
	writeOutlineFile(t, dir, "book1-outline.json", bookOutlineJSON)

	r := NewRegistry(dir)

	tests := []struct {
		name string
		ref  *schema.OutlineRef
		want bool
	}{
		{"full path resolves", &schema.OutlineRef{OutlineID: "book1-outline", ChapterID: "ch1", ActID: "act-1"}, true},
		{"unknown act", &schema.OutlineRef{OutlineID: "book1-outline", ChapterID: "ch1", ActID: "act-9"}, false},
		{"unknown chapter", &schema.OutlineRef{OutlineID: "book1-outline", ChapterID: "ch9", ActID: "act-1"}, false},
		{"unknown outline", &schema.OutlineRef{OutlineID: "ghost", ChapterID: "ch1", ActID: "act-1"}, false},
		{"nil ref", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ResolveActOutline(tt.ref)
			if (got != nil) != tt.want {
				t.Fatalf("resolved = %v, want resolved=%v", got, tt.want)
			}
			if got != nil && got.Title != "Threshold" {
				t.Errorf("act title = %q", got.Title)
			}
		})
	}
}

func TestRegistryCachesLookups(t *testing.T) {
	dir := t.TempDir()
	writeOutlineFile(t, dir, "book1-outline.json", bookOutlineJSON)

	r := NewRegistry(dir)
	first := r.Get("book1-outline")
	if first == nil {
		t.Fatal("expected outline")
	}

	// Removing the file must not affect cached reads.
	if err := os.Remove(filepath.Join(dir, "book1-outline.json")); err != nil {
		t.Fatal(err)
	}
	if r.Get("book1-outline") == nil {
		t.Fatal("cached outline should survive file removal")
	}

	r.invalidate()
	if r.Get("book1-outline") != nil {
		t.Fatal("invalidated cache should re-read from disk and miss")
	}
}
