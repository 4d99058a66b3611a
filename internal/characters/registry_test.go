package characters

import (
	"context"
	"testing"

	"github.com/vampirenirmal/redline/internal/schema"
	"github.com/vampirenirmal/redline/internal/storage"
)

func TestLoadMissingRegistry(t *testing.T) {
	got, err := Load(context.Background(), storage.NewFileSystem(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("missing registry should load empty, got %+v", got)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	fs := storage.NewFileSystem(t.TempDir())
	ctx := context.Background()

	in := []schema.Character{
		{ID: "mara", Name: "Mara", CurrentState: "fleeing the capital", Traits: []string{"stubborn"}},
		{ID: "caelin", Name: "Caelin", CoreWant: "redemption"},
	}
	if err := Save(ctx, fs, in); err != nil {
		t.Fatal(err)
	}

	got, err := Load(ctx, fs)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "Mara" || got[1].CoreWant != "redemption" {
		t.Fatalf("got %+v", got)
	}
}

func TestLoadSnakeCaseFields(t *testing.T) {
	fs := storage.NewFileSystem(t.TempDir())
	ctx := context.Background()

	raw := `[{"id":"c1","name":"Durgan","current_state":"wounded","core_flaw":"pride"}]`
	if err := fs.Save(ctx, "characters.json", []byte(raw)); err != nil {
		t.Fatal(err)
	}

	got, err := Load(ctx, fs)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].CurrentState != "wounded" || got[0].CoreFlaw != "pride" {
		t.Fatalf("got %+v", got[0])
	}
}

func TestByID(t *testing.T) {
	index := ByID([]schema.Character{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})
	if len(index) != 2 || index["b"].Name != "B" {
		t.Fatalf("index = %+v", index)
	}
}
