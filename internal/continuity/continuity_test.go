package continuity

import (
	"testing"
	"time"

	"github.com/vampirenirmal/redline/internal/schema"
)

func actWithText(text string) *schema.Act {
	return &schema.Act{
		ID:        "act-7",
		BookID:    "book1",
		ChapterID: "ch02",
		Heading:   "Night Crossing",
		Versions: []schema.Version{
			{VersionID: "v1", Text: text, CreatedAt: time.Now(), CreatedBy: schema.ActorUser},
		},
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		characters []schema.Character
		wantCount  int
	}{
		{
			name:       "mentioned character without state is flagged",
			text:       "Caelin drew the blade and waited.",
			characters: []schema.Character{{ID: "c1", Name: "Caelin"}},
			wantCount:  1,
		},
		{
			name:       "mentioned character with state passes",
			text:       "Caelin drew the blade and waited.",
			characters: []schema.Character{{ID: "c1", Name: "Caelin", CurrentState: "alive and well"}},
			wantCount:  0,
		},
		{
			name:       "unmentioned character is ignored",
			text:       "The road was empty.",
			characters: []schema.Character{{ID: "c1", Name: "Caelin"}},
			wantCount:  0,
		},
		{
			name:       "empty registry",
			text:       "Caelin stood alone.",
			characters: nil,
			wantCount:  0,
		},
		{
			name: "multiple stateless characters",
			text: "Caelin nodded at Durgan across the fire.",
			characters: []schema.Character{
				{ID: "c1", Name: "Caelin"},
				{ID: "c2", Name: "Durgan"},
				{ID: "c3", Name: "Mira", CurrentState: "in the capital"},
			},
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(actWithText(tt.text), tt.characters)
			if len(got) != tt.wantCount {
				t.Fatalf("got %d warnings, want %d: %+v", len(got), tt.wantCount, got)
			}
		})
	}
}

func TestCheckWarningShape(t *testing.T) {
	act := actWithText("Caelin slipped through the gate.")
	got := Check(act, []schema.Character{{ID: "c1", Name: "Caelin"}})
	if len(got) != 1 {
		t.Fatalf("got %d warnings, want 1", len(got))
	}

	w := got[0]
	if w.WarningID != "act-7-c1" {
		t.Errorf("warningId = %q", w.WarningID)
	}
	if w.Category != schema.CategoryCharacter {
		t.Errorf("category = %q, want character", w.Category)
	}
	if w.Severity != schema.SeverityHigh {
		t.Errorf("severity = %q, want high", w.Severity)
	}
	if w.Status != schema.WarningOpen {
		t.Errorf("status = %q, want open", w.Status)
	}
	if w.Message == "" || w.Evidence == "" {
		t.Error("message/evidence should cite the character and act")
	}
}

func TestCheckEmptyActIsSafe(t *testing.T) {
	registry := []schema.Character{{ID: "c1", Name: "Caelin"}}

	t.Run("no versions", func(t *testing.T) {
		act := &schema.Act{ID: "bare"}
		if got := Check(act, registry); len(got) != 0 {
			t.Fatalf("expected empty result, got %+v", got)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		if got := Check(actWithText(""), registry); len(got) != 0 {
			t.Fatalf("expected empty result, got %+v", got)
		}
	})
}
