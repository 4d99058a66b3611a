package schema

import (
	"testing"
	"time"
)

func validAct() *Act {
	return &Act{
		ID:        "act-1",
		BookID:    "book1",
		ChapterID: "ch01",
		Heading:   "The Hollow Gate",
		Versions: []Version{
			{
				VersionID: "v1",
				Text:      "Caelin crossed the threshold at dusk.",
				CreatedAt: time.Now(),
				CreatedBy: ActorUser,
			},
		},
	}
}

func TestValidateAcceptsMinimalAct(t *testing.T) {
	if errs := Validate(validAct()); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Act)
		wantPath string
	}{
		{
			name:     "missing id",
			mutate:   func(a *Act) { a.ID = "" },
			wantPath: "id",
		},
		{
			name:     "missing heading",
			mutate:   func(a *Act) { a.Heading = "" },
			wantPath: "heading",
		},
		{
			name:     "nil versions",
			mutate:   func(a *Act) { a.Versions = nil },
			wantPath: "versions",
		},
		{
			name:     "empty versions",
			mutate:   func(a *Act) { a.Versions = []Version{} },
			wantPath: "versions",
		},
		{
			name: "version without id",
			mutate: func(a *Act) {
				a.Versions[0].VersionID = ""
			},
			wantPath: "versions[0].versionId",
		},
		{
			name: "metrics out of range",
			mutate: func(a *Act) {
				a.Metrics = &ActMetrics{StakesLevel: 9, IntimacyLevel: 3, WorldImpactLevel: 3}
			},
			wantPath: "metrics.stakesLevel",
		},
		{
			name: "bad warning category",
			mutate: func(a *Act) {
				a.Continuity.Warnings = []ContinuityWarning{{
					WarningID: "w1",
					Category:  "weather",
					Message:   "sky color flipped",
				}}
			},
			wantPath: "category",
		},
		{
			name: "inverted suggestion range",
			mutate: func(a *Act) {
				a.Reviews = []ReviewPass{{
					ReviewID:  "rev-1",
					VersionID: "v1",
					Dimension: DimStructure,
					Suggestions: []Suggestion{{
						ID:        "sug-1",
						VersionID: "v1",
						Reason:    "tighten",
						Range:     &TextRange{Start: 10, End: 2},
					}},
				}}
			},
			wantPath: "reviews[0].suggestions[0].range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act := validAct()
			tt.mutate(act)
			errs := Validate(act)
			if errs == nil {
				t.Fatalf("expected validation errors, got none")
			}
			if !errs.Has(tt.wantPath) {
				t.Errorf("expected error path containing %q, got %v", tt.wantPath, errs)
			}
		})
	}
}

func TestValidateReportsAllFieldsAtOnce(t *testing.T) {
	act := validAct()
	act.ID = ""
	act.BookID = ""
	act.ChapterID = ""

	errs := Validate(act)
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	for _, path := range []string{"id", "bookId", "chapterId"} {
		if !errs.Has(path) {
			t.Errorf("expected %q in flattened report, got %v", path, errs)
		}
	}
}

func TestAppendVersionLinearHistory(t *testing.T) {
	act := validAct()

	next := Version{
		VersionID:        "v2",
		Text:             "Caelin crossed the threshold at dawn.",
		BasedOnVersionID: "v1",
		CreatedAt:        time.Now(),
		CreatedBy:        ActorAI,
	}
	if err := act.AppendVersion(next); err != nil {
		t.Fatalf("append onto latest failed: %v", err)
	}
	if got := act.LatestVersion().VersionID; got != "v2" {
		t.Fatalf("latest = %q, want v2", got)
	}

	t.Run("rejects stale parent", func(t *testing.T) {
		stale := Version{VersionID: "v3", BasedOnVersionID: "v1", CreatedAt: time.Now()}
		if err := act.AppendVersion(stale); err == nil {
			t.Fatal("expected version conflict for stale parent")
		}
	})

	t.Run("rejects duplicate id", func(t *testing.T) {
		dup := Version{VersionID: "v2", BasedOnVersionID: "v2", CreatedAt: time.Now()}
		if err := act.AppendVersion(dup); err == nil {
			t.Fatal("expected version conflict for duplicate id")
		}
	})
}
