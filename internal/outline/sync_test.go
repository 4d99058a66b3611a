package outline

import (
	"strings"
	"testing"

	"github.com/vampirenirmal/redline/internal/schema"
)

func plannedAct() *schema.ActOutline {
	return &schema.ActOutline{
		ActID:     "act-1",
		ActNumber: 1,
		Title:     "Threshold",
		Summary:   "The hero leaves home and loses the mentor.",
		KeyBeats: []schema.Beat{
			{Text: "The hero crosses the threshold", Importance: schema.BeatCritical},
			{Text: "The mentor dies", Importance: schema.BeatMajor},
		},
	}
}

func TestComputeStatus(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		planned     *schema.ActOutline
		wantStatus  schema.OutlineStatus
		wantFinding bool
	}{
		{
			name:       "all beats covered",
			text:       "At dawn the hero crosses the bridge. By dusk the mentor dies alone.",
			planned:    plannedAct(),
			wantStatus: schema.OutlineAligned,
		},
		{
			name:        "one beat missing",
			text:        "At dawn the hero crosses the bridge. Nothing else happens.",
			planned:     plannedAct(),
			wantStatus:  schema.OutlineDiverged,
			wantFinding: true,
		},
		{
			name:       "nil outline is unknown",
			text:       "Anything at all.",
			planned:    nil,
			wantStatus: schema.OutlineUnknown,
		},
		{
			name:       "no key beats means aligned",
			text:       "Quiet interlude.",
			planned:    &schema.ActOutline{ActID: "act-2", Summary: "breather"},
			wantStatus: schema.OutlineAligned,
		},
		{
			name:        "matching is case-insensitive",
			text:        "THE HERO CROSSES into shadow.",
			planned:     &schema.ActOutline{ActID: "a", Summary: "s", KeyBeats: []schema.Beat{{Text: "the hero crosses the line"}}},
			wantStatus:  schema.OutlineAligned,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStatus(tt.text, tt.planned, nil)
			if got.Status != tt.wantStatus {
				t.Fatalf("status = %q, want %q", got.Status, tt.wantStatus)
			}
			if tt.wantFinding && len(got.Findings) == 0 {
				t.Error("expected findings for diverged outline")
			}
			if !tt.wantFinding && len(got.Findings) != 0 {
				t.Errorf("unexpected findings: %v", got.Findings)
			}
		})
	}
}

func TestComputeStatusDivergedDetails(t *testing.T) {
	got := ComputeStatus("At dawn the hero crosses the bridge.", plannedAct(), nil)

	if got.Status != schema.OutlineDiverged {
		t.Fatalf("status = %q, want diverged", got.Status)
	}
	if len(got.MissingBeats) != 1 || got.MissingBeats[0].Text != "The mentor dies" {
		t.Fatalf("missing beats = %+v", got.MissingBeats)
	}
	if got.Findings[0] == "" || !strings.Contains(got.Findings[0], "The mentor dies") {
		t.Errorf("finding should cite the missing beat verbatim: %q", got.Findings[0])
	}
	if got.ProposedPatch == nil {
		t.Fatal("expected a proposed outline patch")
	}
	if got.ProposedPatch.OutlineBefore != plannedAct().Summary {
		t.Errorf("patch before = %q", got.ProposedPatch.OutlineBefore)
	}
	if !strings.Contains(got.ProposedPatch.OutlineAfter, "[REVISED]") {
		t.Errorf("patch after should be marked revised: %q", got.ProposedPatch.OutlineAfter)
	}
	if got.ProposedPatch.Rationale == "" {
		t.Error("patch rationale is empty")
	}
}

func TestTokenOverlapMatcher(t *testing.T) {
	match := TokenOverlapMatcher(0.5)

	if !match("the mentor finally dies at the gate", "The mentor dies") {
		t.Error("expected overlap match")
	}
	if match("a completely unrelated scene", "The mentor dies") {
		t.Error("expected no match for unrelated text")
	}
}
