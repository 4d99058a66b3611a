package outline

import (
	"fmt"
	"strings"

	"github.com/vampirenirmal/redline/internal/schema"
)

// BeatMatcher decides whether the act text plausibly covers a planned beat.
// It is a pluggable strategy: the default is a cheap, explainable pre-filter
// that flags candidates for human or AI adjudication, not a verdict.
type BeatMatcher func(actText, beatText string) bool

// PrefixMatcher matches when the first n words of the beat appear verbatim
// (case-insensitive) in the act text. Known limitation: it produces false
// "diverged" results when a beat is covered in different wording.
func PrefixMatcher(n int) BeatMatcher {
	return func(actText, beatText string) bool {
		words := strings.Fields(strings.ToLower(beatText))
		if len(words) == 0 {
			return true
		}
		if len(words) > n {
			words = words[:n]
		}
		return strings.Contains(strings.ToLower(actText), strings.Join(words, " "))
	}
}

// TokenOverlapMatcher matches when at least threshold of the beat's distinct
// words appear in the act text. A stronger alternative to PrefixMatcher for
// outlines written in looser prose.
func TokenOverlapMatcher(threshold float64) BeatMatcher {
	return func(actText, beatText string) bool {
		beatWords := strings.Fields(strings.ToLower(beatText))
		if len(beatWords) == 0 {
			return true
		}
		actWords := make(map[string]bool)
		for _, w := range strings.Fields(strings.ToLower(actText)) {
			actWords[strings.Trim(w, ".,;:!?\"'")] = true
		}
		hits := 0
		for _, w := range beatWords {
			if actWords[strings.Trim(w, ".,;:!?\"'")] {
				hits++
			}
		}
		return float64(hits)/float64(len(beatWords)) >= threshold
	}
}

// DefaultMatcher is the first-3-words heuristic the sync engine ships with.
var DefaultMatcher = PrefixMatcher(3)

// SyncResult is the outcome of comparing an act's text against its planned
// outline entry.
type SyncResult struct {
	Status        schema.OutlineStatus
	Findings      []string
	ProposedPatch *schema.OutlinePatch
	MissingBeats  []schema.Beat
}

// ComputeStatus classifies alignment between actText and the planned act.
// A nil outline (unresolvable reference) yields unknown; any missing beat
// yields diverged with a synthesized outline patch; otherwise aligned.
func ComputeStatus(actText string, planned *schema.ActOutline, match BeatMatcher) SyncResult {
	if planned == nil {
		return SyncResult{Status: schema.OutlineUnknown}
	}
	if match == nil {
		match = DefaultMatcher
	}

	var missing []schema.Beat
	for _, beat := range planned.KeyBeats {
		if !match(actText, beat.Text) {
			missing = append(missing, beat)
		}
	}

	if len(missing) == 0 {
		return SyncResult{Status: schema.OutlineAligned}
	}

	texts := make([]string, len(missing))
	for i, b := range missing {
		texts[i] = b.Text
	}

	return SyncResult{
		Status:       schema.OutlineDiverged,
		MissingBeats: missing,
		Findings: []string{
			fmt.Sprintf("Missing key beats from outline: %s", strings.Join(texts, "; ")),
		},
		ProposedPatch: &schema.OutlinePatch{
			OutlineBefore: planned.Summary,
			OutlineAfter:  fmt.Sprintf("[REVISED] %s (In-situ: Includes unexpected divergence)", planned.Summary),
			Rationale:     "Draft covers the core intent but misses specific structural beats from original plan.",
		},
	}
}
