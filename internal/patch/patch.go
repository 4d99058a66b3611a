// Package patch deterministically applies accepted text suggestions onto a
// base text and promotes the result into a new immutable act version.
//
// Application is sequential: the output of applying suggestion i is the input
// searched for suggestion i+1. Overlapping suggestions are not detected up
// front; an earlier replacement naturally changes what a later beforeText can
// still find, so overlap self-resolves into a clean apply or a not-found skip.
package patch

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/vampirenirmal/redline/internal/schema"
)

// Result reports the outcome of one applySuggestions run. Stale suggestions
// never fail the run; they land in NotFound and the rest still apply.
type Result struct {
	Applied     int      `json:"applied"`
	Skipped     int      `json:"skipped"`
	NotFound    []string `json:"notFound"`
	NotSelected []string `json:"notSelected"`
	AppliedIDs  []string `json:"appliedIds"`

	NewText  string `json:"newText"`
	CharDiff int    `json:"charDiff"`

	OriginalWordCount int `json:"originalWordCount"`
	NewWordCount      int `json:"newWordCount"`
}

// Apply runs the matching algorithm over baseText. Pure: it never mutates
// the suggestions and performs no I/O.
//
// Only suggestions whose status is approved or accepted are candidates;
// everything else is reported in NotSelected, distinct from NotFound. For
// each candidate, in list order: an empty beforeText is a positional
// insertion (start or end per the position hint, end when absent); otherwise
// the first exact occurrence of beforeText in the working copy is replaced,
// falling back to a whitespace-tolerant match before declaring not-found.
func Apply(baseText string, suggestions []schema.Suggestion) Result {
	result := Result{
		NotFound:    []string{},
		NotSelected: []string{},
		AppliedIDs:  []string{},
	}

	text := baseText
	for _, s := range suggestions {
		if !s.Status.IsAccepted() {
			result.NotSelected = append(result.NotSelected, s.ID)
			continue
		}

		if s.BeforeText == "" {
			if s.AfterText == "" {
				result.Skipped++
				continue
			}
			text = insert(text, s.AfterText, s.Position)
			result.Applied++
			result.AppliedIDs = append(result.AppliedIDs, s.ID)
			continue
		}

		replaced, ok := replaceFirst(text, s.BeforeText, s.AfterText)
		if !ok {
			result.NotFound = append(result.NotFound, s.ID)
			result.Skipped++
			continue
		}
		text = replaced
		result.Applied++
		result.AppliedIDs = append(result.AppliedIDs, s.ID)
	}

	result.NewText = text
	result.CharDiff = len(text) - len(baseText)
	result.OriginalWordCount = wordCount(baseText)
	result.NewWordCount = wordCount(text)
	return result
}

func insert(text, fragment string, pos schema.InsertPosition) string {
	if pos == schema.InsertAtStart {
		return fragment + text
	}
	return text + fragment
}

// replaceFirst replaces the first occurrence of before in text. Exact match
// first; on a miss, retry tolerating whitespace drift, since manuscripts
// routinely get re-wrapped between review and apply.
func replaceFirst(text, before, after string) (string, bool) {
	if strings.Contains(text, before) {
		return strings.Replace(text, before, after, 1), true
	}

	normalized := strings.TrimSpace(whitespaceRe.ReplaceAllString(before, " "))
	if normalized == "" {
		return text, false
	}
	pattern := strings.ReplaceAll(regexp.QuoteMeta(normalized), " ", `\s+`)
	fuzzy, err := regexp.Compile(pattern)
	if err != nil {
		return text, false
	}
	loc := fuzzy.FindStringIndex(text)
	if loc == nil {
		return text, false
	}
	return text[:loc[0]] + after + text[loc[1]:], true
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// ApplyOutcome is the result of applying suggestions to an act, including
// the version metadata when one was materialized.
type ApplyOutcome struct {
	Result

	BaseVersionID  string `json:"baseVersionId"`
	NewVersionID   string `json:"newVersionId,omitempty"`
	VersionCreated bool   `json:"versionCreated"`
	DryRun         bool   `json:"dryRun"`
}

// ApplyToAct applies the given suggestions against the act's latest version.
//
// With dryRun the act is left untouched and the outcome carries the would-be
// new text and counts for preview. Otherwise, if at least one suggestion
// applied, a new version is appended (parent = latest, createdBy = actor,
// changeNote auto-generated) and AppliedInVersionID is stamped on each
// applied suggestion. An act with no versions is a contract violation.
func ApplyToAct(act *schema.Act, suggestions []*schema.Suggestion, actor schema.Actor, dryRun bool) (*ApplyOutcome, error) {
	base := act.LatestVersion()
	if base == nil {
		return nil, fmt.Errorf("applying suggestions to act %s: no versions: %w",
			act.ID, schema.ErrContractViolation)
	}

	flat := make([]schema.Suggestion, len(suggestions))
	for i, s := range suggestions {
		flat[i] = *s
	}

	outcome := &ApplyOutcome{
		Result:        Apply(base.Text, flat),
		BaseVersionID: base.VersionID,
		DryRun:        dryRun,
	}

	logger := slog.Default().With("component", "patch", "act_id", act.ID)
	logger.Info("suggestions matched",
		"base_version", base.VersionID,
		"applied", outcome.Applied,
		"skipped", outcome.Skipped,
		"not_found", len(outcome.NotFound),
		"dry_run", dryRun,
	)

	if dryRun || outcome.Applied == 0 {
		return outcome, nil
	}

	version := schema.Version{
		VersionID:        act.NextVersionID(),
		Text:             outcome.NewText,
		BasedOnVersionID: base.VersionID,
		CreatedAt:        time.Now().UTC(),
		CreatedBy:        actor,
		ChangeNote:       fmt.Sprintf("Applied %d accepted suggestion(s)", outcome.Applied),
	}
	if err := act.AppendVersion(version); err != nil {
		return nil, fmt.Errorf("materializing version: %w", err)
	}

	applied := make(map[string]bool, len(outcome.AppliedIDs))
	for _, id := range outcome.AppliedIDs {
		applied[id] = true
	}
	for _, s := range suggestions {
		if applied[s.ID] {
			s.AppliedInVersionID = version.VersionID
		}
	}

	outcome.NewVersionID = version.VersionID
	outcome.VersionCreated = true
	return outcome, nil
}

// AcceptedSuggestions collects pointers to every accepted, not-yet-applied
// suggestion across the act's review history, in review order. The callers
// feed this straight into ApplyToAct so applied-version stamping lands on
// the act's own records.
func AcceptedSuggestions(act *schema.Act) []*schema.Suggestion {
	var out []*schema.Suggestion
	for ri := range act.Reviews {
		for si := range act.Reviews[ri].Suggestions {
			s := &act.Reviews[ri].Suggestions[si]
			if s.Status.IsAccepted() && s.AppliedInVersionID == "" {
				out = append(out, s)
			}
		}
	}
	return out
}
