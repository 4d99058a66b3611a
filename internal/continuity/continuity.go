// Package continuity scans an act's latest draft against the character
// registry and emits advisory warnings. The check is deliberately
// conservative: it favors precision, because warnings surface to the author
// as non-blocking advisories and false positives erode trust faster than
// false negatives. Deeper semantic checks (timeline, power scale, magic
// rules) are delegated to the AI reviewer, which receives these findings as
// grounding context.
package continuity

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vampirenirmal/redline/internal/schema"
)

// Check returns one high-severity character warning for every registry
// character whose name appears in the act's latest text while the registry
// record has no defined current state. Deterministic, no randomness. A
// missing registry, empty text or version-less act yields an empty slice,
// never an error.
func Check(act *schema.Act, characters []schema.Character) []schema.ContinuityWarning {
	warnings := []schema.ContinuityWarning{}

	version := act.LatestVersion()
	if version == nil || version.Text == "" {
		return warnings
	}
	text := version.Text

	for _, c := range characters {
		if c.Name == "" || !strings.Contains(text, c.Name) {
			continue
		}
		if c.CurrentState != "" {
			continue
		}
		ts := time.Now().UTC()
		warnings = append(warnings, schema.ContinuityWarning{
			WarningID: fmt.Sprintf("%s-%s", act.ID, c.ID),
			Scope:     schema.ScopeAct,
			Category:  schema.CategoryCharacter,
			Severity:  schema.SeverityHigh,
			Message:   fmt.Sprintf("Character %s appears without defined current state.", c.Name),
			Evidence:  fmt.Sprintf("Mentioned in %s", act.ID),
			Status:    schema.WarningOpen,
			CreatedAt: ts,
			UpdatedAt: ts,
		})
	}

	if len(warnings) > 0 {
		slog.Debug("continuity check flagged characters",
			"act_id", act.ID,
			"warning_count", len(warnings),
		)
	}

	return warnings
}

// KnownNames builds the set of registry character names, used by the
// orchestrator to tell genuinely new characters apart from known ones the
// AI re-reports.
func KnownNames(characters []schema.Character) map[string]bool {
	names := make(map[string]bool, len(characters))
	for _, c := range characters {
		if c.Name != "" {
			names[strings.ToLower(c.Name)] = true
		}
	}
	return names
}
