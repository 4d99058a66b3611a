package review

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vampirenirmal/redline/internal/schema"
)

// Wire shapes for the structured-generation collaborator. The collaborator
// is contractually bound to this schema but its output is still untrusted:
// every field gets coerced and defaulted before entering the document model.

type wireMetrics struct {
	StakesLevel      int `json:"stakesLevel"`
	IntimacyLevel    int `json:"intimacyLevel"`
	WorldImpactLevel int `json:"worldImpactLevel"`
	PaceLevel        int `json:"paceLevel"`
}

type wireSuggestion struct {
	Reason      string `json:"reason"`
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
}

type wireNewCharacter struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	State string `json:"state"`
}

type wireReview struct {
	Notes                 string                        `json:"notes"`
	Findings              []string                      `json:"findings"`
	Metrics               wireMetrics                   `json:"metrics"`
	Suggestions           []wireSuggestion              `json:"suggestions"`
	IntentAlignment       schema.IntentAlignment        `json:"intentAlignment"`
	CharacterArcMovements []schema.CharacterArcMovement `json:"characterArcMovements"`
	NewCharactersFound    []wireNewCharacter            `json:"newCharactersFound"`
	OutlineStatus         string                        `json:"outlineStatus"`
}

func parseWireReview(raw string) (*wireReview, error) {
	// Some backends wrap JSON in a markdown fence despite instructions.
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	var w wireReview
	if err := json.Unmarshal([]byte(cleaned), &w); err != nil {
		return nil, fmt.Errorf("parsing review payload: %w", err)
	}
	return &w, nil
}

// clampMetric forces a score into the 1-5 band; absent or junk values
// bottom out at 1.
func clampMetric(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

func (w *wireReview) actMetrics() *schema.ActMetrics {
	return &schema.ActMetrics{
		StakesLevel:      clampMetric(w.Metrics.StakesLevel),
		IntimacyLevel:    clampMetric(w.Metrics.IntimacyLevel),
		WorldImpactLevel: clampMetric(w.Metrics.WorldImpactLevel),
		PaceLevel:        clampMetric(w.Metrics.PaceLevel),
	}
}

func (w *wireReview) canonicalSuggestions(versionID string) []schema.Suggestion {
	out := make([]schema.Suggestion, 0, len(w.Suggestions))
	for _, s := range w.Suggestions {
		reason := s.Reason
		if reason == "" {
			reason = "Editor recommendation"
		}
		out = append(out, schema.Suggestion{
			ID:         "sug-" + uuid.NewString(),
			VersionID:  versionID,
			Type:       schema.SuggestReplace,
			Reason:     reason,
			BeforeText: s.Original,
			AfterText:  s.Replacement,
			Status:     schema.SuggestionProposed,
		})
	}
	return out
}

// traitClaims converts AI-reported new characters into proposals for the
// user, dropping any name the registry already knows. Registry growth only
// ever happens through confirmed claims, never by direct write.
func (w *wireReview) traitClaims(knownNames map[string]bool) []schema.CharacterTraitClaim {
	var claims []schema.CharacterTraitClaim
	for _, nc := range w.NewCharactersFound {
		if nc.Name == "" || knownNames[strings.ToLower(nc.Name)] {
			continue
		}
		claims = append(claims, schema.CharacterTraitClaim{
			CharacterID: characterIDFromName(nc.Name),
			Trait:       fmt.Sprintf("New Character Detected: %s - %s", nc.Name, nc.Role),
			Evidence:    nc.State,
		})
	}
	return claims
}

// characterIDFromName derives a stable slug id: lowercase with every
// non-alphanumeric character replaced by a hyphen.
func characterIDFromName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	return b.String()
}
