package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// now is swappable so migration tests can pin timestamps.
var now = time.Now

// Migrate upgrades an arbitrary act-like document to the current schema
// shape, filling defaults. It runs before validation: raw client and legacy
// input is expected to be incomplete. Unknown keys pass through untouched
// for forward compatibility, and the operation is idempotent.
func Migrate(raw map[string]any) map[string]any {
	if raw == nil {
		raw = map[string]any{}
	}

	if versions, ok := raw["versions"].([]any); ok {
		for i, item := range versions {
			v, ok := item.(map[string]any)
			if !ok {
				continue
			}
			setDefault(v, "versionId", fmt.Sprintf("v%d", i+1))
			setDefault(v, "createdAt", now().UTC().Format(time.RFC3339))
			setDefault(v, "createdBy", string(ActorUser))
			setDefault(v, "changeNote", "")
		}
	}

	setDefault(raw, "id", "act-"+uuid.NewString())
	setDefault(raw, "bookId", "book1")
	setDefault(raw, "chapterId", "ch1")
	setDefault(raw, "heading", "Untitled Act")

	setDefault(raw, "reviews", []any{})
	setDefault(raw, "charactersInAct", []any{})
	setDefault(raw, "promises", []any{})
	setDefault(raw, "continuity", map[string]any{"warnings": []any{}})
	setDefault(raw, "summary", map[string]any{"text": "", "isUserEdited": false})

	// intent, outlineRef, outlineSync and metrics stay absent until the
	// user supplies them.
	return raw
}

func setDefault(m map[string]any, key string, value any) {
	if existing, ok := m[key]; !ok || existing == nil || existing == "" {
		m[key] = value
	}
}

// Decode converts a migrated document into a typed Act via a JSON
// round-trip. Fields the schema does not know are dropped from the typed
// view but survive in the raw map.
func Decode(raw map[string]any) (*Act, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding act document: %w", err)
	}
	var act Act
	if err := json.Unmarshal(data, &act); err != nil {
		return nil, fmt.Errorf("decoding act document: %w", err)
	}
	return &act, nil
}
