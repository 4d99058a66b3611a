// Package characters loads the external character registry consumed by the
// continuity engine and review orchestrator.
package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/vampirenirmal/redline/internal/schema"
	"github.com/vampirenirmal/redline/internal/storage"
)

const registryFile = "characters.json"

// Load reads the character registry. A missing file is an empty registry,
// not an error: a new project starts with no characters.
func Load(ctx context.Context, store storage.Storage) ([]schema.Character, error) {
	if !store.Exists(ctx, registryFile) {
		return nil, nil
	}

	data, err := store.Load(ctx, registryFile)
	if err != nil {
		return nil, fmt.Errorf("loading character registry: %w", err)
	}

	var characters []schema.Character
	if err := json.Unmarshal(data, &characters); err != nil {
		return nil, fmt.Errorf("parsing character registry: %w", err)
	}

	slog.Debug("character registry loaded", "count", len(characters))
	return characters, nil
}

// Save persists the registry. Used when the user confirms trait claims and
// the registry grows.
func Save(ctx context.Context, store storage.Storage, characters []schema.Character) error {
	data, err := json.MarshalIndent(characters, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding character registry: %w", err)
	}
	if err := store.Save(ctx, registryFile, data); err != nil {
		return fmt.Errorf("saving character registry: %w", err)
	}
	return nil
}

// ByID builds an id-keyed index over the registry.
func ByID(characters []schema.Character) map[string]schema.Character {
	index := make(map[string]schema.Character, len(characters))
	for _, c := range characters {
		index[c.ID] = c
	}
	return index
}
