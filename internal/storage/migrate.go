package storage

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Migration upgrades stored collections to Version. Migrations are additive:
// they may add records or keys but never drop stored records.
type Migration struct {
	Version int
	Name    string
	Apply   func(ctx context.Context, a *Adapter) error
}

// SchemaVersion returns the stored schema version, 0 for an unversioned store.
func (a *Adapter) SchemaVersion(ctx context.Context) int {
	return Load(ctx, a, KeySchemaVersion, 0)
}

// Migrate runs every migration newer than the stored schema version in order
// and records the version after each one. It returns the resulting version.
func (a *Adapter) Migrate(ctx context.Context, migrations []Migration) (int, error) {
	pending := make([]Migration, len(migrations))
	copy(pending, migrations)
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	current := a.SchemaVersion(ctx)
	for _, m := range pending {
		if m.Version <= current {
			continue
		}
		a.logger.Info("applying storage migration",
			zap.Int("from", current), zap.Int("to", m.Version), zap.String("name", m.Name))
		if err := m.Apply(ctx, a); err != nil {
			return current, fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		if err := a.save(ctx, KeySchemaVersion, m.Version); err != nil {
			return current, fmt.Errorf("record schema version %d: %w", m.Version, err)
		}
		current = m.Version
	}
	return current, nil
}

// Identified is any record with a stable identity.
type Identified interface {
	EntityID() string
}

// MergeMissing appends to stored every seed record whose identity is not yet
// stored, keeping stored records untouched. added is the number of records merged.
func MergeMissing[T Identified](stored, seed []T) (merged []T, added int) {
	seen := make(map[string]struct{}, len(stored))
	for _, r := range stored {
		seen[r.EntityID()] = struct{}{}
	}
	merged = make([]T, len(stored), len(stored)+len(seed))
	copy(merged, stored)
	for _, r := range seed {
		if _, ok := seen[r.EntityID()]; ok {
			continue
		}
		merged = append(merged, r)
		added++
	}
	return merged, added
}

// MergeSeed is a Migration.Apply helper that merges seed records into the
// collection under key. A missing collection is written as the seed itself.
func MergeSeed[T Identified](key string, seed []T) func(ctx context.Context, a *Adapter) error {
	return func(ctx context.Context, a *Adapter) error {
		stored, ok := LoadStored[[]T](ctx, a, key)
		if !ok {
			return a.save(ctx, key, seed)
		}
		if len(stored) < len(seed) {
			a.logger.Info("stored collection is shorter than seed",
				zap.String("key", key), zap.Int("stored", len(stored)), zap.Int("seed", len(seed)))
		}
		merged, added := MergeMissing(stored, seed)
		if added == 0 {
			return nil
		}
		a.logger.Info("merged seed records", zap.String("key", key), zap.Int("added", added))
		return a.save(ctx, key, merged)
	}
}
