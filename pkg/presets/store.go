package presets

import "context"

// Store persists presets keyed by (model, name).
type Store interface {
	// Save inserts or updates a preset. The returned preset carries the
	// assigned id and timestamps.
	Save(ctx context.Context, preset Preset) (Preset, error)
	// Get looks up a preset by model and name.
	Get(ctx context.Context, model, name string) (Preset, error)
	// List returns every preset for a model, newest first.
	List(ctx context.Context, model string) ([]Preset, error)
	// Delete removes a preset. Deleting a missing preset is not an error.
	Delete(ctx context.Context, model, name string) error
	// Close releases the underlying resources.
	Close() error
}
