// Package presets persists named parameter value sets so users can reapply a
// configuration to a model without re-entering every field.
package presets

import (
	"time"

	"github.com/google/uuid"
)

// Preset is a saved set of parameter values for one model.
type Preset struct {
	ID        uuid.UUID      `json:"id" yaml:"id"`
	Model     string         `json:"model" yaml:"model"`
	Name      string         `json:"name" yaml:"name"`
	Values    map[string]any `json:"values" yaml:"values"`
	CreatedAt time.Time      `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" yaml:"updatedAt"`
}
