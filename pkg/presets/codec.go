package presets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// presetDoc is the on-disk shape. The id travels as a string so both codecs
// produce readable files.
type presetDoc struct {
	ID        string         `json:"id" yaml:"id"`
	Model     string         `json:"model" yaml:"model"`
	Name      string         `json:"name" yaml:"name"`
	Values    map[string]any `json:"values" yaml:"values"`
	CreatedAt time.Time      `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" yaml:"updatedAt"`
}

func toDoc(preset Preset) presetDoc {
	doc := presetDoc{
		Model:     preset.Model,
		Name:      preset.Name,
		Values:    preset.Values,
		CreatedAt: preset.CreatedAt,
		UpdatedAt: preset.UpdatedAt,
	}
	if preset.ID != uuid.Nil {
		doc.ID = preset.ID.String()
	}
	return doc
}

func fromDoc(doc presetDoc) (Preset, error) {
	preset := Preset{
		Model:     doc.Model,
		Name:      doc.Name,
		Values:    doc.Values,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if doc.ID != "" {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return Preset{}, fmt.Errorf("presets: parse id %q: %w", doc.ID, err)
		}
		preset.ID = id
	}
	return preset, nil
}

// EncodeYAML serialises a preset for file storage or export.
func EncodeYAML(preset Preset) ([]byte, error) {
	data, err := yaml.Marshal(toDoc(preset))
	if err != nil {
		return nil, fmt.Errorf("presets: encode yaml: %w", err)
	}
	return data, nil
}

// DecodeYAML parses a preset from YAML.
func DecodeYAML(data []byte) (Preset, error) {
	var doc presetDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Preset{}, fmt.Errorf("presets: decode yaml: %w", err)
	}
	return fromDoc(doc)
}

// EncodeJSON serialises a preset as indented JSON.
func EncodeJSON(preset Preset) ([]byte, error) {
	data, err := json.MarshalIndent(toDoc(preset), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("presets: encode json: %w", err)
	}
	return data, nil
}

// DecodeJSON parses a preset from JSON.
func DecodeJSON(data []byte) (Preset, error) {
	var doc presetDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Preset{}, fmt.Errorf("presets: decode json: %w", err)
	}
	return fromDoc(doc)
}

// DecodeFile reads a preset from disk, picking the codec by file extension.
// ".json" decodes as JSON; ".yaml" and ".yml" decode as YAML.
func DecodeFile(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("presets: read %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return Preset{}, fmt.Errorf("presets: unsupported extension %q", filepath.Ext(path))
	}
}
