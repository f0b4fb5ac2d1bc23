package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"orderplan-go-api/internal/models"
)

type presetFile struct {
	Scenarios []struct {
		ID          string             `yaml:"id"`
		Name        string             `yaml:"name"`
		Description string             `yaml:"description"`
		Color       string             `yaml:"color"`
		Parameters  map[string]float64 `yaml:"parameters"`
	} `yaml:"scenarios"`
}

// LoadPresets reads built-in scenarios from a YAML file. Parameters a preset
// leaves out keep their default value.
//
//	scenarios:
//	  - name: Aggressive
//	    color: "#f59e0b"
//	    parameters:
//	      newUIDsQuarterlyGrowth: 35
func LoadPresets(path string) ([]models.Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return ParsePresets(raw)
}

// ParsePresets decodes a YAML preset document.
func ParsePresets(raw []byte) ([]models.Scenario, error) {
	var file presetFile
	if err := yaml.UnmarshalStrict(raw, &file); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("decode presets: no scenarios")
	}

	seen := make(map[string]bool, len(file.Scenarios))
	out := make([]models.Scenario, 0, len(file.Scenarios))
	for _, p := range file.Scenarios {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("preset without a name")
		}
		if seen[strings.ToLower(name)] {
			return nil, fmt.Errorf("preset %q: duplicate name", name)
		}
		seen[strings.ToLower(name)] = true

		params := models.DefaultParameters()
		for key, value := range p.Parameters {
			var err error
			params, err = params.With(key, value)
			if err != nil {
				return nil, fmt.Errorf("preset %q: %w", name, err)
			}
		}
		color := p.Color
		if color == "" {
			color = "#3b82f6"
		}
		out = append(out, models.Scenario{
			ID:          p.ID,
			Name:        name,
			Description: p.Description,
			Color:       color,
			Parameters:  params,
		})
	}
	return out, nil
}
