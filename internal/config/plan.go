package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Plan overrides per-entity settings of a seed catalog. Every field is
// optional; nil means keep the catalog value.
type Plan struct {
	Minimum  *int                  `yaml:"minimum"`
	Delay    *time.Duration        `yaml:"delay"`
	Entities map[string]EntityPlan `yaml:"entities"`
}

type EntityPlan struct {
	Minimum  *int           `yaml:"minimum"`
	Fill     *int           `yaml:"fill"`
	Delay    *time.Duration `yaml:"delay"`
	Enabled  *bool          `yaml:"enabled"`
	Critical *bool          `yaml:"critical"`
}

// LoadPlan reads a YAML plan. A missing file yields an empty plan.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Plan{}, nil
		}
		return nil, fmt.Errorf("failed to read plan %s: %w", path, err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}
	return &plan, nil
}

func (p *Plan) Validate() error {
	if p.Minimum != nil && *p.Minimum < 0 {
		return fmt.Errorf("minimum cannot be negative")
	}
	for name, e := range p.Entities {
		if e.Minimum != nil && *e.Minimum < 0 {
			return fmt.Errorf("entities.%s.minimum cannot be negative", name)
		}
		if e.Fill != nil && *e.Fill < 0 {
			return fmt.Errorf("entities.%s.fill cannot be negative", name)
		}
		if e.Delay != nil && *e.Delay < 0 {
			return fmt.Errorf("entities.%s.delay cannot be negative", name)
		}
	}
	return nil
}
