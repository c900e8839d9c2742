// Package config handles configuration loading and management
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stepwise/stepwise/pkg/builders"
	"github.com/stepwise/stepwise/pkg/director"
	"github.com/stepwise/stepwise/pkg/types"
	"github.com/stepwise/stepwise/pkg/validation"
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the base name searched for under the project root
const DefaultConfigName = "stepwise.config"

// Format is a configuration file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Manager handles configuration operations
type Manager struct {
	validator *validation.ConfigValidator
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		validator: validation.NewConfigValidator(),
	}
}

// LoadConfig reads a configuration file, trying JSON first and then YAML,
// and validates it
func (m *Manager) LoadConfig(path string) (*types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := m.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := m.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes configuration bytes as JSON, falling back to YAML
func (m *Manager) Parse(data []byte) (*types.Config, error) {
	var cfg types.Config
	if err := json.Unmarshal(data, &cfg); err == nil {
		return &cfg, nil
	}

	cfg = types.Config{}
	err := yaml.Unmarshal(data, &cfg)
	if err == nil {
		return &cfg, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrUnparseableConfig, err)
}

// ValidateConfig returns the first error-level issue of a configuration
func (m *Manager) ValidateConfig(cfg *types.Config) error {
	if cfg.Version != types.ConfigVersion {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, cfg.Version)
	}

	result := m.validator.Validate(cfg)
	if err := result.FirstError(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate returns every issue of a configuration
func (m *Manager) Validate(cfg *types.Config) *validation.ValidationResult {
	return m.validator.Validate(cfg)
}

// GetDefaultConfig returns the configuration written by "stepwise init"
func (m *Manager) GetDefaultConfig() *types.Config {
	disabled := false

	return &types.Config{
		Version:        types.ConfigVersion,
		DefaultVariant: builders.DefaultVariant,
		LogLevel:       types.LogLevelInfo,
		Variants: []types.VariantConfig{
			{
				Name:   "house",
				Labels: builders.Labels{A: "Foundation", B: "Walls", C: "Roof"},
			},
		},
		Recipes: []types.RecipeConfig{
			{
				Name:        "custom",
				Description: "Custom product",
				Steps:       []string{"A", "C"},
			},
		},
		Orders: []types.Order{
			{Recipe: director.MinimalRecipe, Count: 1},
			{Recipe: director.FullRecipe, Count: 1},
			{Recipe: "custom", Variant: builders.PizzaVariant, Count: 1},
		},
		Batch: &types.BatchConfig{
			Parallelism: 4,
		},
		Notifications: &types.NotificationConfig{
			Enabled: &disabled,
		},
	}
}

// Build creates a factory and cookbook holding the built-ins plus the
// configuration's variants and recipes
func (m *Manager) Build(cfg *types.Config) (*builders.Factory, *director.Cookbook, error) {
	factory := builders.NewFactory()
	for _, v := range cfg.Variants {
		if err := factory.Register(v.Name, v.Labels); err != nil {
			return nil, nil, fmt.Errorf("variant %q: %w", v.Name, err)
		}
	}
	if cfg.DefaultVariant != "" {
		if err := factory.SetDefault(cfg.DefaultVariant); err != nil {
			return nil, nil, fmt.Errorf("default variant: %w", err)
		}
	}

	cookbook := director.NewCookbook()
	for _, rc := range cfg.Recipes {
		recipe, err := director.ParseRecipe(rc.Name, rc.Description, rc.Steps)
		if err != nil {
			return nil, nil, err
		}
		if err := cookbook.Add(recipe); err != nil {
			return nil, nil, err
		}
	}

	return factory, cookbook, nil
}

// WriteConfig encodes a configuration to path in the given format
func (m *Manager) WriteConfig(path string, cfg *types.Config, format Format) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML:
		data, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("unsupported config format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// FormatFromPath picks the encoding from a file extension, defaulting to YAML
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}
