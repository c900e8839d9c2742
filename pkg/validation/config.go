// Package validation reports levelled issues in stepwise configurations
package validation

import (
	"fmt"
	"strings"

	"github.com/stepwise/stepwise/pkg/builders"
	"github.com/stepwise/stepwise/pkg/director"
	"github.com/stepwise/stepwise/pkg/types"
)

// ValidationLevel represents issue severity
type ValidationLevel string

const (
	ValidationLevelError   ValidationLevel = "error"
	ValidationLevelWarning ValidationLevel = "warning"
	ValidationLevelInfo    ValidationLevel = "info"
)

// ValidationError is one issue found in a configuration
type ValidationError struct {
	Subject string
	Field   string
	Message string
	Level   ValidationLevel
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s.%s: %s", e.Level, e.Subject, e.Field, e.Message)
}

// ValidationResult contains validation results
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// AddError adds an issue; error-level issues invalidate the result
func (r *ValidationResult) AddError(subject, field, message string, level ValidationLevel) {
	r.Errors = append(r.Errors, ValidationError{
		Subject: subject,
		Field:   field,
		Message: message,
		Level:   level,
	})
	if level == ValidationLevelError {
		r.Valid = false
	}
}

// ByLevel returns the issues of one level
func (r *ValidationResult) ByLevel(level ValidationLevel) []ValidationError {
	var out []ValidationError
	for _, e := range r.Errors {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// FirstError returns the first error-level issue, or nil
func (r *ValidationResult) FirstError() error {
	for i := range r.Errors {
		if r.Errors[i].Level == ValidationLevelError {
			return &r.Errors[i]
		}
	}
	return nil
}

// ConfigValidator validates configurations against the built-in variants
// and recipes
type ConfigValidator struct {
	builtinVariants map[string]bool
	builtinRecipes  map[string]bool
}

// NewConfigValidator creates a validator aware of the built-ins
func NewConfigValidator() *ConfigValidator {
	v := &ConfigValidator{
		builtinVariants: make(map[string]bool),
		builtinRecipes:  make(map[string]bool),
	}
	for _, name := range builders.NewFactory().Variants() {
		v.builtinVariants[name] = true
	}
	for _, name := range director.NewCookbook().Names() {
		v.builtinRecipes[name] = true
	}
	return v
}

// Validate checks a whole configuration
func (v *ConfigValidator) Validate(cfg *types.Config) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if cfg.Version != types.ConfigVersion {
		result.AddError("config", "version",
			fmt.Sprintf("unsupported version %q, expected %q", cfg.Version, types.ConfigVersion),
			ValidationLevelError)
	}

	switch cfg.LogLevel {
	case "", types.LogLevelDebug, types.LogLevelInfo, types.LogLevelWarn, types.LogLevelError:
	default:
		result.AddError("config", "logLevel",
			fmt.Sprintf("unknown log level %q, falling back to info", cfg.LogLevel),
			ValidationLevelWarning)
	}

	variants := v.validateVariants(cfg.Variants, result)
	recipes := v.validateRecipes(cfg.Recipes, result)

	if cfg.DefaultVariant != "" && !variants[cfg.DefaultVariant] {
		result.AddError("config", "defaultVariant",
			fmt.Sprintf("unknown variant %q", cfg.DefaultVariant),
			ValidationLevelError)
	}

	v.validateOrders(cfg.Orders, variants, recipes, result)

	if cfg.Batch != nil && cfg.Batch.Parallelism < 0 {
		result.AddError("batch", "parallelism", "negative parallelism falls back to the CPU count", ValidationLevelWarning)
	}

	return result
}

func (v *ConfigValidator) validateVariants(variants []types.VariantConfig, result *ValidationResult) map[string]bool {
	known := make(map[string]bool, len(v.builtinVariants)+len(variants))
	for name := range v.builtinVariants {
		known[name] = true
	}

	for i, variant := range variants {
		subject := fmt.Sprintf("variants[%d]", i)
		if variant.Name == "" {
			result.AddError(subject, "name", "variant name is required", ValidationLevelError)
			continue
		}
		subject = "variant:" + variant.Name

		if strings.ContainsAny(variant.Name, " \t") {
			result.AddError(subject, "name", "variant name cannot contain spaces", ValidationLevelError)
		}
		if known[variant.Name] {
			result.AddError(subject, "name", "duplicate variant name", ValidationLevelError)
		}
		known[variant.Name] = true

		if err := variant.Labels.Validate(); err != nil {
			result.AddError(subject, "labels", err.Error(), ValidationLevelError)
			continue
		}

		l := variant.Labels
		if l.A == l.B || l.B == l.C || l.A == l.C {
			result.AddError(subject, "labels", "labels are not distinct; products will be ambiguous", ValidationLevelWarning)
		}
	}

	return known
}

func (v *ConfigValidator) validateRecipes(recipes []types.RecipeConfig, result *ValidationResult) map[string]bool {
	known := make(map[string]bool, len(v.builtinRecipes)+len(recipes))
	for name := range v.builtinRecipes {
		known[name] = true
	}

	for i, recipe := range recipes {
		subject := fmt.Sprintf("recipes[%d]", i)
		if recipe.Name == "" {
			result.AddError(subject, "name", "recipe name is required", ValidationLevelError)
			continue
		}
		subject = "recipe:" + recipe.Name

		if known[recipe.Name] {
			result.AddError(subject, "name", "duplicate recipe name", ValidationLevelError)
		}
		known[recipe.Name] = true

		if len(recipe.Steps) == 0 {
			result.AddError(subject, "steps", "recipe has no steps and will produce an empty product", ValidationLevelWarning)
			continue
		}
		for j, step := range recipe.Steps {
			if _, err := builders.ParseStep(step); err != nil {
				result.AddError(subject, fmt.Sprintf("steps[%d]", j), err.Error(), ValidationLevelError)
			}
		}
	}

	return known
}

func (v *ConfigValidator) validateOrders(orders []types.Order, variants, recipes map[string]bool, result *ValidationResult) {
	for i, order := range orders {
		subject := fmt.Sprintf("orders[%d]", i)

		if order.Recipe == "" {
			result.AddError(subject, "recipe", "recipe is required", ValidationLevelError)
		} else if !recipes[order.Recipe] {
			result.AddError(subject, "recipe", fmt.Sprintf("unknown recipe %q", order.Recipe), ValidationLevelError)
		}

		if order.Variant != "" && !variants[order.Variant] {
			result.AddError(subject, "variant", fmt.Sprintf("unknown variant %q", order.Variant), ValidationLevelError)
		}

		switch {
		case order.Count < 0:
			result.AddError(subject, "count", "negative count is treated as 1", ValidationLevelWarning)
		case order.Count == 0:
			result.AddError(subject, "count", "count not set, defaults to 1", ValidationLevelInfo)
		}
	}
}
