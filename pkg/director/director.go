package director

import (
	"fmt"
	"reflect"

	"github.com/stepwise/stepwise/pkg/builders"
)

// Director drives a builder through predetermined step sequences.
// It remembers only which builder it currently drives.
type Director struct {
	builder builders.Builder
}

// New creates a director with no builder configured
func New() *Director {
	return &Director{}
}

// SetBuilder replaces the builder used by subsequent calls. A nil pointer
// wrapped in the interface counts as no builder.
func (d *Director) SetBuilder(b builders.Builder) {
	if b != nil {
		if v := reflect.ValueOf(b); v.Kind() == reflect.Pointer && v.IsNil() {
			b = nil
		}
	}
	d.builder = b
}

// Builder returns the current builder, or nil
func (d *Director) Builder() builders.Builder {
	return d.builder
}

// BuildMinimalViableProduct runs step A only
func (d *Director) BuildMinimalViableProduct() error {
	return d.Construct(MinimalViable)
}

// BuildFullFeaturedProduct runs steps A, B and C in that order
func (d *Director) BuildFullFeaturedProduct() error {
	return d.Construct(FullFeatured)
}

// Construct runs the steps of a recipe on the current builder. Every step
// is checked before the first one runs, so an invalid recipe leaves the
// product untouched.
func (d *Director) Construct(r Recipe) error {
	if d.builder == nil {
		return ErrNoBuilder
	}

	for i, step := range r.Steps {
		if !step.Valid() {
			return fmt.Errorf("recipe %q step %d: %w: %q", r.Name, i, builders.ErrUnknownStep, string(step))
		}
	}

	for _, step := range r.Steps {
		if err := builders.Apply(d.builder, step); err != nil {
			return fmt.Errorf("recipe %q: %w", r.Name, err)
		}
	}
	return nil
}
