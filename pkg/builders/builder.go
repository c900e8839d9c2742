// Package builders provides the builder capability and its concrete variants
package builders

import (
	"fmt"

	"github.com/stepwise/stepwise/pkg/logger"
	"github.com/stepwise/stepwise/pkg/product"
)

// Builder is the capability a director drives. Each step appends one
// fixed part to the product under construction. Calling a step twice
// appends its part twice.
type Builder interface {
	BuildPartA()
	BuildPartB()
	BuildPartC()
}

// Labels are the part labels a concrete builder appends for each step
type Labels struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
	C string `json:"c" yaml:"c"`
}

// DefaultLabels are used by builders created without WithLabels
var DefaultLabels = Labels{A: "A", B: "B", C: "C"}

// Validate checks that every label is set
func (l Labels) Validate() error {
	for _, step := range AllSteps {
		if l.For(step) == "" {
			return fmt.Errorf("%w: label for step %s is empty", ErrInvalidLabels, step)
		}
	}
	return nil
}

// For returns the label of a step, or "" for an unknown step
func (l Labels) For(step Step) string {
	switch step {
	case StepA:
		return l.A
	case StepB:
		return l.B
	case StepC:
		return l.C
	}
	return ""
}

// ConcreteBuilder assembles a product.Product. It always owns exactly one
// in-progress product.
//
// State transitions:
//   - Reset replaces the in-progress product with a blank one.
//   - BuildPartA/B/C append to the in-progress product.
//   - GetProduct hands the in-progress product to the caller, then resets.
//
// A ConcreteBuilder is not safe for concurrent use; confine each instance
// to a single owner.
type ConcreteBuilder struct {
	product *product.Product
	labels  Labels
	variant string
	logger  logger.Logger
}

var _ Builder = (*ConcreteBuilder)(nil)

// Option configures a ConcreteBuilder
type Option func(*ConcreteBuilder)

// WithLabels overrides the part labels
func WithLabels(labels Labels) Option {
	return func(b *ConcreteBuilder) {
		b.labels = labels
	}
}

// WithVariant records the variant name the builder was created for
func WithVariant(name string) Option {
	return func(b *ConcreteBuilder) {
		b.variant = name
	}
}

// WithLogger sets the logger used for transition tracing
func WithLogger(log logger.Logger) Option {
	return func(b *ConcreteBuilder) {
		if log != nil {
			b.logger = log
		}
	}
}

// NewConcreteBuilder creates a builder holding a fresh, empty product
func NewConcreteBuilder(opts ...Option) *ConcreteBuilder {
	b := &ConcreteBuilder{
		labels:  DefaultLabels,
		variant: DefaultVariant,
		logger:  logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Reset()
	return b
}

// Reset discards the in-progress product and starts a blank one
func (b *ConcreteBuilder) Reset() {
	b.product = product.New()
	b.logger.Debug("Builder reset", logger.WithField("variant", b.variant))
}

// BuildPartA appends the A label
func (b *ConcreteBuilder) BuildPartA() {
	b.add(StepA)
}

// BuildPartB appends the B label
func (b *ConcreteBuilder) BuildPartB() {
	b.add(StepB)
}

// BuildPartC appends the C label
func (b *ConcreteBuilder) BuildPartC() {
	b.add(StepC)
}

// GetProduct returns the in-progress product and resets the builder.
// The caller owns the returned product; the builder keeps no reference
// to it and is immediately ready to assemble the next one.
func (b *ConcreteBuilder) GetProduct() *product.Product {
	result := b.product
	b.logger.Debug("Product retrieved",
		logger.WithField("variant", b.variant),
		logger.WithField("parts", result.Len()))
	b.Reset()
	return result
}

// Labels returns the part labels of this builder
func (b *ConcreteBuilder) Labels() Labels {
	return b.labels
}

// Variant returns the variant name of this builder
func (b *ConcreteBuilder) Variant() string {
	return b.variant
}

func (b *ConcreteBuilder) add(step Step) {
	label := b.labels.For(step)
	b.product.AddPart(label)
	b.logger.Debug("Part added",
		logger.WithField("step", string(step)),
		logger.WithField("label", label))
}
