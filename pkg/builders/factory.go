package builders

import (
	"fmt"
	"sort"
	"sync"

	"github.com/stepwise/stepwise/pkg/logger"
)

// Built-in variant names
const (
	DefaultVariant = "standard"
	PizzaVariant   = "pizza"
)

// PizzaLabels build a pizza: dough, then sauce, then cheese
var PizzaLabels = Labels{A: "Dough", B: "Sauce", C: "Cheese"}

// Factory creates concrete builders for named label sets. It is safe for
// concurrent use; the builders it returns are not.
type Factory struct {
	mu             sync.RWMutex
	variants       map[string]Labels
	defaultVariant string
}

// NewFactory creates a factory with the built-in variants registered
func NewFactory() *Factory {
	return &Factory{
		variants: map[string]Labels{
			DefaultVariant: DefaultLabels,
			PizzaVariant:   PizzaLabels,
		},
		defaultVariant: DefaultVariant,
	}
}

// Register adds a variant
func (f *Factory) Register(name string, labels Labels) error {
	if name == "" {
		return fmt.Errorf("%w: variant name is empty", ErrInvalidLabels)
	}
	if err := labels.Validate(); err != nil {
		return fmt.Errorf("variant %q: %w", name, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.variants[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateVariant, name)
	}
	f.variants[name] = labels
	return nil
}

// SetDefault selects the variant used when Create is called with ""
func (f *Factory) SetDefault(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.variants[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariant, name)
	}
	f.defaultVariant = name
	return nil
}

// Default returns the default variant name
func (f *Factory) Default() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.defaultVariant
}

// Labels returns the labels of a variant
func (f *Factory) Labels(name string) (Labels, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if name == "" {
		name = f.defaultVariant
	}
	labels, ok := f.variants[name]
	if !ok {
		return Labels{}, fmt.Errorf("%w: %s", ErrUnknownVariant, name)
	}
	return labels, nil
}

// Create returns a fresh builder for the named variant. An empty name
// selects the default variant.
func (f *Factory) Create(name string, log logger.Logger) (*ConcreteBuilder, error) {
	if name == "" {
		name = f.Default()
	}
	labels, err := f.Labels(name)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithLabels(labels), WithVariant(name)}
	if log != nil {
		opts = append(opts, WithLogger(log.WithComponent("builder:"+name)))
	}
	return NewConcreteBuilder(opts...), nil
}

// Variants returns the registered variant names, sorted
func (f *Factory) Variants() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.variants))
	for name := range f.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
