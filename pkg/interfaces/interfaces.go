// Package interfaces provides abstractions for dependency injection and testability
package interfaces

import (
	"time"

	"github.com/stepwise/stepwise/pkg/builders"
	"github.com/stepwise/stepwise/pkg/director"
	"github.com/stepwise/stepwise/pkg/logger"
	"github.com/stepwise/stepwise/pkg/product"
)

// BuilderFactory creates a fresh builder per variant
type BuilderFactory interface {
	Create(variant string, log logger.Logger) (*builders.ConcreteBuilder, error)
	Variants() []string
}

// RecipeSource resolves recipe names
type RecipeSource interface {
	Get(name string) (director.Recipe, error)
	Names() []string
}

// AssemblyNotifier receives assembly outcomes
type AssemblyNotifier interface {
	NotifyAssembled(recipe, variant string, p *product.Product, duration time.Duration)
	NotifyFailure(recipe, variant string, err error)
	NotifyBatchComplete(total, failed int, duration time.Duration)
}

var (
	_ BuilderFactory = (*builders.Factory)(nil)
	_ RecipeSource   = (*director.Cookbook)(nil)
)
