package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	scontext "github.com/stepwise/stepwise/pkg/context"
	"github.com/stepwise/stepwise/pkg/director"
	"github.com/stepwise/stepwise/pkg/interfaces"
	"github.com/stepwise/stepwise/pkg/logger"
	"github.com/stepwise/stepwise/pkg/product"
	"github.com/stepwise/stepwise/pkg/types"
)

// Result is the outcome of one order unit
type Result struct {
	ID       string
	Recipe   string
	Variant  string
	Product  *product.Product
	Duration time.Duration
	Err      error
}

// Succeeded reports whether the unit produced a product
func (r Result) Succeeded() bool {
	return r.Err == nil && r.Product != nil
}

// Engine assembles orders using a builder factory and a recipe source
type Engine struct {
	factory     interfaces.BuilderFactory
	recipes     interfaces.RecipeSource
	notifier    interfaces.AssemblyNotifier
	logger      logger.Logger
	parallelism int
}

// Option configures an Engine
type Option func(*Engine)

// WithNotifier reports every assembly to n
func WithNotifier(n interfaces.AssemblyNotifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithLogger sets the engine logger
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.logger = log.WithComponent("engine")
		}
	}
}

// WithParallelism caps concurrent units. n <= 0 uses the number of CPUs.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		e.parallelism = n
	}
}

// New creates an engine
func New(factory interfaces.BuilderFactory, recipes interfaces.RecipeSource, opts ...Option) *Engine {
	e := &Engine{
		factory: factory,
		recipes: recipes,
		logger:  logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.parallelism <= 0 {
		e.parallelism = runtime.NumCPU()
	}
	return e
}

// Parallelism returns the concurrency limit
func (e *Engine) Parallelism() int {
	return e.parallelism
}

// Assemble builds every unit of every order. Results follow the input
// order with each order expanded to Count units. A failed unit does not
// stop the others; the returned error wraps ErrAssemblyFailed and the
// first failure.
func (e *Engine) Assemble(ctx context.Context, orders []types.Order) ([]Result, error) {
	ctx = scontext.WithOperation(scontext.EnrichContext(ctx), "batch")
	log := logger.WithContext(ctx, e.logger)

	units := expand(orders)
	results := make([]Result, len(units))

	log.Info("Starting batch",
		logger.WithField("units", len(units)),
		logger.WithField("parallelism", e.parallelism))

	sg := NewSafeGroup(e.logger)
	sg.SetLimit(e.parallelism)

	for i, order := range units {
		res := &results[i]
		res.ID = scontext.GenerateAssemblyID()
		res.Recipe = order.Recipe
		res.Variant = order.Variant

		sg.Go(func() error {
			if err := ctx.Err(); err != nil {
				res.Err = err
				return nil
			}

			start := time.Now()
			res.Err = sg.Protect(func() error {
				return e.assembleUnit(ctx, res)
			})
			res.Duration = time.Since(start)

			e.report(res)
			return nil
		})
	}

	if err := sg.Wait(); err != nil {
		return results, fmt.Errorf("%w: %w", ErrAssemblyFailed, err)
	}

	failed, first := summarize(results)
	if e.notifier != nil {
		e.notifier.NotifyBatchComplete(len(results), failed, scontext.GetDuration(ctx))
	}

	if first != nil {
		log.Warn("Batch finished with failures",
			logger.WithField("failed", failed),
			logger.WithField("total", len(results)))
		return results, fmt.Errorf("%w: %d of %d units failed: %w", ErrAssemblyFailed, failed, len(results), first)
	}

	log.Success("Batch complete", logger.WithField("total", len(results)))
	return results, nil
}

func (e *Engine) assembleUnit(ctx context.Context, res *Result) error {
	ctx = scontext.WithAssemblyID(ctx, res.ID)
	ctx = scontext.WithOperation(ctx, "assemble:"+res.Recipe)
	log := logger.WithContext(ctx, e.logger)

	recipe, err := e.recipes.Get(res.Recipe)
	if err != nil {
		return err
	}

	builder, err := e.factory.Create(res.Variant, log)
	if err != nil {
		return err
	}
	res.Variant = builder.Variant()

	d := director.New()
	d.SetBuilder(builder)
	if err := d.Construct(recipe); err != nil {
		return err
	}

	res.Product = builder.GetProduct()
	log.Debug("Product assembled",
		logger.WithField("variant", res.Variant),
		logger.WithField("parts", res.Product.Len()))
	return nil
}

func (e *Engine) report(res *Result) {
	if e.notifier == nil {
		return
	}
	if res.Err != nil {
		e.notifier.NotifyFailure(res.Recipe, res.Variant, res.Err)
		return
	}
	e.notifier.NotifyAssembled(res.Recipe, res.Variant, res.Product, res.Duration)
}

func expand(orders []types.Order) []types.Order {
	var units []types.Order
	for _, o := range orders {
		for n := 0; n < o.Units(); n++ {
			units = append(units, types.Order{Recipe: o.Recipe, Variant: o.Variant, Count: 1})
		}
	}
	return units
}

func summarize(results []Result) (failed int, first error) {
	for i, r := range results {
		if r.Err == nil {
			continue
		}
		failed++
		if first == nil {
			first = fmt.Errorf("unit %d (%s): %w", i+1, r.Recipe, r.Err)
		}
	}
	return failed, first
}
