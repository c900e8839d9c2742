package engine_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stepwise/stepwise/internal/engine"
	"github.com/stepwise/stepwise/pkg/builders"
	"github.com/stepwise/stepwise/pkg/director"
	"github.com/stepwise/stepwise/pkg/mocks"
	"github.com/stepwise/stepwise/pkg/types"
)

func newEngine(t *testing.T, opts ...engine.Option) (*engine.Engine, *mocks.MockFactory, *mocks.MockNotifier) {
	t.Helper()

	cookbook := director.NewCookbook()
	if err := cookbook.Add(director.Recipe{Name: "tail", Steps: []builders.Step{builders.StepB, builders.StepC}}); err != nil {
		t.Fatalf("failed to add recipe: %v", err)
	}

	factory := mocks.NewMockFactory()
	notifier := mocks.NewMockNotifier()
	opts = append([]engine.Option{engine.WithNotifier(notifier)}, opts...)
	return engine.New(factory, cookbook, opts...), factory, notifier
}

func TestEngine_AssembleKeepsInputOrder(t *testing.T) {
	e, factory, notifier := newEngine(t, engine.WithParallelism(2))

	orders := []types.Order{
		{Recipe: director.FullRecipe, Variant: builders.PizzaVariant},
		{Recipe: director.MinimalRecipe, Count: 2},
		{Recipe: "tail"},
	}

	results, err := e.Assemble(context.Background(), orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"Product parts: Dough, Sauce, Cheese",
		"Product parts: A",
		"Product parts: A",
		"Product parts: B, C",
	}
	var got []string
	for _, r := range results {
		if !r.Succeeded() {
			t.Fatalf("unit %s failed: %v", r.ID, r.Err)
		}
		got = append(got, r.Product.Describe())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected products (-want +got):\n%s", diff)
	}

	if results[1].Variant != builders.DefaultVariant {
		t.Errorf("expected empty variant to resolve to %q, got %q", builders.DefaultVariant, results[1].Variant)
	}
	if results[1].ID == results[2].ID {
		t.Error("expected every unit to get its own ID")
	}
	if !strings.HasPrefix(results[0].ID, "asm_") {
		t.Errorf("unexpected ID format: %s", results[0].ID)
	}
	if factory.CreateCount() != 4 {
		t.Errorf("expected one builder per unit, got %d", factory.CreateCount())
	}

	total, failed, batches := notifier.LastBatch()
	if total != 4 || failed != 0 || batches != 1 {
		t.Errorf("unexpected batch summary: total=%d failed=%d batches=%d", total, failed, batches)
	}
	if len(notifier.Events()) != 4 {
		t.Errorf("expected 4 notifier events, got %d", len(notifier.Events()))
	}
}

func TestEngine_FailureDoesNotAffectSiblings(t *testing.T) {
	e, _, notifier := newEngine(t)

	orders := []types.Order{
		{Recipe: director.MinimalRecipe},
		{Recipe: "deluxe"},
		{Recipe: director.FullRecipe, Variant: "marble"},
		{Recipe: director.FullRecipe},
	}

	results, err := e.Assemble(context.Background(), orders)
	if !errors.Is(err, engine.ErrAssemblyFailed) {
		t.Fatalf("expected ErrAssemblyFailed, got %v", err)
	}
	if !errors.Is(err, director.ErrUnknownRecipe) {
		t.Errorf("expected aggregated error to wrap the first failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "2 of 4 units failed") {
		t.Errorf("unexpected error text: %v", err)
	}

	if !results[0].Succeeded() || !results[3].Succeeded() {
		t.Error("expected healthy units to succeed")
	}
	if !errors.Is(results[1].Err, director.ErrUnknownRecipe) {
		t.Errorf("expected unknown recipe, got %v", results[1].Err)
	}
	if !errors.Is(results[2].Err, builders.ErrUnknownVariant) {
		t.Errorf("expected unknown variant, got %v", results[2].Err)
	}
	if results[3].Product.Len() != 3 {
		t.Errorf("expected full product, got %s", results[3].Product.Describe())
	}

	_, failed, _ := notifier.LastBatch()
	if failed != 2 {
		t.Errorf("expected 2 failures reported, got %d", failed)
	}
}

func TestEngine_RecoversPanics(t *testing.T) {
	e, factory, _ := newEngine(t)
	factory.SetPanic("pizza")

	results, err := e.Assemble(context.Background(), []types.Order{
		{Recipe: director.FullRecipe, Variant: "pizza"},
		{Recipe: director.FullRecipe},
	})

	if !errors.Is(err, engine.ErrAssemblyFailed) {
		t.Fatalf("expected ErrAssemblyFailed, got %v", err)
	}
	if !errors.Is(results[0].Err, engine.ErrUnitPanicked) {
		t.Errorf("expected panic to be recorded, got %v", results[0].Err)
	}
	if !results[1].Succeeded() {
		t.Errorf("expected sibling to succeed, got %v", results[1].Err)
	}
}

func TestEngine_CreateError(t *testing.T) {
	e, factory, notifier := newEngine(t)
	boom := errors.New("out of dough")
	factory.SetCreateError("pizza", boom)

	results, err := e.Assemble(context.Background(), []types.Order{{Recipe: director.MinimalRecipe, Variant: "pizza"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected create error, got %v", err)
	}
	if results[0].Product != nil {
		t.Error("expected no product for a failed unit")
	}

	events := notifier.Events()
	if len(events) != 1 || events[0].Kind != "failed" || !errors.Is(events[0].Err, boom) {
		t.Errorf("unexpected notifier events: %+v", events)
	}
}

func TestEngine_CancelledContext(t *testing.T) {
	e, factory, _ := newEngine(t, engine.WithParallelism(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := e.Assemble(ctx, []types.Order{{Recipe: director.FullRecipe, Count: 3}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("unit %d: expected context.Canceled, got %v", i, r.Err)
		}
	}
	if factory.CreateCount() != 0 {
		t.Errorf("expected no builders created, got %d", factory.CreateCount())
	}
}

func TestEngine_EmptyBatch(t *testing.T) {
	e, _, notifier := newEngine(t)

	results, err := e.Assemble(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if total, _, batches := notifier.LastBatch(); total != 0 || batches != 1 {
		t.Errorf("expected an empty batch summary, got total=%d batches=%d", total, batches)
	}
}

func TestEngine_DefaultParallelism(t *testing.T) {
	e := engine.New(mocks.NewMockFactory(), director.NewCookbook())
	if e.Parallelism() < 1 {
		t.Errorf("expected positive default parallelism, got %d", e.Parallelism())
	}
}

func TestSafeGroup(t *testing.T) {
	t.Run("converts panics to errors", func(t *testing.T) {
		sg := engine.NewSafeGroup(nil)
		sg.Go(func() error { panic("boom") })

		err := sg.Wait()
		if !errors.Is(err, engine.ErrUnitPanicked) {
			t.Errorf("expected ErrUnitPanicked, got %v", err)
		}
	})

	t.Run("failure does not cancel siblings", func(t *testing.T) {
		sg := engine.NewSafeGroup(nil)
		var finished atomic.Int32

		sg.Go(func() error { return errors.New("first") })
		sg.Go(func() error {
			time.Sleep(10 * time.Millisecond)
			finished.Add(1)
			return nil
		})

		if err := sg.Wait(); err == nil || err.Error() != "first" {
			t.Errorf("expected first error, got %v", err)
		}
		if finished.Load() != 1 {
			t.Error("expected sibling to finish")
		}
	})

	t.Run("limit bounds concurrency", func(t *testing.T) {
		sg := engine.NewSafeGroup(nil)
		sg.SetLimit(2)

		var running, peak atomic.Int32
		for i := 0; i < 8; i++ {
			sg.Go(func() error {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
				return nil
			})
		}

		if err := sg.Wait(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak.Load() > 2 {
			t.Errorf("expected at most 2 concurrent goroutines, saw %d", peak.Load())
		}
	})

	t.Run("protect runs inline", func(t *testing.T) {
		sg := engine.NewSafeGroup(nil)
		err := sg.Protect(func() error { panic(42) })
		if err == nil || !strings.Contains(err.Error(), "42") {
			t.Errorf("expected recovered panic, got %v", err)
		}
	})
}

func TestEngine_AssembleReportsBatchDuration(t *testing.T) {
	e, _, notifier := newEngine(t)

	if _, err := e.Assemble(context.Background(), []types.Order{{Recipe: director.FullRecipe, Count: 3}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d := notifier.LastBatchDuration(); d <= 0 {
		t.Errorf("expected a positive batch duration, got %s", d)
	}
}
