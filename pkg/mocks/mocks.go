// Package mocks provides hand-written test doubles for the stepwise interfaces
package mocks

import (
	"fmt"
	"sync"
	"time"

	"github.com/stepwise/stepwise/pkg/builders"
	"github.com/stepwise/stepwise/pkg/interfaces"
	"github.com/stepwise/stepwise/pkg/logger"
	"github.com/stepwise/stepwise/pkg/product"
)

// RecordingBuilder implements builders.Builder and records every step call
type RecordingBuilder struct {
	mu    sync.Mutex
	steps []builders.Step
}

var _ builders.Builder = (*RecordingBuilder)(nil)

// NewRecordingBuilder creates a recording builder
func NewRecordingBuilder() *RecordingBuilder {
	return &RecordingBuilder{}
}

// BuildPartA records step A
func (m *RecordingBuilder) BuildPartA() { m.record(builders.StepA) }

// BuildPartB records step B
func (m *RecordingBuilder) BuildPartB() { m.record(builders.StepB) }

// BuildPartC records step C
func (m *RecordingBuilder) BuildPartC() { m.record(builders.StepC) }

// Steps returns the recorded calls in order
func (m *RecordingBuilder) Steps() []builders.Step {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]builders.Step, len(m.steps))
	copy(out, m.steps)
	return out
}

// CallCount returns the number of recorded calls
func (m *RecordingBuilder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.steps)
}

func (m *RecordingBuilder) record(step builders.Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, step)
}

// MockFactory wraps a real factory and can inject errors or panics per variant
type MockFactory struct {
	mu          sync.Mutex
	inner       *builders.Factory
	createError map[string]error
	panics      map[string]bool
	created     int
}

var _ interfaces.BuilderFactory = (*MockFactory)(nil)

// NewMockFactory creates a mock factory over the built-in variants
func NewMockFactory() *MockFactory {
	return &MockFactory{
		inner:       builders.NewFactory(),
		createError: make(map[string]error),
		panics:      make(map[string]bool),
	}
}

// Create returns a builder from the wrapped factory unless an error or
// panic was configured for the variant
func (f *MockFactory) Create(variant string, log logger.Logger) (*builders.ConcreteBuilder, error) {
	f.mu.Lock()
	err := f.createError[variant]
	shouldPanic := f.panics[variant]
	f.created++
	f.mu.Unlock()

	if shouldPanic {
		panic(fmt.Sprintf("mock factory panic for variant %q", variant))
	}
	if err != nil {
		return nil, err
	}
	return f.inner.Create(variant, log)
}

// Variants returns the wrapped factory's variants
func (f *MockFactory) Variants() []string {
	return f.inner.Variants()
}

// SetCreateError makes Create fail for a variant
func (f *MockFactory) SetCreateError(variant string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createError[variant] = err
}

// SetPanic makes Create panic for a variant
func (f *MockFactory) SetPanic(variant string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.panics[variant] = true
}

// CreateCount returns the number of Create calls
func (f *MockFactory) CreateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}

// NotifierEvent is one recorded notification
type NotifierEvent struct {
	Kind    string
	Recipe  string
	Variant string
	Parts   []string
	Err     error
}

// MockNotifier records notifications
type MockNotifier struct {
	mu          sync.Mutex
	events      []NotifierEvent
	batchTotal  int
	batchFailed int
	batchTime   time.Duration
	batches     int
}

var _ interfaces.AssemblyNotifier = (*MockNotifier)(nil)

// NewMockNotifier creates a mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// NotifyAssembled records a successful assembly
func (n *MockNotifier) NotifyAssembled(recipe, variant string, p *product.Product, duration time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, NotifierEvent{Kind: "assembled", Recipe: recipe, Variant: variant, Parts: p.Parts()})
}

// NotifyFailure records a failed assembly
func (n *MockNotifier) NotifyFailure(recipe, variant string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, NotifierEvent{Kind: "failed", Recipe: recipe, Variant: variant, Err: err})
}

// NotifyBatchComplete records a batch summary
func (n *MockNotifier) NotifyBatchComplete(total, failed int, duration time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches++
	n.batchTotal = total
	n.batchFailed = failed
	n.batchTime = duration
}

// Events returns the recorded per-assembly events
func (n *MockNotifier) Events() []NotifierEvent {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]NotifierEvent, len(n.events))
	copy(out, n.events)
	return out
}

// LastBatch returns the most recent batch summary and the number of batches
func (n *MockNotifier) LastBatch() (total, failed, batches int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.batchTotal, n.batchFailed, n.batches
}

// LastBatchDuration returns the duration of the most recent batch summary
func (n *MockNotifier) LastBatchDuration() time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.batchTime
}
