// Package process ties a long-running command to OS signals
package process

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/stepwise/stepwise/pkg/logger"
)

// DefaultHeartbeatInterval is used when SetHeartbeat is given no interval
const DefaultHeartbeatInterval = 10 * time.Second

// Manager handles process lifecycle and signals
type Manager struct {
	logger            logger.Logger
	shutdownHandlers  []func()
	heartbeatFunc     func()
	heartbeatInterval time.Duration
	stop              chan struct{}
	cancel            context.CancelFunc
	wg                sync.WaitGroup
	mu                sync.Mutex
	running           bool
}

// NewManager creates a new process manager
func NewManager(log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Manager{
		logger: log.WithComponent("process"),
	}
}

// RegisterShutdownHandler adds a shutdown handler. Handlers run in
// reverse registration order.
func (m *Manager) RegisterShutdownHandler(handler func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shutdownHandlers = append(m.shutdownHandlers, handler)
}

// SetHeartbeat runs fn every interval while the manager is running
func (m *Manager) SetHeartbeat(interval time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	m.heartbeatInterval = interval
	m.heartbeatFunc = fn
}

// Start watches for SIGINT, SIGTERM and SIGHUP. The returned context is
// cancelled when a signal arrives, when ctx ends or when Stop is called;
// shutdown handlers run at that point.
func (m *Manager) Start(ctx context.Context) context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return ctx
	}
	m.running = true
	m.stop = make(chan struct{})

	ctx, m.cancel = context.WithCancel(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer signal.Stop(sigChan)

		select {
		case <-ctx.Done():
		case <-m.stop:
		case sig := <-sigChan:
			m.logger.Info("Received signal", logger.WithField("signal", sig))
		}
		m.handleShutdown()
	}()

	if m.heartbeatFunc != nil {
		m.startHeartbeat(ctx, m.heartbeatInterval, m.heartbeatFunc)
	}
	return ctx
}

// Stop shuts the manager down and waits for its goroutines
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.stop != nil {
		select {
		case <-m.stop:
		default:
			close(m.stop)
		}
	}
	m.mu.Unlock()

	m.wg.Wait()
}

// IsRunning checks if the process manager is running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Manager) handleShutdown() {
	m.logger.Info("Initiating graceful shutdown...")

	m.mu.Lock()
	handlers := make([]func(), len(m.shutdownHandlers))
	copy(handlers, m.shutdownHandlers)
	m.running = false
	cancel := m.cancel
	m.mu.Unlock()

	cancel()

	for i := len(handlers) - 1; i >= 0; i-- {
		handlers[i]()
	}
}

func (m *Manager) startHeartbeat(ctx context.Context, interval time.Duration, fn func()) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
}
