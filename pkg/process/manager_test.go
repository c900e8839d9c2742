package process_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stepwise/stepwise/pkg/process"
)

func TestManager_StopRunsHandlersInReverse(t *testing.T) {
	m := process.NewManager(nil)

	var mu sync.Mutex
	var order []int
	for i := 1; i <= 3; i++ {
		m.RegisterShutdownHandler(func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, i)
		})
	}

	ctx := m.Start(context.Background())
	if !m.IsRunning() {
		t.Fatal("expected manager to be running")
	}

	m.Stop()

	if m.IsRunning() {
		t.Error("expected manager to be stopped")
	}
	if ctx.Err() == nil {
		t.Error("expected the managed context to be cancelled")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Errorf("expected handlers in reverse order, got %v", order)
	}
}

func TestManager_ParentCancellation(t *testing.T) {
	m := process.NewManager(nil)

	done := make(chan struct{})
	m.RegisterShutdownHandler(func() { close(done) })

	parent, cancel := context.WithCancel(context.Background())
	ctx := m.Start(parent)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown handler did not run")
	}
	<-ctx.Done()
	m.Stop()
}

func TestManager_Heartbeat(t *testing.T) {
	m := process.NewManager(nil)

	var beats atomic.Int32
	m.SetHeartbeat(5*time.Millisecond, func() { beats.Add(1) })

	m.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	m.Stop()

	if beats.Load() == 0 {
		t.Error("expected at least one heartbeat")
	}

	after := beats.Load()
	time.Sleep(20 * time.Millisecond)
	if beats.Load() != after {
		t.Error("heartbeat kept running after Stop")
	}
}

func TestManager_StopWithoutStart(t *testing.T) {
	m := process.NewManager(nil)
	m.Stop()
	if m.IsRunning() {
		t.Error("expected idle manager")
	}
}
