package engine

import (
	"fmt"
	"runtime/debug"

	"github.com/stepwise/stepwise/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// SafeGroup wraps errgroup.Group with panic recovery. A failing
// goroutine does not cancel its siblings.
type SafeGroup struct {
	group  errgroup.Group
	logger logger.Logger
}

// NewSafeGroup creates a new SafeGroup with panic recovery
func NewSafeGroup(log logger.Logger) *SafeGroup {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &SafeGroup{logger: log}
}

// Go runs fn in a new goroutine. A panic is converted to an error and
// logged with its stack trace.
func (sg *SafeGroup) Go(fn func() error) {
	sg.group.Go(func() error {
		return sg.Protect(fn)
	})
}

// Protect runs fn on the calling goroutine with the same recovery as Go
func (sg *SafeGroup) Protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			sg.logger.Error("Goroutine panic recovered",
				logger.WithField("panic", r),
				logger.WithField("stack_trace", string(debug.Stack())))
			err = fmt.Errorf("%w: %v", ErrUnitPanicked, r)
		}
	}()

	return fn()
}

// SetLimit caps the number of goroutines running at once. n <= 0 leaves
// the group unlimited.
func (sg *SafeGroup) SetLimit(n int) {
	if n > 0 {
		sg.group.SetLimit(n)
	}
}

// Wait blocks until every goroutine has returned and reports the first error
func (sg *SafeGroup) Wait() error {
	return sg.group.Wait()
}
