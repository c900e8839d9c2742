// Package notifier sends desktop notifications about assembly results
package notifier

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/stepwise/stepwise/pkg/logger"
	"github.com/stepwise/stepwise/pkg/product"
)

// SendFunc delivers a single notification
type SendFunc func(title, message string) error

// Config represents notification configuration
type Config struct {
	Enabled bool
	// Beep plays the system beep on failures
	Beep bool
}

// AssemblyNotifier reports assemblies through desktop notifications,
// falling back to the logger when delivery fails
type AssemblyNotifier struct {
	enabled bool
	beep    bool
	logger  logger.Logger
	send    SendFunc
}

// New creates a notifier delivering through beeep
func New(config Config, log logger.Logger) *AssemblyNotifier {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &AssemblyNotifier{
		enabled: config.Enabled,
		beep:    config.Beep,
		logger:  log.WithComponent("notifier"),
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// WithSender replaces the delivery function
func (n *AssemblyNotifier) WithSender(send SendFunc) *AssemblyNotifier {
	n.send = send
	return n
}

// Enabled reports whether notifications are delivered
func (n *AssemblyNotifier) Enabled() bool {
	return n.enabled
}

// NotifyAssembled reports a finished product
func (n *AssemblyNotifier) NotifyAssembled(recipe, variant string, p *product.Product, duration time.Duration) {
	if !n.enabled {
		return
	}

	title := "🧱 Product Assembled"
	message := fmt.Sprintf("%s (%s): %d parts in %s", recipe, variant, p.Len(), formatDuration(duration))
	n.deliver(title, message)
}

// NotifyFailure reports a failed assembly
func (n *AssemblyNotifier) NotifyFailure(recipe, variant string, err error) {
	if !n.enabled {
		return
	}

	title := "❌ Assembly Failed"
	message := fmt.Sprintf("%s (%s): %v", recipe, variant, err)
	n.deliver(title, message)

	if n.beep {
		if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			n.logger.Debug("Failed to play sound", logger.WithField("error", err))
		}
	}
}

// NotifyBatchComplete summarises a batch run
func (n *AssemblyNotifier) NotifyBatchComplete(total, failed int, duration time.Duration) {
	if !n.enabled {
		return
	}

	title := "✅ Batch Complete"
	if failed > 0 {
		title = "⚠️ Batch Finished With Failures"
	}
	message := fmt.Sprintf("%d/%d products assembled in %s", total-failed, total, formatDuration(duration))
	n.deliver(title, message)
}

func (n *AssemblyNotifier) deliver(title, message string) {
	if err := n.send(title, message); err != nil {
		n.logger.Debug("Failed to send notification", logger.WithField("error", err))
		n.logger.Info(fmt.Sprintf("%s: %s", title, message))
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
