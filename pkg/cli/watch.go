package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"github.com/stepwise/stepwise/pkg/config"
	"github.com/stepwise/stepwise/pkg/logger"
	"github.com/stepwise/stepwise/pkg/process"
	"github.com/stepwise/stepwise/pkg/types"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	var parallel int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Assemble the orders and re-assemble on every config change",
		Long: `Run the configured batch once, then watch the configuration file and run
the batch again whenever it changes. Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), parallel)
		},
	}

	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "maximum concurrent assemblies")

	return cmd
}

// watchRunner re-runs the batch for each accepted configuration. Runs
// are serialized.
type watchRunner struct {
	cli      *CLI
	parallel int
	mu       sync.Mutex
	runs     int
}

func (c *CLI) runWatch(ctx context.Context, parallel int) error {
	if ctx == nil {
		ctx = context.Background()
	}

	p, err := c.loadProject(true)
	if err != nil {
		return err
	}

	runner := &watchRunner{cli: c, parallel: parallel}

	pm := process.NewManager(c.logger)
	ctx = pm.Start(ctx)
	defer pm.Stop()

	runner.run(ctx, p)

	rm := config.NewReloadManager(p.path, c.logger)
	rm.AddCallback(func(cfg *types.Config, err error) {
		if err != nil {
			c.printError(fmt.Sprintf("Configuration rejected: %v", err))
			return
		}
		next, err := c.buildProject(p.path, cfg)
		if err != nil {
			c.printError(err.Error())
			return
		}
		c.printInfo("Configuration changed, re-assembling")
		runner.run(ctx, next)
	})

	if err := rm.StartWatching(ctx); err != nil {
		return fmt.Errorf("failed to watch config: %w", err)
	}
	pm.RegisterShutdownHandler(func() {
		if err := rm.StopWatching(); err != nil {
			c.logger.Warn("Failed to stop watcher", logger.WithField("error", err))
		}
	})

	c.printInfo(fmt.Sprintf("Watching %s for changes", p.path))

	<-ctx.Done()

	c.printSuccess("Stepwise stopped gracefully")
	return nil
}

func (r *watchRunner) run(ctx context.Context, p *project) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	r.runs++

	orders := p.orders()
	if len(orders) == 0 {
		r.cli.printWarning("No orders configured")
		return
	}

	rc := NewRuntimeConfig(r.cli.config, ctx)
	results, err := r.cli.newEngine(p, r.parallel).Assemble(rc.Context, orders)
	r.cli.printResults(results)

	if err != nil {
		r.cli.printError(err.Error())
		return
	}
	r.cli.printSuccess(fmt.Sprintf("Run %d: assembled %d product(s)", r.runs, len(results)))
}
