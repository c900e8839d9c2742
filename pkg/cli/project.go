package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/stepwise/stepwise/internal/engine"
	"github.com/stepwise/stepwise/pkg/builders"
	"github.com/stepwise/stepwise/pkg/config"
	"github.com/stepwise/stepwise/pkg/director"
	"github.com/stepwise/stepwise/pkg/interfaces"
	"github.com/stepwise/stepwise/pkg/notifier"
	"github.com/stepwise/stepwise/pkg/types"
)

// project is everything a command needs from the configuration file
type project struct {
	path     string
	cfg      *types.Config
	factory  *builders.Factory
	cookbook *director.Cookbook
}

// loadProject reads the configuration file. When the file does not exist
// and required is false, the built-in variants and recipes are used.
func (c *CLI) loadProject(required bool) (*project, error) {
	path := c.getConfigPath()
	manager := config.NewManager()

	cfg, err := manager.LoadConfig(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			c.logger.Debug("No config file, using built-ins")
			return &project{
				factory:  builders.NewFactory(),
				cookbook: director.NewCookbook(),
			}, nil
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.LogLevel != "" && !c.verbosityExplicit() {
		c.logger = c.newLogger(string(cfg.LogLevel))
	}
	return c.buildProject(path, cfg)
}

func (c *CLI) buildProject(path string, cfg *types.Config) (*project, error) {
	factory, cookbook, err := config.NewManager().Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build config: %w", err)
	}

	return &project{
		path:     path,
		cfg:      cfg,
		factory:  factory,
		cookbook: cookbook,
	}, nil
}

// orders returns the configured orders
func (p *project) orders() []types.Order {
	if p.cfg == nil {
		return nil
	}
	return p.cfg.Orders
}

func (c *CLI) notificationsEnabled(p *project) bool {
	return c.config.Notify || (p.cfg != nil && p.cfg.NotificationsEnabled())
}

func (c *CLI) newNotifier(p *project) interfaces.AssemblyNotifier {
	return notifier.New(notifier.Config{
		Enabled: c.notificationsEnabled(p),
		Beep:    true,
	}, c.logger)
}

func (c *CLI) newEngine(p *project, parallel int) *engine.Engine {
	if parallel <= 0 && p.cfg != nil {
		parallel = p.cfg.Parallelism()
	}
	return engine.New(p.factory, p.cookbook,
		engine.WithLogger(c.logger),
		engine.WithNotifier(c.newNotifier(p)),
		engine.WithParallelism(parallel))
}
