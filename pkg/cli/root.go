// Package cli provides the command-line interface for Stepwise
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stepwise/stepwise/pkg/config"
	"github.com/stepwise/stepwise/pkg/logger"
)

const envPrefix = "STEPWISE"

// CLI owns the command tree and its output streams
type CLI struct {
	config      *Config
	rootCmd     *cobra.Command
	viper       *viper.Viper
	logger      logger.Logger
	output      io.Writer
	errorOut    io.Writer
	interactive bool
	outMu       sync.Mutex
}

// NewCLI creates a CLI writing to stdout and stderr
func NewCLI(cfg *Config) *CLI {
	if cfg == nil {
		cfg = NewConfig()
	}

	c := &CLI{
		config:      cfg,
		viper:       viper.New(),
		logger:      logger.NewNopLogger(),
		output:      os.Stdout,
		errorOut:    os.Stderr,
		interactive: true,
	}

	c.setupCommands()
	return c
}

// NewCLIWithOutput creates a CLI with custom output writers. Logs are
// coloured only when errorOut is the process stderr.
func NewCLIWithOutput(cfg *Config, output, errorOut io.Writer) *CLI {
	c := NewCLI(cfg)
	c.output = output
	c.errorOut = errorOut
	c.interactive = errorOut == io.Writer(os.Stderr)
	c.rootCmd.SetOut(output)
	c.rootCmd.SetErr(errorOut)
	return c
}

// Execute runs the CLI with the given arguments
func (c *CLI) Execute(args []string) error {
	return c.ExecuteContext(context.Background(), args)
}

// ExecuteContext runs the CLI with context support
func (c *CLI) ExecuteContext(ctx context.Context, args []string) error {
	c.rootCmd.SetArgs(args)
	return c.rootCmd.ExecuteContext(ctx)
}

func (c *CLI) setupCommands() {
	c.rootCmd = &cobra.Command{
		Use:   "stepwise",
		Short: "Assemble products step by step",
		Long: `🧱 Stepwise - products assembled one step at a time

A director drives a builder through a recipe of steps. Each variant
labels the steps differently, so the same recipe can produce a house,
a pizza or a plain A, B, C product.`,

		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.initializeConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	c.setupFlags()

	c.rootCmd.Version = c.config.Version
	c.rootCmd.SetVersionTemplate("🧱 Stepwise v{{.Version}}\n")

	c.rootCmd.AddCommand(c.newDemoCmd())
	c.rootCmd.AddCommand(c.newBuildCmd())
	c.rootCmd.AddCommand(c.newListCmd())
	c.rootCmd.AddCommand(c.newBatchCmd())
	c.rootCmd.AddCommand(c.newValidateCmd())
	c.rootCmd.AddCommand(c.newInitCmd())
	c.rootCmd.AddCommand(c.newWatchCmd())
	c.rootCmd.AddCommand(c.newVersionCmd())
}

func (c *CLI) setupFlags() {
	flags := c.rootCmd.PersistentFlags()

	flags.StringVar(&c.config.ConfigFile, "config", "", "config file (default: stepwise.config.yaml under --root)")
	flags.StringVar(&c.config.ProjectRoot, "root", ".", "project root directory")
	flags.StringVarP(&c.config.Verbosity, "verbosity", "v", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&c.config.Notify, "notify", false, "send desktop notifications")
}

func (c *CLI) initializeConfig(cmd *cobra.Command, args []string) error {
	v := c.viper
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	c.config.ProjectRoot = v.GetString("root")
	c.config.Verbosity = v.GetString("verbosity")
	c.config.Notify = v.GetBool("notify")
	c.config.ConfigFile = v.GetString("config")

	c.logger = c.newLogger(c.config.Verbosity)

	if c.config.ConfigFile != "" {
		v.SetConfigFile(c.config.ConfigFile)
	} else {
		v.AddConfigPath(c.config.ProjectRoot)
		v.SetConfigName(config.DefaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			c.logger.Debug("Config file not read by discovery",
				logger.WithField("error", err))
		}
		return nil
	}

	c.logger.Debug("Using config file",
		logger.WithField("file", v.ConfigFileUsed()))
	return nil
}

func (c *CLI) newLogger(level string) logger.Logger {
	if c.interactive {
		return logger.CreateLogger("", level)
	}
	return logger.CreateLoggerWithOutput(level, c.errorOut)
}

// verbosityExplicit reports whether the log level came from a flag or
// the environment rather than the default
func (c *CLI) verbosityExplicit() bool {
	return c.viper.IsSet("verbosity")
}

// Helper methods

func (c *CLI) printSuccess(message string) {
	c.printTo(c.output, color.GreenString("[Stepwise]"), message)
}

func (c *CLI) printError(message string) {
	c.printTo(c.errorOut, color.RedString("[Stepwise]"), message)
}

func (c *CLI) printInfo(message string) {
	c.printTo(c.output, color.CyanString("[Stepwise]"), message)
}

func (c *CLI) printWarning(message string) {
	c.printTo(c.output, color.YellowString("[Stepwise]"), message)
}

func (c *CLI) printTo(w io.Writer, tag, message string) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintf(w, "🧱 %s %s\n", tag, message)
}

func (c *CLI) getConfigPath() string {
	if c.config.ConfigFile != "" {
		return c.config.ConfigFile
	}
	if used := c.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(c.config.ProjectRoot, config.DefaultConfigName+".yaml")
}
