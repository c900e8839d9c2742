package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/stepwise/stepwise/pkg/config"
)

func (c *CLI) newInitCmd() *cobra.Command {
	var format string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new Stepwise configuration",
		Long: `Write a starter configuration with a custom variant, a custom recipe and
a few orders to the project root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := config.Format(format)
			if !cmd.Flags().Changed("format") && c.config.ConfigFile != "" {
				f = config.FormatFromPath(c.config.ConfigFile)
			}
			return c.runInit(f, force)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatYAML), "config format (yaml, json)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration")

	return cmd
}

func (c *CLI) runInit(format config.Format, force bool) error {
	if format != config.FormatYAML && format != config.FormatJSON {
		return fmt.Errorf("unsupported config format: %s", format)
	}

	configPath := c.config.ConfigFile
	if configPath == "" {
		configPath = filepath.Join(c.config.ProjectRoot, config.DefaultConfigName+"."+string(format))
	}

	if !force {
		for _, existing := range []string{configPath, c.viper.ConfigFileUsed()} {
			if existing == "" {
				continue
			}
			if _, err := os.Stat(existing); err == nil {
				return fmt.Errorf("configuration already exists at %s. Use --force to overwrite", existing)
			}
		}
	}

	manager := config.NewManager()
	if err := manager.WriteConfig(configPath, manager.GetDefaultConfig(), format); err != nil {
		return err
	}

	c.printSuccess(fmt.Sprintf("Created %s", configPath))
	c.printInfo("Run 'stepwise list' to see the variants and recipes")
	c.printInfo("Run 'stepwise batch' to assemble the orders")
	return nil
}
