package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stepwise/stepwise/internal/engine"
	"github.com/stepwise/stepwise/pkg/config"
	"github.com/stepwise/stepwise/pkg/director"
	"github.com/stepwise/stepwise/pkg/logger"
	"github.com/stepwise/stepwise/pkg/product"
	"github.com/stepwise/stepwise/pkg/validation"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func (c *CLI) newDemoCmd() *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the builder walkthrough",
		Long: `Build a minimal product and a full featured product through the director,
then drive the builder directly to build a custom product.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDemo(variant)
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "variant that labels the parts (default: the configured default)")

	return cmd
}

func (c *CLI) newBuildCmd() *cobra.Command {
	var variant string
	var output string

	cmd := &cobra.Command{
		Use:   "build <recipe>",
		Short: "Build one product from a recipe",
		Long:  `Build a single product by running the named recipe through the director.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(args[0], variant, output)
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "variant that labels the parts")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format (text, json)")

	return cmd
}

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List variants and recipes",
		Long:  `List the built-in and configured variants and recipes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList()
		},
	}
}

func (c *CLI) newBatchCmd() *cobra.Command {
	var parallel int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Assemble every order in the configuration",
		Long:  `Assemble the configured orders concurrently and print one row per product.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd, parallel)
		},
	}

	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "maximum concurrent assemblies (default: batch.parallelism or CPU count)")

	return cmd
}

func (c *CLI) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Long:  `Check the configuration file and report errors, warnings and notes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate()
		},
	}
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Stepwise",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.output, "🧱 Stepwise v%s\n", c.config.Version)
		},
	}
}

// Implementation functions

func (c *CLI) runDemo(variant string) error {
	p, err := c.loadProject(false)
	if err != nil {
		return err
	}

	builder, err := p.factory.Create(variant, c.logger)
	if err != nil {
		return err
	}

	d := director.New()
	d.SetBuilder(builder)

	fmt.Fprintln(c.output, "Standard basic product:")
	if err := d.BuildMinimalViableProduct(); err != nil {
		return err
	}
	fmt.Fprintln(c.output, builder.GetProduct().Describe())

	fmt.Fprintln(c.output, "Standard full featured product:")
	if err := d.BuildFullFeaturedProduct(); err != nil {
		return err
	}
	fmt.Fprintln(c.output, builder.GetProduct().Describe())

	// The builder works without a director too
	fmt.Fprintln(c.output, "Custom product:")
	builder.BuildPartA()
	builder.BuildPartC()
	fmt.Fprintln(c.output, builder.GetProduct().Describe())

	return nil
}

type buildOutput struct {
	Recipe  string           `json:"recipe"`
	Variant string           `json:"variant"`
	Product *product.Product `json:"product"`
}

func (c *CLI) runBuild(recipeName, variant, output string) error {
	if output != outputText && output != outputJSON {
		return fmt.Errorf("unsupported output format: %s", output)
	}

	p, err := c.loadProject(false)
	if err != nil {
		return err
	}

	recipe, err := p.cookbook.Get(recipeName)
	if err != nil {
		return err
	}
	builder, err := p.factory.Create(variant, c.logger)
	if err != nil {
		return err
	}

	d := director.New()
	d.SetBuilder(builder)
	if err := d.Construct(recipe); err != nil {
		return err
	}
	built := builder.GetProduct()

	c.logger.Debug("Product built",
		logger.WithField("recipe", recipe.Name),
		logger.WithField("variant", builder.Variant()))

	if output == outputJSON {
		enc := json.NewEncoder(c.output)
		enc.SetIndent("", "  ")
		return enc.Encode(buildOutput{
			Recipe:  recipe.Name,
			Variant: builder.Variant(),
			Product: built,
		})
	}

	fmt.Fprintln(c.output, built.Describe())
	return nil
}

func (c *CLI) runList() error {
	p, err := c.loadProject(false)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tDEFAULT\tA\tB\tC")
	fmt.Fprintln(w, "-------\t-------\t-\t-\t-")

	for _, name := range p.factory.Variants() {
		labels, err := p.factory.Labels(name)
		if err != nil {
			continue
		}

		isDefault := ""
		if name == p.factory.Default() {
			isDefault = "✓"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, isDefault, labels.A, labels.B, labels.C)
	}
	w.Flush()

	fmt.Fprintln(c.output)

	w = tabwriter.NewWriter(c.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RECIPE\tSTEPS\tDESCRIPTION")
	fmt.Fprintln(w, "------\t-----\t-----------")

	for _, name := range p.cookbook.Names() {
		recipe, err := p.cookbook.Get(name)
		if err != nil {
			continue
		}

		steps := make([]string, len(recipe.Steps))
		for i, s := range recipe.Steps {
			steps[i] = string(s)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\n", recipe.Name, strings.Join(steps, ","), recipe.Description)
	}
	w.Flush()

	return nil
}

func (c *CLI) runBatch(cmd *cobra.Command, parallel int) error {
	p, err := c.loadProject(true)
	if err != nil {
		return err
	}

	orders := p.orders()
	if len(orders) == 0 {
		c.printWarning("No orders configured")
		return nil
	}

	rc := NewRuntimeConfig(c.config, cmd.Context())
	eng := c.newEngine(p, parallel)

	c.printInfo(fmt.Sprintf("Assembling %d order(s) with parallelism %d", len(orders), eng.Parallelism()))

	results, err := eng.Assemble(rc.Context, orders)
	c.printResults(results)

	if err != nil {
		c.printError(err.Error())
		return err
	}

	c.printSuccess(fmt.Sprintf("Assembled %d product(s) in %.2fs", len(results), rc.Elapsed().Seconds()))
	return nil
}

func (c *CLI) printResults(results []engine.Result) {
	c.outMu.Lock()
	defer c.outMu.Unlock()

	w := tabwriter.NewWriter(c.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tRECIPE\tVARIANT\tSTATUS\tDURATION\tPRODUCT")
	fmt.Fprintln(w, "-\t------\t-------\t------\t--------\t-------")

	for i, r := range results {
		status := color.GreenString("ok")
		detail := ""
		if r.Succeeded() {
			detail = r.Product.Describe()
		} else {
			status = color.RedString("failed")
			detail = r.Err.Error()
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			r.Recipe,
			variantOrDefault(r.Variant),
			status,
			r.Duration.Round(time.Microsecond),
			detail,
		)
	}

	w.Flush()
}

func variantOrDefault(v string) string {
	if v == "" {
		return "(default)"
	}
	return v
}

func (c *CLI) runValidate() error {
	path := c.getConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		c.printError(fmt.Sprintf("Cannot read configuration: %v", err))
		return fmt.Errorf("failed to read config file: %w", err)
	}

	manager := config.NewManager()
	cfg, err := manager.Parse(data)
	if err != nil {
		c.printError(fmt.Sprintf("Configuration is invalid: %v", err))
		return err
	}

	result := manager.Validate(cfg)

	errs := result.ByLevel(validation.ValidationLevelError)
	warnings := result.ByLevel(validation.ValidationLevelWarning)
	notes := result.ByLevel(validation.ValidationLevelInfo)

	if len(errs) > 0 {
		c.printError("Configuration has errors:")
		for _, e := range errs {
			fmt.Fprintf(c.output, "  ✗ %s\n", e.Error())
		}
	}

	if len(warnings) > 0 {
		c.printWarning("Configuration warnings:")
		for _, w := range warnings {
			fmt.Fprintf(c.output, "  ⚠ %s\n", w.Error())
		}
	}

	if len(notes) > 0 {
		c.printInfo("Notes:")
		for _, n := range notes {
			fmt.Fprintf(c.output, "  • %s\n", n.Error())
		}
	}

	if len(errs) == 0 {
		c.printSuccess(fmt.Sprintf("Configuration is valid: %s", path))
		return nil
	}

	return fmt.Errorf("%w: %d error(s)", config.ErrInvalidConfig, len(errs))
}
