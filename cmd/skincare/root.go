package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"skincare-backend/application/queries"
	"skincare-backend/application/queries/bus"
	"skincare-backend/infrastructure/config"
	"skincare-backend/infrastructure/di"
	pkgerrors "skincare-backend/pkg/errors"
)

// cli holds the flags and the wired container shared by every command
type cli struct {
	jsonOutput  bool
	catalogPath string
	verbose     bool

	container *di.Container
	cleanup   func()
}

// execute runs the command line. A nil args uses os.Args.
func execute(args []string, out io.Writer) error {
	c := &cli{}
	defer c.close()

	root := c.rootCommand()
	if args != nil {
		root.SetArgs(args)
	}
	if out != nil {
		root.SetOut(out)
	}
	return root.Execute()
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "skincare",
		Short:         "Skincare ingredient knowledge graph and routine builder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&c.jsonOutput, "json", false, "print results as JSON")
	flags.StringVar(&c.catalogPath, "catalog", "", "catalog YAML file (default: embedded catalog)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.ingredientCommand(),
		c.listCommand(),
		c.searchCommand(),
		c.checkCommand(),
		c.explainCommand(),
		c.compareCommand(),
		c.analyzeCommand(),
		c.routineCommand(),
		c.askCommand(),
	)

	return root
}

// init wires the container. The CLI neither serves metrics nor caches.
func (c *cli) init() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	cfg.EnableMetrics = false
	cfg.EnableTracing = false
	cfg.CacheTTL = 0
	cfg.LogLevel = "warn"
	if c.verbose {
		cfg.LogLevel = "debug"
	}
	if c.catalogPath != "" {
		cfg.CatalogPath = c.catalogPath
	}

	container, cleanup, err := di.InitializeContainer(cfg)
	if err != nil {
		return err
	}
	c.container = container
	c.cleanup = cleanup
	return nil
}

func (c *cli) close() {
	if c.cleanup != nil {
		c.cleanup()
	}
	if c.container != nil {
		_ = c.container.Logger.Sync()
	}
}

// run dispatches the query and prints its result
func (c *cli) run(cmd *cobra.Command, query bus.Query) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := c.container.QueryBus.Ask(ctx, query)
	if err != nil {
		return err
	}
	return c.print(cmd.OutOrStdout(), result)
}

func (c *cli) print(w io.Writer, result interface{}) error {
	if c.jsonOutput {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	switch r := result.(type) {
	case *queries.IngredientResult:
		renderIngredient(w, r)
	case *queries.ListIngredientsResult:
		renderIngredientList(w, r)
	case *queries.SearchIngredientsResult:
		renderSearch(w, r)
	case *queries.IngredientInteractionsResult:
		renderInteractions(w, r)
	case *queries.ExplainInteractionResult:
		renderExplanation(w, r)
	case *queries.CompatibilityResult:
		renderCompatibility(w, r)
	case *queries.RoutineResult:
		renderRoutine(w, r)
	case *queries.SuggestRoutineResult:
		renderSuggestion(w, r)
	case *queries.ComparisonResult:
		renderComparison(w, r)
	case *queries.IngredientListResult:
		renderIngredientAnalysis(w, r)
	case *queries.AdvisorResult:
		renderAnswer(w, r)
	default:
		return fmt.Errorf("no renderer for %T", result)
	}
	return nil
}

// describeError prefers the user-facing message of application errors and
// lists catalog problems one per line
func describeError(err error) string {
	appErr := pkgerrors.GetAppError(err)
	if appErr == nil {
		return err.Error()
	}
	message := appErr.Message
	for _, problem := range appErr.Problems() {
		message += "\n  - " + problem
	}
	return message
}

// profileFlags are shared by commands that accept an optional skin profile
type profileFlags struct {
	skinType string
	concerns []string
}

func (p *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.skinType, "skin-type", "", "skin type: normal, dry, oily, combination, sensitive")
	cmd.Flags().StringSliceVar(&p.concerns, "concerns", nil, "comma separated concerns, e.g. acne,aging")
}

// input returns nil when neither flag was given
func (p *profileFlags) input() *queries.ProfileInput {
	if p.skinType == "" && len(p.concerns) == 0 {
		return nil
	}
	return &queries.ProfileInput{SkinType: p.skinType, Concerns: p.concerns}
}
