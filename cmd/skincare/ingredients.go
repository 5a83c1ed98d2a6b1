package main

import (
	"strings"

	"github.com/spf13/cobra"

	"skincare-backend/application/queries"
)

func (c *cli) ingredientCommand() *cobra.Command {
	var withInteractions bool

	cmd := &cobra.Command{
		Use:   "ingredient <name>",
		Short: "Show one ingredient by id, name or alias",
		Example: `  skincare ingredient niacinamide
  skincare ingredient "vitamin c" --interactions`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if withInteractions {
				return c.run(cmd, queries.GetIngredientInteractionsQuery{ID: name})
			}
			return c.run(cmd, queries.GetIngredientQuery{ID: name})
		},
	}
	cmd.Flags().BoolVar(&withInteractions, "interactions", false, "list the ingredient's known interactions instead")
	return cmd
}

func (c *cli) listCommand() *cobra.Command {
	var concern string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ingredients, optionally only those addressing one concern",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, queries.ListIngredientsQuery{Concern: concern})
		},
	}
	cmd.Flags().StringVar(&concern, "concern", "", "only ingredients for this concern, ranked by priority")
	return cmd
}

func (c *cli) searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "search <text>",
		Short:   "Fuzzy search the catalog",
		Example: `  skincare search retinl`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, queries.SearchIngredientsQuery{Text: strings.Join(args, " ")})
		},
	}
}

func (c *cli) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <ingredient>...",
		Short: "Check a set of ingredients for conflicts, cautions and synergies",
		Example: `  skincare check retinol glycolic_acid niacinamide
  skincare check "vitamin c" "vitamin e" ferulic`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, queries.CheckCompatibilityQuery{Ingredients: args})
		},
	}
}

func (c *cli) explainCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "explain <a> <b>",
		Short:   "Explain how two ingredients interact",
		Example: `  skincare explain retinol "vitamin c"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, queries.ExplainInteractionQuery{A: args[0], B: args[1]})
		},
	}
}

func (c *cli) analyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "analyze <ingredient>...",
		Short:   "Break down one product's ingredient list",
		Example: `  skincare analyze water niacinamide "zinc pca" squalane`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, queries.AnalyzeIngredientsQuery{Ingredients: args})
		},
	}
}

func (c *cli) askCommand() *cobra.Command {
	var profile profileFlags

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a free-text question",
		Example: `  skincare ask "can I use retinol with vitamin c?"
  skincare ask what helps with acne --skin-type oily`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, queries.AskAdvisorQuery{
				Question: strings.Join(args, " "),
				Profile:  profile.input(),
			})
		},
	}
	profile.register(cmd)
	return cmd
}
