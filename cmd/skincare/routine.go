package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"skincare-backend/application/queries"
)

func (c *cli) compareCommand() *cobra.Command {
	var productA, productB []string

	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Check whether two products can share a routine",
		Example: `  skincare compare --a retinol,squalane --b "glycolic acid"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, queries.CompareProductsQuery{ProductA: productA, ProductB: productB})
		},
	}
	cmd.Flags().StringSliceVar(&productA, "a", nil, "comma separated ingredients of the first product")
	cmd.Flags().StringSliceVar(&productB, "b", nil, "comma separated ingredients of the second product")
	return cmd
}

func (c *cli) routineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routine",
		Short: "Build, analyze or suggest routines",
		Long: `Build, analyze or suggest routines.

Example request file (routine.yaml):
  time: PM
  profile:
    skin_type: oily
    concerns: [acne]
  products:
    - name: Gel Cleanser
      ingredients: [cleanser]
    - name: Retinol Serum
      ingredients: [retinol, squalane]`,
	}

	cmd.AddCommand(
		c.routineBuildCommand(),
		c.routineAnalyzeCommand(),
		c.routineSuggestCommand(),
	)
	return cmd
}

func (c *cli) routineBuildCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "build",
		Short:   "Order products into a routine and analyze it",
		Example: `  skincare routine build -f routine.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var query queries.BuildRoutineQuery
			if err := loadRequest(file, &query); err != nil {
				return err
			}
			return c.run(cmd, query)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "request file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) routineAnalyzeCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Diagnose an existing routine without reordering it",
		Long: `Diagnose an existing routine without reordering it.

Example request file (steps.yaml):
  time: AM
  steps:
    - product_name: Moisturizer
      ingredients: [moisturizer]
    - product_name: Vitamin C Serum
      ingredients: [vitamin c]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var query queries.AnalyzeRoutineQuery
			if err := loadRequest(file, &query); err != nil {
				return err
			}
			return c.run(cmd, query)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "request file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) routineSuggestCommand() *cobra.Command {
	var (
		profile profileFlags
		time    string
		budget  string
	)

	cmd := &cobra.Command{
		Use:     "suggest",
		Short:   "Suggest routine steps for a skin profile",
		Example: `  skincare routine suggest --skin-type oily --concerns acne,pores --time PM --budget minimal`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := queries.SuggestRoutineQuery{Time: time, Budget: budget}
			if input := profile.input(); input != nil {
				query.Profile = *input
			}
			return c.run(cmd, query)
		},
	}
	profile.register(cmd)
	cmd.Flags().StringVar(&time, "time", "AM", "AM or PM")
	cmd.Flags().StringVar(&budget, "budget", "", "minimal, moderate or comprehensive")
	_ = cmd.MarkFlagRequired("skin-type")
	return cmd
}

// loadRequest loads a request from a YAML or JSON file
func loadRequest(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return nil
}
