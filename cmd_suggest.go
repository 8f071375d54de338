package main

import (
	"encoding/json"
	"strings"

	"flavorgraph/recommend"

	"github.com/spf13/cobra"
)

var (
	suggestMinMatch   int
	suggestSortBy     string
	suggestMaxRecipes int
	pairingsLimit     int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [ingredients...]",
	Short: "Print recommendations for a list of ingredients as JSON",
	Example: `  flavorgraph suggest "egg, milk, bread"
  flavorgraph suggest egg milk --sort-by ratio --max-recipes 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, s, err := setup(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		svc, err := newService(ctx, cfg, s)
		if err != nil {
			return err
		}

		req := recommend.Request{
			Ingredients: strings.Join(args, "\n"),
			SortBy:      suggestSortBy,
		}
		if cmd.Flags().Changed("min-match") {
			req.MinMatch = &suggestMinMatch
		}
		if cmd.Flags().Changed("max-recipes") {
			req.MaxRecipes = &suggestMaxRecipes
		}
		res, err := svc.Recommend(ctx, req)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

var pairingsCmd = &cobra.Command{
	Use:   "pairings <ingredient>",
	Short: "Print ingredients that share recipes with the given one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, s, err := setup(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		svc, err := newService(ctx, cfg, s)
		if err != nil {
			return err
		}
		pairings, err := svc.Graph().Pairings(svc.Normalizer().Normalize(args[0]), pairingsLimit)
		if err != nil {
			return err
		}
		return printJSON(cmd, pairings)
	},
}

func init() {
	suggestCmd.Flags().IntVar(&suggestMinMatch, "min-match", 1, "minimum matching ingredients per recipe")
	suggestCmd.Flags().StringVar(&suggestSortBy, "sort-by", string(recommend.SortMatchedThenMissing), "matched_then_missing or ratio")
	suggestCmd.Flags().IntVar(&suggestMaxRecipes, "max-recipes", 3, "recipes per combination")
	pairingsCmd.Flags().IntVar(&pairingsLimit, "limit", 10, "maximum pairings, 0 for all")
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
