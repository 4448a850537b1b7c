package cli

import (
	"github.com/newsreader/headlines/internal/models"

	"github.com/spf13/cobra"
)

func categoriesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List news categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printCategories(cmd.OutOrStdout(), flags.format, models.Categories())
		},
	}
}

func countriesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List supported countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printCountries(cmd.OutOrStdout(), flags.format, models.Countries())
		},
	}
}
