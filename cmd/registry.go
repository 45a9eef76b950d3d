package cmd

import (
	"fmt"
	"strings"

	"github.com/openmuseum/curator/internal/registry"
	"github.com/spf13/cobra"
)

func newRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the preset image catalogue",
	}

	cmd.AddCommand(newRegistryListCmd())
	cmd.AddCommand(newRegistryCategoriesCmd())
	cmd.AddCommand(newRegistryResolveCmd())

	return cmd
}

func newRegistryListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List curated image entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := registry.Load()
			if err != nil {
				return err
			}

			entries := presets.Entries()
			if category != "" {
				entries = presets.ByCategory(category)
			}

			for _, e := range entries {
				aliases := ""
				if len(e.Aliases) > 0 {
					aliases = " (" + strings.Join(e.Aliases, ", ") + ")"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n  %s [%s]\n", e.Name, aliases, e.ImageURL, e.Source)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries\n", len(entries))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list entries in this category")

	return cmd
}

func newRegistryCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalogue categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := registry.Load()
			if err != nil {
				return err
			}
			for _, c := range presets.Categories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", c, len(presets.ByCategory(c)))
			}
			return nil
		},
	}
}

func newRegistryResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a free-text name against the catalogue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := registry.Load()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			entry := presets.Resolve(query)
			if entry == nil {
				return fmt.Errorf("no preset entry matches %q", query)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s [%s]\n", entry.Name, entry.ImageURL, entry.Source)
			return nil
		},
	}
}
