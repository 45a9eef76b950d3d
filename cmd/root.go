package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curator",
		Short: "Digital museum curation with LLM-powered records and image sourcing",
		Long: `Curator turns the name of a museum or artifact into a structured
curatorial record, illustrated with a real archive photograph when one is
known and an AI reconstruction otherwise.

It ships a web API for the museum UI, a one-shot CLI curation mode, preset
image catalogue tools, and an evaluation harness for the narration model.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCurateCmd())
	cmd.AddCommand(newRegistryCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
