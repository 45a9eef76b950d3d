package cmd

import (
	"github.com/openmuseum/curator/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Curation evaluation tools",
		Long: `Evaluation tools for measuring narration quality: museum/artifact
classification accuracy, name resolution, record completeness, and
image-cascade behavior against a labeled query dataset.`,
	}

	cmd.AddCommand(evalcmd.NewRunCmd())

	return cmd
}
