package cmd

import (
	"fmt"
	"strings"

	"github.com/openmuseum/curator/internal/curation"
	"github.com/openmuseum/curator/internal/narration"
	"github.com/openmuseum/curator/internal/registry"
	"github.com/openmuseum/curator/internal/session"
	"github.com/openmuseum/curator/internal/synthesis"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newCurateCmd() *cobra.Command {
	var generateImages bool

	cmd := &cobra.Command{
		Use:   "curate <query>",
		Short: "Run one curation query and print the record",
		Long: `Runs the full curation pipeline for a single museum or artifact name
and prints the resulting record as YAML.

With --images, a missing primary image is synthesized before printing;
otherwise the record is printed as soon as the text resolves.`,
		Example: `  curator curate "Rosetta Stone"
  curator curate --images "曾侯乙编钟"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			presets, err := registry.Load()
			if err != nil {
				return err
			}

			resolver := curation.NewResolver(narration.NewGemini(), presets)
			machine := session.New(resolver, synthesis.NewGemini())

			state := machine.Search(cmd.Context(), query)
			if generateImages {
				machine.Wait()
				state = machine.Snapshot()
			}

			if state.Phase == session.PhaseError {
				return fmt.Errorf("curation failed: %s", state.ErrorMessage)
			}

			out, err := yaml.Marshal(state.Result)
			if err != nil {
				return fmt.Errorf("failed to render record: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&generateImages, "images", false, "Wait for image synthesis when no archive photo was found")

	return cmd
}
