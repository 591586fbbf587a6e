package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"RegulatorRadar/internal/app"
	"RegulatorRadar/internal/logging"
	"RegulatorRadar/internal/ui"
)

func newPollCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Fetch configured feeds once and analyze new items",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := logging.New(cfg.Logging.Level)

			application, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			defer application.Close()

			report, err := application.Poll(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderReport(report))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
