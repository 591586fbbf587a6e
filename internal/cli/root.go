package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"RegulatorRadar/internal/config"
)

var (
	appVersion = "dev"
	appCommit  = "none"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit string) {
	appVersion = version
	appCommit = commit
}

type rootOptions struct {
	configPath string
}

// NewRootCommand assembles the regulatorradar command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "regulatorradar",
		Short: "RegulatorRadar - plain-English analysis of regulatory announcements",
		Long: `RegulatorRadar polls regulator feeds, scores each announcement for severity,
extracts penalties and deadlines, and turns the legal text into a short
summary with prioritized action items.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to YAML config (defaults to $REGULATOR_RADAR_CONFIG)")

	root.AddCommand(
		newPollCommand(opts),
		newServeCommand(opts),
		newAnalyzeCommand(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "regulatorradar %s\ncommit: %s\n", appVersion, appCommit)
			},
		},
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func (o *rootOptions) load() (config.Config, error) {
	if o.configPath == "" {
		return config.Load(), nil
	}
	return config.LoadFile(o.configPath)
}
