package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for logan
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logan",
		Short: "Log file severity and error signature analyzer",
		Long: `Logan scans application log files, counts lines per severity level
(TRACE, DEBUG, INFO, WARN, ERROR), collects every WARN and ERROR line and
tallies known error signatures such as NullPointerException or SQLException.

Files are analyzed concurrently on a bounded worker pool and the results are
merged into one summary in input order.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewAnalyzeCommand())

	return cmd
}
