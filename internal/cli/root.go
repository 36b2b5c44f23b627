package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/DuyDuc2014/l-ch/internal/logging"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, checking LICH_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("LICH_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the lich CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lich",
		Short: "Lich duty roster planner",
		Long:  "Lich plans a rotating teacher duty roster: round-robin from a start date, with manual per-day overrides.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLogger(flagLogLevel, flagLogFormat)
			client = NewClient(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "Lich server URL (or LICH_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newTeachersCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newReorderCmd(),
		newScheduleCmd(),
		newOverridesCmd(),
		newOverrideCmd(),
		newStartDateCmd(),
		newColorCmd(),
		newShareCmd(),
		newImportCmd(),
		newBackupCmd(),
	)

	return root
}
