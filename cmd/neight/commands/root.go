// Package commands provides the CLI commands for Neight.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neight-app/neight/internal/logging"
	"github.com/neight-app/neight/internal/version"
)

var (
	// Version information set at build time
	Version   = version.Current
	BuildTime = "dev"
)

// Global flags
var (
	printLogs bool
	logLevel  string
	logFile   string
)

var rootCmd = &cobra.Command{
	Use:   "neight",
	Short: "Neight - plain text and Markdown notepad",
	Long: `Neight is a plain text and Markdown notepad. Its settings live in a
settings.json next to the program when that location is writable, and in
the per-user config directory otherwise.

Run 'neight edit' for a headless editing session, 'neight paths' to see
where settings live, or 'neight settings show' to inspect them.`,
	Version: Version,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand, show help
		cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVar(&printLogs, "print-logs", false, "Print readable logs to stderr")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to this file as well")

	// Version template
	rootCmd.SetVersionTemplate(fmt.Sprintf("neight %s (%s)\n", Version, BuildTime))

	// Add subcommands
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(settingsCmd)
}

// initLogging configures the global logger from the persistent flags.
func initLogging() {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(logLevel)
	cfg.Pretty = printLogs
	cfg.File = logFile
	logging.Init(cfg)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
