package cli

import (
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagDB       string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:           "board",
	Short:         "Local-first kanban boards",
	Long:          "board — a kanban workspace kept in a local file.\nUse it from the shell, the full-screen UI, or a localhost JSON API.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", boardPath("config.yaml"), "Config file")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Storage file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(columnCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(serveCmd)
}
