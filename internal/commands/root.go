// Package commands wires configuration, adapters, and the engine behind the
// CLI entrypoints.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "finanzas",
		Short: "Conversational personal finance assistant over Telegram and Google Sheets",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newBotCommand())
	rootCmd.AddCommand(newSchedulerCommand())
	rootCmd.AddCommand(newWorkerCommand())

	return rootCmd
}
