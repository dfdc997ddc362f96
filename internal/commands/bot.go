package commands

import (
	"github.com/spf13/cobra"
)

func newBotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the interactive Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			a, err := buildApp(ctx)
			if err != nil {
				return err
			}

			a.logger.InfoContext(ctx, "bot starting", "users", len(a.cfg.UserSpreadsheets))
			return runErr(a.telegram.Run(ctx, a.engine))
		},
	}
}
