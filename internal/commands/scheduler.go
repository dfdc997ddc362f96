package commands

import (
	"github.com/spf13/cobra"

	"finanzas/internal/amqp"
	"finanzas/internal/scheduler"
)

func newSchedulerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run the periodic summary scheduler",
		Long: "Fires the weekly summary on the configured day and hour and the " +
			"monthly summary on the last calendar day of each month. With AMQP " +
			"configured the jobs are queued for a worker; without it they run inline.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			a, err := buildApp(ctx)
			if err != nil {
				return err
			}

			var dispatcher scheduler.Dispatcher
			if a.cfg.AMQPURL != "" {
				client, err := amqp.NewClient(a.cfg.AMQPURL, a.cfg.AMQPExchange, a.cfg.AMQPQueue, a.logger)
				if err != nil {
					return err
				}
				defer client.Close()
				dispatcher = scheduler.QueueDispatcher{Client: client}
				a.logger.InfoContext(ctx, "dispatching summary jobs through AMQP", "queue", a.cfg.AMQPQueue)
			} else {
				dispatcher = scheduler.DispatcherFunc(a.engine.RunSummaryJob)
				a.logger.InfoContext(ctx, "AMQP not configured, running summaries inline")
			}

			s := scheduler.New(a.cfg.UserIDs(), dispatcher, scheduler.Options{
				WeeklyDay:   a.cfg.WeeklySummaryDay,
				WeeklyHour:  a.cfg.WeeklySummaryHour,
				MonthlyHour: a.cfg.MonthlySummaryHour,
				Interval:    a.cfg.SchedulerInterval,
			}, a.logger)

			return runErr(s.Run(ctx))
		},
	}
}
