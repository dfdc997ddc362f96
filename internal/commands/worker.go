package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"finanzas/internal/amqp"
)

func newWorkerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume queued summary jobs and deliver the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			if a.cfg.AMQPURL == "" {
				return errors.New("AMQP_URL is required for the worker")
			}

			client, err := amqp.NewClient(a.cfg.AMQPURL, a.cfg.AMQPExchange, a.cfg.AMQPQueue, a.logger)
			if err != nil {
				return err
			}
			defer client.Close()

			a.logger.InfoContext(ctx, "worker starting", "queue", a.cfg.AMQPQueue)
			return runErr(client.ConsumeSummaryJobs(ctx, func(ctx context.Context, job *amqp.SummaryJob) error {
				return a.engine.RunSummaryJob(ctx, job.UserID, job.Period)
			}))
		},
	}
}
