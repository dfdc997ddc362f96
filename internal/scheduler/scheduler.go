package scheduler

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"finanzas/internal/amqp"
	"finanzas/internal/log"
)

// Dispatcher hands a due summary job off for execution, either by queueing
// it or by running it inline.
type Dispatcher interface {
	Dispatch(ctx context.Context, userID int64, period amqp.PeriodKind) error
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, userID int64, period amqp.PeriodKind) error

func (f DispatcherFunc) Dispatch(ctx context.Context, userID int64, period amqp.PeriodKind) error {
	return f(ctx, userID, period)
}

// QueueDispatcher publishes jobs to the summary queue for a worker.
type QueueDispatcher struct {
	Client *amqp.Client
}

func (d QueueDispatcher) Dispatch(ctx context.Context, userID int64, period amqp.PeriodKind) error {
	return d.Client.PublishSummaryJob(ctx, amqp.NewSummaryJob(userID, period))
}

type job struct {
	period  amqp.PeriodKind
	checker DuenessChecker
	lastRun map[int64]time.Time
}

// Scheduler ticks at a fixed interval and dispatches each due job for each
// configured user. One user's failure never blocks the others; the job
// simply stays due and is retried on the next tick.
type Scheduler struct {
	users      []int64
	jobs       []*job
	dispatcher Dispatcher
	interval   time.Duration
	logger     *log.Logger

	mu  sync.Mutex
	now func() time.Time
}

// Options fixes the cadences and tick interval.
type Options struct {
	WeeklyDay   time.Weekday
	WeeklyHour  int
	MonthlyHour int
	Interval    time.Duration
}

func New(users []int64, dispatcher Dispatcher, opts Options, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Scheduler{
		users: users,
		jobs: []*job{
			{
				period:  amqp.PeriodWeekly,
				checker: WeeklyChecker{Day: opts.WeeklyDay, Hour: opts.WeeklyHour},
				lastRun: map[int64]time.Time{},
			},
			{
				period:  amqp.PeriodMonthly,
				checker: MonthEndChecker{Hour: opts.MonthlyHour},
				lastRun: map[int64]time.Time{},
			},
		},
		dispatcher: dispatcher,
		interval:   opts.Interval,
		logger:     logger.WithComponent(log.ComponentScheduler),
		now:        time.Now,
	}
}

// Run ticks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "scheduler started",
		"users", len(s.users), "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "scheduler stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick dispatches every due (job, user) pair concurrently.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.now()

	g, gctx := errgroup.WithContext(ctx)
	for _, j := range s.jobs {
		for _, userID := range s.users {
			j, userID := j, userID
			if !j.checker.IsDue(s.lastRunFor(j, userID), now) {
				continue
			}
			g.Go(func() error {
				if err := s.dispatcher.Dispatch(gctx, userID, j.period); err != nil {
					s.logger.ErrorContext(gctx, "dispatch failed",
						log.FieldUserID, userID,
						log.FieldPeriod, string(j.period),
						log.FieldError, err)
					// Swallow so sibling users still run; the job stays
					// due and retries next tick.
					return nil
				}
				s.markRun(j, userID, now)
				s.logger.InfoContext(gctx, "dispatched summary job",
					log.FieldUserID, userID,
					log.FieldPeriod, string(j.period))
				return nil
			})
		}
	}
	g.Wait()
}

func (s *Scheduler) lastRunFor(j *job, userID int64) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return j.lastRun[userID]
}

func (s *Scheduler) markRun(j *job, userID int64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j.lastRun[userID] = now
}
