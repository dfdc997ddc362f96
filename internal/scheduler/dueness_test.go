package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"finanzas/internal/amqp"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestWeeklyChecker(t *testing.T) {
	c := WeeklyChecker{Day: time.Sunday, Hour: 20}
	sunday := at(2026, 8, 30, 20) // 2026-08-30 is a Sunday

	tests := []struct {
		name    string
		lastRun time.Time
		now     time.Time
		want    bool
	}{
		{"never ran, right moment", time.Time{}, sunday, true},
		{"late in the evening still due", time.Time{}, at(2026, 8, 30, 23), true},
		{"too early in the day", time.Time{}, at(2026, 8, 30, 19), false},
		{"wrong weekday", time.Time{}, at(2026, 8, 28, 20), false},
		{"already ran today", sunday, at(2026, 8, 30, 21), false},
		{"ran last week", at(2026, 8, 23, 20), sunday, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsDue(tt.lastRun, tt.now))
		})
	}
}

func TestMonthEndChecker(t *testing.T) {
	c := MonthEndChecker{Hour: 21}

	tests := []struct {
		name    string
		lastRun time.Time
		now     time.Time
		want    bool
	}{
		{"august 31st at 21h", time.Time{}, at(2026, 8, 31, 21), true},
		{"august 30th is not the end", time.Time{}, at(2026, 8, 30, 21), false},
		{"too early on the 31st", time.Time{}, at(2026, 8, 31, 20), false},
		{"plain february 28th", time.Time{}, at(2026, 2, 28, 21), true},
		{"leap february 28th not yet", time.Time{}, at(2028, 2, 28, 21), false},
		{"leap february 29th", time.Time{}, at(2028, 2, 29, 21), true},
		{"already ran this evening", at(2026, 8, 31, 21), at(2026, 8, 31, 22), false},
		{"ran last month", at(2026, 7, 31, 21), at(2026, 8, 31, 21), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsDue(tt.lastRun, tt.now))
		})
	}
}

type recordingDispatcher struct {
	mu    sync.Mutex
	calls []string
	fail  map[int64]bool
}

func (d *recordingDispatcher) Dispatch(_ context.Context, userID int64, period amqp.PeriodKind) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail[userID] {
		return assert.AnError
	}
	d.calls = append(d.calls, string(period))
	return nil
}

func TestTickDispatchesOncePerDueJob(t *testing.T) {
	disp := &recordingDispatcher{}
	s := New([]int64{1, 2}, disp, Options{
		WeeklyDay:   time.Sunday,
		WeeklyHour:  20,
		MonthlyHour: 21,
		Interval:    time.Minute,
	}, nil)
	s.now = func() time.Time { return at(2026, 8, 30, 20) } // Sunday, not month end

	s.Tick(context.Background())
	assert.ElementsMatch(t, []string{"semanal", "semanal"}, disp.calls)

	// Same instant again: nothing new fires.
	s.Tick(context.Background())
	assert.Len(t, disp.calls, 2)
}

func TestTickIsolatesUserFailures(t *testing.T) {
	disp := &recordingDispatcher{fail: map[int64]bool{1: true}}
	s := New([]int64{1, 2}, disp, Options{
		WeeklyDay:   time.Sunday,
		WeeklyHour:  20,
		MonthlyHour: 21,
		Interval:    time.Minute,
	}, nil)
	s.now = func() time.Time { return at(2026, 8, 30, 20) }

	s.Tick(context.Background())
	// User 2 succeeded despite user 1 failing.
	assert.Equal(t, []string{"semanal"}, disp.calls)

	// The failed user stays due and retries on the next tick.
	disp.mu.Lock()
	disp.fail[1] = false
	disp.mu.Unlock()
	s.Tick(context.Background())
	assert.Len(t, disp.calls, 2)
}
