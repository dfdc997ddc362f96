package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// PeriodKind selects which summary a job produces.
type PeriodKind string

const (
	PeriodWeekly  PeriodKind = "semanal"
	PeriodMonthly PeriodKind = "mensual"
)

// SummaryJob asks a worker to compute and deliver one summary. It carries
// only the user and the period kind; the worker reads the ledger itself.
type SummaryJob struct {
	UserID    int64      `json:"user_id"`
	Period    PeriodKind `json:"period"`
	Timestamp time.Time  `json:"timestamp"`
}

func NewSummaryJob(userID int64, period PeriodKind) *SummaryJob {
	return &SummaryJob{
		UserID:    userID,
		Period:    period,
		Timestamp: time.Now().UTC(),
	}
}

func (j *SummaryJob) Validate() error {
	if j.UserID <= 0 {
		return fmt.Errorf("invalid user id %d", j.UserID)
	}
	switch j.Period {
	case PeriodWeekly, PeriodMonthly:
		return nil
	default:
		return fmt.Errorf("unknown period kind %q", j.Period)
	}
}

func (j *SummaryJob) ToJSON() ([]byte, error) {
	return json.Marshal(j)
}

func SummaryJobFromJSON(data []byte) (*SummaryJob, error) {
	var j SummaryJob
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("unmarshal summary job: %w", err)
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return &j, nil
}
