package amqp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryJobRoundTrip(t *testing.T) {
	job := NewSummaryJob(123456789, PeriodWeekly)

	data, err := job.ToJSON()
	require.NoError(t, err)

	got, err := SummaryJobFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, job.UserID, got.UserID)
	assert.Equal(t, PeriodWeekly, got.Period)
	assert.False(t, got.Timestamp.IsZero())
}

func TestSummaryJobValidate(t *testing.T) {
	assert.Error(t, (&SummaryJob{UserID: 0, Period: PeriodWeekly}).Validate())
	assert.Error(t, (&SummaryJob{UserID: 1, Period: "diario"}).Validate())
	assert.NoError(t, (&SummaryJob{UserID: 1, Period: PeriodMonthly}).Validate())
}

func TestSummaryJobFromJSONRejectsGarbage(t *testing.T) {
	_, err := SummaryJobFromJSON([]byte("{not json"))
	assert.Error(t, err)

	_, err = SummaryJobFromJSON([]byte(`{"user_id":5,"period":"anual"}`))
	assert.Error(t, err)
}
