package services

import (
	"testing"
	"time"

	"github.com/sjperalta/tagihwarga-api/internal/jobs"
	"github.com/stretchr/testify/assert"
)

func TestJobService_Schedule(t *testing.T) {
	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	jakarta := time.FixedZone("WIB", 7*60*60)
	now := time.Date(2025, time.March, 12, 21, 15, 0, 0, jakarta)
	svc := NewJobService(worker, JobSchedule{DailySummaryHour: 20, Location: jakarta}, fixedClock(now))

	assert.Equal(t, time.Hour, svc.Schedule().ProofSweepEvery)
	assert.Equal(t, time.Date(2025, time.March, 13, 20, 0, 0, 0, jakarta), svc.NextDailySummary())

	early := NewJobService(worker, JobSchedule{DailySummaryHour: 20}, fixedClock(time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.UTC, early.Schedule().Location)
	assert.Equal(t, time.Date(2025, time.March, 12, 20, 0, 0, 0, time.UTC), early.NextDailySummary())
	assert.Contains(t, early.GetStatus(), "queue_length")
}
