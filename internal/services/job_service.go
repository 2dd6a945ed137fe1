package services

import (
	"time"

	"github.com/sjperalta/tagihwarga-api/internal/jobs"
)

// JobSchedule is when the recurring billing jobs run
type JobSchedule struct {
	ProofSweepEvery  time.Duration
	DailySummaryHour int
	Location         *time.Location
}

type JobService struct {
	worker   *jobs.Worker
	schedule JobSchedule
	now      Clock
}

func NewJobService(worker *jobs.Worker, schedule JobSchedule, now Clock) *JobService {
	if schedule.ProofSweepEvery <= 0 {
		schedule.ProofSweepEvery = time.Hour
	}
	if schedule.Location == nil {
		schedule.Location = time.UTC
	}
	return &JobService{
		worker:   worker,
		schedule: schedule,
		now:      now,
	}
}

// Enqueue runs job on the background worker without blocking the caller
func (s *JobService) Enqueue(job jobs.Job) {
	s.worker.EnqueueAsync(job)
}

func (s *JobService) Schedule() JobSchedule {
	return s.schedule
}

// NextDailySummary is when the operator's summary email goes out next
func (s *JobService) NextDailySummary() time.Time {
	return jobs.NextDailyRun(s.now(), s.schedule.DailySummaryHour, s.schedule.Location)
}

func (s *JobService) GetStatus() map[string]interface{} {
	stats := s.worker.GetStats()
	return map[string]interface{}{
		"active_jobs":    stats.ActiveJobs,
		"completed_jobs": stats.CompletedJobs,
		"failed_jobs":    stats.FailedJobs,
		"queue_length":   stats.QueueLength,
		"max_concurrent": stats.MaxConcurrent,
	}
}
