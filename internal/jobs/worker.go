package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sjperalta/tagihwarga-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker manages background jobs and scheduled tasks
type Worker struct {
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	queue         chan Job
	asyncSem      chan struct{}
	maxConcurrent int
	stats         WorkerStats
	statsMu       sync.RWMutex

	// guards queue against sends after Shutdown closed it
	closeMu sync.RWMutex
	closed  bool
}

// WorkerStats holds statistics about the worker.
// CompletedJobs counts every finished job; FailedJobs is the subset that returned an error or panicked.
type WorkerStats struct {
	ActiveJobs    int   `json:"active_jobs"`
	CompletedJobs int64 `json:"completed_jobs"`
	FailedJobs    int64 `json:"failed_jobs"`
	QueueLength   int   `json:"queue_length"`
	MaxConcurrent int   `json:"max_concurrent"`
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	// Allow 2x workers for async jobs
	asyncLimit := numWorkers * 2
	if asyncLimit < 10 {
		asyncLimit = 10
	}

	w := &Worker{
		ctx:           ctx,
		cancel:        cancel,
		queue:         make(chan Job, 100),
		asyncSem:      make(chan struct{}, asyncLimit),
		maxConcurrent: asyncLimit,
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to be processed by the worker pool. Jobs enqueued after Shutdown are dropped.
func (w *Worker) Enqueue(job Job) {
	w.closeMu.RLock()
	defer w.closeMu.RUnlock()
	if w.closed {
		logger.Warn("[Worker] Shut down, dropping job")
		return
	}

	select {
	case w.queue <- job:
	default:
		logger.Warn("[Worker] Queue full, running job synchronously")
		w.run("Worker", job)
	}
}

// EnqueueAsync runs a job in a new goroutine (fire-and-forget), bounded by semaphore
func (w *Worker) EnqueueAsync(job Job) {
	w.closeMu.RLock()
	defer w.closeMu.RUnlock()
	if w.closed {
		logger.Warn("[Worker] Shut down, dropping async job")
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		select {
		case w.asyncSem <- struct{}{}:
		case <-w.ctx.Done():
			return
		}
		defer func() { <-w.asyncSem }()

		w.run("Async", job)
	}()
}

// process handles jobs from the queue
func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.run(fmt.Sprintf("Worker %d", workerID), job)
		}
	}
}

// ScheduleEvery runs a job at fixed intervals. The first run happens after the interval (not at startup).
func (w *Worker) ScheduleEvery(interval time.Duration, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.run("Scheduler", job)
			}
		}
	}()
}

// ScheduleEveryImmediate runs a job once at startup, then at fixed intervals, so a restarted
// process does not wait a full interval before the first run.
func (w *Worker) ScheduleEveryImmediate(interval time.Duration, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run("Scheduler", job)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.run("Scheduler", job)
			}
		}
	}()
}

// ScheduleDaily runs a job every day at hour:00 in loc
func (w *Worker) ScheduleDaily(hour int, loc *time.Location, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			timer := time.NewTimer(time.Until(NextDailyRun(time.Now(), hour, loc)))
			select {
			case <-w.ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				w.run("Scheduler", job)
			}
		}
	}()
}

// NextDailyRun returns the first hour:00 in loc strictly after now
func NextDailyRun(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, 0, 0, 0, loc)
	}
	return next
}

// ScheduleAt runs a job once at a specific time
func (w *Worker) ScheduleAt(at time.Time, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		timer := time.NewTimer(time.Until(at))
		defer timer.Stop()

		select {
		case <-w.ctx.Done():
			return
		case <-timer.C:
			w.run("Scheduler", job)
		}
	}()
}

// run executes one job with stats tracking and panic recovery
func (w *Worker) run(source string, job Job) {
	w.trackJobStart()
	defer w.trackJobEnd()
	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("[%s] Job panic: %v", source, r))
			w.trackJobFailure()
		}
	}()

	start := time.Now()
	if err := job(w.ctx); err != nil {
		logger.Error(fmt.Sprintf("[%s] Job error: %v", source, err))
		w.trackJobFailure()
		return
	}
	logger.Debug(fmt.Sprintf("[%s] Job completed in %v", source, time.Since(start)))
}

// Shutdown gracefully stops all workers
func (w *Worker) Shutdown() {
	w.closeMu.Lock()
	if w.closed {
		w.closeMu.Unlock()
		return
	}
	w.closed = true
	w.cancel()
	close(w.queue)
	w.closeMu.Unlock()

	w.wg.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	stats.MaxConcurrent = w.maxConcurrent
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}
