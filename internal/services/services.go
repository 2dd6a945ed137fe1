package services

import (
	"time"

	"github.com/sjperalta/tagihwarga-api/internal/cache"
	"github.com/sjperalta/tagihwarga-api/internal/config"
	"github.com/sjperalta/tagihwarga-api/internal/jobs"
	"github.com/sjperalta/tagihwarga-api/internal/repository"
	"github.com/sjperalta/tagihwarga-api/internal/storage"
)

// Clock returns the current time in the operator's timezone
type Clock func() time.Time

// NewClock creates a clock for loc
func NewClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// Services holds all service instances
type Services struct {
	Clock    Clock
	Customer *CustomerService
	Roster   *RosterService
	Payment  *PaymentService
	Proof    *ProofService
	Reminder *ReminderService
	Export   *ExportService
	Summary  *SummaryService
	Email    *EmailService
	Job      *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store storage.BlobStore, snapshots cache.SnapshotCache, cfg *config.Config) *Services {
	loc := cfg.Location()
	clock := NewClock(loc)
	emailSvc := NewEmailService(cfg)
	imageSvc := NewImageService(cfg.ProofMaxDimension)

	rosterSvc := NewRosterService(repos.Customer, repos.Payment, snapshots, cfg.DefaultBillAmount, clock)
	paymentSvc := NewPaymentService(repos.Payment, repos.Customer, imageSvc, store, snapshots, cfg.ProofMaxBytes, clock)
	proofSvc := NewProofService(repos.Payment, store, ProofOptions{
		ExpiryDays:    cfg.ProofExpiryDays,
		TokenSecret:   cfg.ProofTokenSecret,
		TokenTTL:      time.Duration(cfg.ProofTokenTTLMinutes) * time.Minute,
		PublicBaseURL: cfg.PublicBaseURL,
	}, clock)

	return &Services{
		Clock:    clock,
		Customer: NewCustomerService(repos.Customer, snapshots),
		Roster:   rosterSvc,
		Payment:  paymentSvc,
		Proof:    proofSvc,
		Reminder: NewReminderService(repos.Customer, repos.Payment, cfg.DefaultBillAmount, clock),
		Export:   NewExportService(clock),
		Summary:  NewSummaryService(rosterSvc, paymentSvc, emailSvc, clock),
		Email:    emailSvc,
		Job: NewJobService(worker, JobSchedule{
			ProofSweepEvery:  time.Hour,
			DailySummaryHour: cfg.DailySummaryHour,
			Location:         loc,
		}, clock),
	}
}
