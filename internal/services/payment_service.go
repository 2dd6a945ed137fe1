package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/sjperalta/tagihwarga-api/internal/cache"
	"github.com/sjperalta/tagihwarga-api/internal/models"
	"github.com/sjperalta/tagihwarga-api/internal/repository"
	"github.com/sjperalta/tagihwarga-api/internal/statemachine"
	"github.com/sjperalta/tagihwarga-api/internal/storage"
	"github.com/sjperalta/tagihwarga-api/pkg/logger"
	"gorm.io/gorm"
)

// SubmitPaymentInput is one payment submission with its optional proof photo
type SubmitPaymentInput struct {
	CustomerID uuid.UUID
	Amount     int
	Period     billing.Period
	// PaymentDate defaults to today
	PaymentDate      time.Time
	Notes            string
	Photo            []byte
	PhotoContentType string
	// InsertOnly fails with ErrAlreadyRecorded instead of replacing the payment
	// already recorded for the period
	InsertOnly bool
}

type PaymentService struct {
	repo         repository.PaymentRepository
	customerRepo repository.CustomerRepository
	images       *ImageService
	store        storage.BlobStore
	snapshots    cache.SnapshotCache
	maxPhoto     int64
	now          Clock
}

func NewPaymentService(
	repo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	images *ImageService,
	store storage.BlobStore,
	snapshots cache.SnapshotCache,
	maxPhoto int64,
	now Clock,
) *PaymentService {
	if maxPhoto <= 0 {
		maxPhoto = storage.MaxFileSize()
	}
	return &PaymentService{
		repo:         repo,
		customerRepo: customerRepo,
		images:       images,
		store:        store,
		snapshots:    snapshots,
		maxPhoto:     maxPhoto,
		now:          now,
	}
}

// ProofPath is where the proof of a customer's payment on paidOn is stored
func ProofPath(paidOn time.Time, customerID uuid.UUID) string {
	return fmt.Sprintf("proofs/%s-%s.jpg", paidOn.Format(models.DateLayout), customerID)
}

// Submit records a payment. The photo is uploaded before the record is written so the
// stored payment never points at a missing proof.
func (s *PaymentService) Submit(ctx context.Context, in SubmitPaymentInput) (*models.Payment, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, in.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	existing, err := s.repo.FindByCustomerAndPeriod(ctx, customer.ID, in.Period.String())
	switch {
	case err == nil:
		if in.InsertOnly {
			return nil, ErrAlreadyRecorded
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		existing = nil
	default:
		return nil, err
	}

	paidOn := in.PaymentDate
	if paidOn.IsZero() {
		paidOn = s.now()
	}

	payment := &models.Payment{
		CustomerID:  customer.ID,
		Amount:      in.Amount,
		MonthYear:   in.Period.String(),
		PaymentDate: paidOn.Format(models.DateLayout),
		ProofStatus: models.ProofStatusNone,
		Notes:       optional(in.Notes),
	}

	if len(in.Photo) > 0 {
		photo, err := s.images.NormalizeProof(in.Photo)
		if err != nil {
			return nil, err
		}
		path := ProofPath(paidOn, customer.ID)
		if err := s.store.Upload(ctx, path, photo, "image/jpeg", true); err != nil {
			logger.Error("Proof upload failed", "customer_id", customer.ID, "path", path, "error", err)
			return nil, fmt.Errorf("gagal mengunggah bukti: %w", err)
		}
		if err := statemachine.NewProofFSM(payment).Attach(ctx, path); err != nil {
			return nil, err
		}
	} else if existing != nil {
		if err := s.detachProof(ctx, payment, existing); err != nil {
			return nil, err
		}
	}

	if in.InsertOnly {
		err = s.repo.Create(ctx, payment)
	} else {
		err = s.repo.Upsert(ctx, payment)
	}
	if err != nil {
		if errors.Is(err, repository.ErrDuplicatePeriod) {
			return nil, ErrAlreadyRecorded
		}
		return nil, err
	}

	s.invalidate(ctx, in.Period)
	logger.Info("Payment recorded",
		"payment_id", payment.ID,
		"customer_id", customer.ID,
		"period", payment.MonthYear,
		"amount", payment.Amount,
		"proof", payment.HasProof(),
	)
	return payment, nil
}

// detachProof drops the proof of the payment being replaced. The photo was taken for the
// old payment date, so it must not pick up a new display window from the new one.
func (s *PaymentService) detachProof(ctx context.Context, payment, existing *models.Payment) error {
	if !existing.HasProof() || existing.ProofStatus == models.ProofStatusNone {
		return nil
	}

	payment.ProofPath = existing.ProofPath
	payment.ProofStatus = existing.ProofStatus
	if err := statemachine.NewProofFSM(payment).Detach(ctx); err != nil {
		return err
	}
	logger.Info("Proof detached from replaced payment",
		"payment_id", existing.ID,
		"path", *existing.ProofPath,
		"status", existing.ProofStatus,
	)
	return nil
}

func (s *PaymentService) validate(in SubmitPaymentInput) error {
	if in.CustomerID == uuid.Nil {
		return fmt.Errorf("%w: pelanggan wajib dipilih", ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: nominal pembayaran harus lebih dari 0", ErrInvalidInput)
	}
	if in.Period.IsZero() || in.Period.Month < time.January || in.Period.Month > time.December {
		return fmt.Errorf("%w: periode tidak valid", ErrInvalidInput)
	}
	if int64(len(in.Photo)) > s.maxPhoto {
		return ErrProofTooLarge
	}
	if len(in.Photo) > 0 && in.PhotoContentType != "" && !storage.IsValidContentType(strings.ToLower(in.PhotoContentType)) {
		return fmt.Errorf("%w: format foto harus JPG atau PNG", ErrInvalidInput)
	}
	return nil
}

// Delete removes a payment. Its proof file is left in storage.
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if period, err := billing.ParsePeriod(payment.MonthYear); err == nil {
		s.invalidate(ctx, period)
	}
	logger.Info("Payment deleted", "payment_id", id, "period", payment.MonthYear)
	return nil
}

// ListByPeriod returns the payments recorded for a period
func (s *PaymentService) ListByPeriod(ctx context.Context, period billing.Period) ([]models.Payment, error) {
	return s.repo.FindByPeriod(ctx, period.String())
}

// ListByDate returns the payments received on a date (YYYY-MM-DD)
func (s *PaymentService) ListByDate(ctx context.Context, date string) ([]models.Payment, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: tanggal harus berformat YYYY-MM-DD", ErrInvalidInput)
	}
	return s.repo.FindByPaymentDate(ctx, date)
}

// TodayIncome totals the payments received today
func (s *PaymentService) TodayIncome(ctx context.Context) (int64, error) {
	return s.repo.SumByPaymentDate(ctx, s.now().Format(models.DateLayout))
}

func (s *PaymentService) invalidate(ctx context.Context, period billing.Period) {
	if err := s.snapshots.Delete(ctx, cache.PaymentsKey(period.String())); err != nil {
		logger.Warn("Failed to invalidate payment snapshot", "period", period.String(), "error", err)
	}
}
