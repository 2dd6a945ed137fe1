package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/sjperalta/tagihwarga-api/internal/models"
	"github.com/sjperalta/tagihwarga-api/internal/repository"
	"github.com/sjperalta/tagihwarga-api/internal/statemachine"
	"github.com/sjperalta/tagihwarga-api/internal/storage"
	"github.com/sjperalta/tagihwarga-api/pkg/logger"
	"gorm.io/gorm"
)

// ProofOptions configures proof expiry and signed links
type ProofOptions struct {
	ExpiryDays    int
	TokenSecret   string
	TokenTTL      time.Duration
	PublicBaseURL string
}

// ProofView tells a client what to display for a payment's proof
type ProofView struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	HasProof      bool      `json:"has_proof"`
	Expired       bool      `json:"expired"`
	DaysRemaining int       `json:"days_remaining"`
	ExpiresOn     string    `json:"expires_on,omitempty"`
	URL           string    `json:"url,omitempty"`
	// Placeholder is set whenever no image can be shown
	Placeholder bool `json:"placeholder"`
}

// ProofClaims are carried by a signed proof link
type ProofClaims struct {
	Path string `json:"path"`
	jwt.RegisteredClaims
}

type ProofService struct {
	repo  repository.PaymentRepository
	store storage.BlobStore
	opts  ProofOptions
	now   Clock
}

func NewProofService(repo repository.PaymentRepository, store storage.BlobStore, opts ProofOptions, now Clock) *ProofService {
	if opts.ExpiryDays <= 0 {
		opts.ExpiryDays = billing.DefaultProofExpiryDays
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 30 * time.Minute
	}
	return &ProofService{repo: repo, store: store, opts: opts, now: now}
}

// Describe evaluates a payment's proof. Expired proofs never get a URL, even if the file
// is still stored. Once the sweep has marked a proof expired it stays expired whatever
// the payment date says.
func (s *ProofService) Describe(ctx context.Context, paymentID uuid.UUID) (*ProofView, error) {
	payment, err := s.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	view := &ProofView{PaymentID: payment.ID, HasProof: payment.HasProof(), Placeholder: true}
	if !view.HasProof {
		return view, nil
	}

	paidOn, err := payment.PaidOn()
	if err != nil {
		return nil, err
	}
	st := billing.EvaluateProof(paidOn, s.now(), s.opts.ExpiryDays)
	view.ExpiresOn = st.ExpiresOn.Format(models.DateLayout)

	if payment.ProofStatus == models.ProofStatusExpired {
		view.Expired = true
		return view, nil
	}

	view.Expired = st.Expired
	view.DaysRemaining = st.DaysRemaining
	if st.Expired {
		s.markExpired(ctx, payment)
		return view, nil
	}

	exists, err := s.store.Exists(ctx, *payment.ProofPath)
	if err != nil || !exists {
		logger.Warn("Proof file unavailable", "payment_id", payment.ID, "path", *payment.ProofPath, "error", err)
		return view, nil
	}

	link, err := s.link(payment, st)
	if err != nil {
		return nil, err
	}
	view.URL = link
	view.Placeholder = false
	return view, nil
}

// IssueToken signs a link for the payment's proof. The token never outlives the proof.
func (s *ProofService) IssueToken(payment *models.Payment, st billing.ProofState) (string, error) {
	now := s.now()
	loc := now.Location()
	// the proof stays viewable through the whole of its last day
	expiresAt := time.Date(st.ExpiresOn.Year(), st.ExpiresOn.Month(), st.ExpiresOn.Day()+1, 0, 0, 0, 0, loc)
	if ttl := now.Add(s.opts.TokenTTL); ttl.Before(expiresAt) {
		expiresAt = ttl
	}

	claims := ProofClaims{
		Path: *payment.ProofPath,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payment.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.opts.TokenSecret))
}

// VerifyToken checks a signed proof link
func (s *ProofService) VerifyToken(tokenString string) (*ProofClaims, error) {
	claims := &ProofClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.TokenSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Open streams the proof behind a signed link after re-checking the payment and its expiry
func (s *ProofService) Open(ctx context.Context, tokenString string) (io.ReadCloser, error) {
	claims, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	paymentID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	payment, err := s.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.HasProof() || *payment.ProofPath != claims.Path {
		return nil, ErrInvalidToken
	}
	if payment.ProofStatus == models.ProofStatusExpired {
		return nil, ErrProofExpired
	}

	paidOn, err := payment.PaidOn()
	if err != nil {
		return nil, err
	}
	if billing.EvaluateProof(paidOn, s.now(), s.opts.ExpiryDays).Expired {
		return nil, ErrProofExpired
	}

	r, err := s.store.Open(ctx, claims.Path)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrNotFound
	}
	return r, err
}

// ExpireStaleProofs marks every active proof past its window as expired
func (s *ProofService) ExpireStaleProofs(ctx context.Context) (int, error) {
	payments, err := s.repo.FindWithActiveProof(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active proofs: %w", err)
	}

	now := s.now()
	expired := 0
	for i := range payments {
		payment := &payments[i]
		paidOn, err := payment.PaidOn()
		if err != nil {
			logger.Warn("Skipping proof with bad payment date", "payment_id", payment.ID, "error", err)
			continue
		}
		if !billing.EvaluateProof(paidOn, now, s.opts.ExpiryDays).Expired {
			continue
		}
		if s.markExpired(ctx, payment) {
			expired++
		}
	}

	logger.Info("[Job] Proof expiry sweep finished", "checked", len(payments), "expired", expired)
	return expired, nil
}

func (s *ProofService) markExpired(ctx context.Context, payment *models.Payment) bool {
	if payment.ProofStatus != models.ProofStatusActive {
		return false
	}
	if err := statemachine.NewProofFSM(payment).Expire(ctx); err != nil {
		logger.Warn("Failed to expire proof", "payment_id", payment.ID, "error", err)
		return false
	}
	if err := s.repo.UpdateProofStatus(ctx, payment.ID, payment.ProofStatus); err != nil {
		logger.Error("Failed to persist proof expiry", "payment_id", payment.ID, "error", err)
		return false
	}
	return true
}

func (s *ProofService) link(payment *models.Payment, st billing.ProofState) (string, error) {
	if u := s.store.PublicURL(*payment.ProofPath); u != "" {
		return u, nil
	}
	token, err := s.IssueToken(payment, st)
	if err != nil {
		return "", fmt.Errorf("failed to sign proof link: %w", err)
	}
	return s.opts.PublicBaseURL + "/api/v1/proofs/image?token=" + url.QueryEscape(token), nil
}

func (s *ProofService) findPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return payment, nil
}
