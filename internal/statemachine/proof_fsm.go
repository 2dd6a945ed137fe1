package statemachine

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sjperalta/tagihwarga-api/internal/models"
)

// ProofFSM wraps a payment's proof image with its lifecycle
type ProofFSM struct {
	payment *models.Payment
	fsm     *fsm.FSM
}

// NewProofFSM creates a proof state machine starting at the payment's proof status
func NewProofFSM(payment *models.Payment) *ProofFSM {
	pfsm := &ProofFSM{
		payment: payment,
	}

	initial := payment.ProofStatus
	if initial == "" {
		initial = models.ProofStatusNone
	}

	pfsm.fsm = fsm.NewFSM(
		initial,
		fsm.Events{
			// a new upload always makes the proof viewable again
			{Name: "attach", Src: []string{models.ProofStatusNone, models.ProofStatusActive, models.ProofStatusExpired}, Dst: models.ProofStatusActive},

			// active → expired once the display window has passed
			{Name: "expire", Src: []string{models.ProofStatusActive}, Dst: models.ProofStatusExpired},

			// payment lost its proof
			{Name: "detach", Src: []string{models.ProofStatusActive, models.ProofStatusExpired}, Dst: models.ProofStatusNone},
		},
		fsm.Callbacks{},
	)

	return pfsm
}

// Attach records a freshly uploaded proof
func (p *ProofFSM) Attach(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("proof path is required")
	}

	if err := p.event(ctx, "attach"); err != nil {
		return fmt.Errorf("failed to attach proof: %w", err)
	}

	p.payment.ProofPath = &path
	p.payment.ProofStatus = p.fsm.Current()
	return nil
}

// Expire marks the proof as no longer viewable. The stored file is left in place.
func (p *ProofFSM) Expire(ctx context.Context) error {
	if !p.payment.HasProof() {
		return fmt.Errorf("payment %s has no proof to expire", p.payment.ID)
	}

	if err := p.event(ctx, "expire"); err != nil {
		return fmt.Errorf("failed to expire proof: %w", err)
	}

	p.payment.ProofStatus = p.fsm.Current()
	return nil
}

// Detach clears the proof reference
func (p *ProofFSM) Detach(ctx context.Context) error {
	if err := p.event(ctx, "detach"); err != nil {
		return fmt.Errorf("failed to detach proof: %w", err)
	}

	p.payment.ProofPath = nil
	p.payment.ProofStatus = p.fsm.Current()
	return nil
}

// Current returns the current state
func (p *ProofFSM) Current() string {
	return p.fsm.Current()
}

// Can checks if a transition is possible
func (p *ProofFSM) Can(event string) bool {
	return p.fsm.Can(event)
}

// event fires e, treating a transition to the current state as success
func (p *ProofFSM) event(ctx context.Context, e string) error {
	err := p.fsm.Event(ctx, e)
	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return nil
	}
	return err
}
