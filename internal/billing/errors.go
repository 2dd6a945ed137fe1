package billing

import "errors"

var (
	// ErrInvalidInput is returned when a caller passes values outside their domain.
	ErrInvalidInput = errors.New("billing: invalid input")
	// ErrDuplicatePayment means more than one payment matched a subscriber in one period.
	ErrDuplicatePayment = errors.New("billing: multiple payments for one subscriber in a period")
	// ErrNoPhone is returned when a reminder link is requested for a subscriber without a phone.
	ErrNoPhone = errors.New("billing: subscriber has no phone number")
)
