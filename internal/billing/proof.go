package billing

import "time"

// DefaultProofExpiryDays is how long a payment proof stays viewable.
const DefaultProofExpiryDays = 40

// ProofState says whether a proof image may still be shown.
type ProofState struct {
	Expired       bool      `json:"expired"`
	DaysRemaining int       `json:"days_remaining"`
	ExpiresOn     time.Time `json:"expires_on"`
}

// EvaluateProof decides whether a proof recorded on paymentDate has expired at now.
// The proof is still valid on the last day (elapsed == expiryDays). A payment date in
// the future is treated as freshly recorded.
func EvaluateProof(paymentDate, now time.Time, expiryDays int) ProofState {
	if expiryDays <= 0 {
		expiryDays = DefaultProofExpiryDays
	}
	st := ProofState{ExpiresOn: dateOnly(paymentDate).AddDate(0, 0, expiryDays)}

	elapsed := daysBetween(paymentDate, now)
	if elapsed < 0 {
		st.DaysRemaining = expiryDays
		return st
	}
	if elapsed > expiryDays {
		st.Expired = true
		return st
	}
	st.DaysRemaining = expiryDays - elapsed
	return st
}
