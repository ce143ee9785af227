package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// VerificationStatus – immutable value object
// ---------------------------------------------------------------------------

// VerificationStatus represents the verification lifecycle stage of a green loan.
type VerificationStatus struct {
	value string
}

const (
	verificationStatusPending  = "pending_verification"
	verificationStatusApproved = "approved"
	verificationStatusRejected = "rejected"
)

var (
	VerificationStatusPending  = VerificationStatus{value: verificationStatusPending}
	VerificationStatusApproved = VerificationStatus{value: verificationStatusApproved}
	VerificationStatusRejected = VerificationStatus{value: verificationStatusRejected}
)

var validVerificationStatuses = map[string]VerificationStatus{
	verificationStatusPending:  VerificationStatusPending,
	verificationStatusApproved: VerificationStatusApproved,
	verificationStatusRejected: VerificationStatusRejected,
}

// NewVerificationStatus creates a VerificationStatus from a raw string.
func NewVerificationStatus(s string) (VerificationStatus, error) {
	v, ok := validVerificationStatuses[s]
	if !ok {
		return VerificationStatus{}, fmt.Errorf("invalid verification status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s VerificationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s VerificationStatus) IsZero() bool { return s.value == "" }

// IsTerminal reports whether the status is a decided outcome.
func (s VerificationStatus) IsTerminal() bool {
	return s.value == verificationStatusApproved || s.value == verificationStatusRejected
}

// Equal returns true when both statuses carry the same value.
func (s VerificationStatus) Equal(other VerificationStatus) bool {
	return s.value == other.value
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
