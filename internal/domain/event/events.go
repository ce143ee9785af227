package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/consolevik/TerraLend/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Green Loan Events
// ---------------------------------------------------------------------------

// GreenLoanSubmitted is raised when a new green loan application enters the
// verification pipeline.
type GreenLoanSubmitted struct {
	events.BaseEvent
	BorrowerID      string          `json:"borrower_id"`
	GreenObjective  string          `json:"green_objective"`
	LoanAmount      decimal.Decimal `json:"loan_amount"`
	ProjectLocation string          `json:"project_location"`
}

func NewGreenLoanSubmitted(
	loanID, tenantID, borrowerID, greenObjective string,
	loanAmount decimal.Decimal, projectLocation string, _ time.Time,
) GreenLoanSubmitted {
	return GreenLoanSubmitted{
		BaseEvent:       events.NewBaseEvent("lending.green_loan.submitted", loanID, "GreenLoan", tenantID),
		BorrowerID:      borrowerID,
		GreenObjective:  greenObjective,
		LoanAmount:      loanAmount,
		ProjectLocation: projectLocation,
	}
}

// LoanVerificationApproved is raised when the verification pipeline approves
// a loan's sustainability claims.
type LoanVerificationApproved struct {
	events.BaseEvent
	BorrowerID          string  `json:"borrower_id"`
	GreenScore          int     `json:"green_score"`
	SustainabilityClass string  `json:"sustainability_class"`
	ConfidenceScore     float64 `json:"confidence_score"`
}

func NewLoanVerificationApproved(
	loanID, tenantID, borrowerID string,
	greenScore int, sustainabilityClass string, confidenceScore float64, _ time.Time,
) LoanVerificationApproved {
	return LoanVerificationApproved{
		BaseEvent:           events.NewBaseEvent("lending.green_loan.verification_approved", loanID, "GreenLoan", tenantID),
		BorrowerID:          borrowerID,
		GreenScore:          greenScore,
		SustainabilityClass: sustainabilityClass,
		ConfidenceScore:     confidenceScore,
	}
}

// LoanVerificationRejected is raised when the verification pipeline rejects
// a loan, either on greenwashing grounds or an insufficient green score.
type LoanVerificationRejected struct {
	events.BaseEvent
	BorrowerID string `json:"borrower_id"`
	GreenScore int    `json:"green_score"`
	Reason     string `json:"reason"`
}

func NewLoanVerificationRejected(
	loanID, tenantID, borrowerID string,
	greenScore int, reason string, _ time.Time,
) LoanVerificationRejected {
	return LoanVerificationRejected{
		BaseEvent:  events.NewBaseEvent("lending.green_loan.verification_rejected", loanID, "GreenLoan", tenantID),
		BorrowerID: borrowerID,
		GreenScore: greenScore,
		Reason:     reason,
	}
}
