package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/consolevik/TerraLend/internal/domain/event"
	"github.com/consolevik/TerraLend/internal/domain/service"
	"github.com/consolevik/TerraLend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// GreenLoan aggregate root (Green Loan Verification System)
// ---------------------------------------------------------------------------

// GreenLoan is an immutable aggregate. Every mutation returns a new copy.
type GreenLoan struct {
	id                  string
	tenantID            string
	borrowerID          string
	businessName        string
	description         string
	greenObjective      string
	loanAmount          decimal.Decimal
	annualTurnover      decimal.Decimal
	yearsInBusiness     int
	estimatedSavings    decimal.Decimal
	projectLocation     string
	coordinates         *service.Coordinates
	status              valueobject.VerificationStatus
	greenScore          int
	sustainabilityClass valueobject.SustainabilityClass
	rejectionReason     string
	version             int
	createdAt           time.Time
	updatedAt           time.Time
	domainEvents        []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewGreenLoan creates a brand-new application in PENDING_VERIFICATION status.
func NewGreenLoan(
	tenantID, borrowerID, businessName, description, greenObjective string,
	loanAmount, annualTurnover, estimatedSavings decimal.Decimal,
	yearsInBusiness int,
	projectLocation string,
	coordinates *service.Coordinates,
	now time.Time,
) (GreenLoan, error) {
	if tenantID == "" {
		return GreenLoan{}, errors.New("tenant ID is required")
	}
	if borrowerID == "" {
		return GreenLoan{}, errors.New("borrower ID is required")
	}
	if description == "" {
		return GreenLoan{}, errors.New("project description is required")
	}
	if loanAmount.LessThanOrEqual(decimal.Zero) {
		return GreenLoan{}, errors.New("loan amount must be positive")
	}
	if yearsInBusiness < 0 {
		return GreenLoan{}, errors.New("years in business cannot be negative")
	}

	id := uuid.New().String()
	loan := GreenLoan{
		id:               id,
		tenantID:         tenantID,
		borrowerID:       borrowerID,
		businessName:     businessName,
		description:      description,
		greenObjective:   greenObjective,
		loanAmount:       loanAmount,
		annualTurnover:   annualTurnover,
		yearsInBusiness:  yearsInBusiness,
		estimatedSavings: estimatedSavings,
		projectLocation:  projectLocation,
		coordinates:      coordinates,
		status:           valueobject.VerificationStatusPending,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}

	submitted := event.NewGreenLoanSubmitted(
		id, tenantID, borrowerID, greenObjective, loanAmount, projectLocation, now,
	)
	loan.domainEvents = append(loan.domainEvents, submitted)
	return loan, nil
}

// ReconstructGreenLoan rebuilds an aggregate from persistence without side-effects.
func ReconstructGreenLoan(
	id, tenantID, borrowerID, businessName, description, greenObjective string,
	loanAmount, annualTurnover, estimatedSavings decimal.Decimal,
	yearsInBusiness int,
	projectLocation string,
	coordinates *service.Coordinates,
	status valueobject.VerificationStatus,
	greenScore int,
	sustainabilityClass valueobject.SustainabilityClass,
	rejectionReason string,
	version int,
	createdAt, updatedAt time.Time,
) GreenLoan {
	return GreenLoan{
		id:                  id,
		tenantID:            tenantID,
		borrowerID:          borrowerID,
		businessName:        businessName,
		description:         description,
		greenObjective:      greenObjective,
		loanAmount:          loanAmount,
		annualTurnover:      annualTurnover,
		yearsInBusiness:     yearsInBusiness,
		estimatedSavings:    estimatedSavings,
		projectLocation:     projectLocation,
		coordinates:         coordinates,
		status:              status,
		greenScore:          greenScore,
		sustainabilityClass: sustainabilityClass,
		rejectionReason:     rejectionReason,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// ApproveVerification records an approved verification outcome and emits
// LoanVerificationApproved. Re-verification is allowed from any status; the
// latest outcome overwrites the previous one.
func (l GreenLoan) ApproveVerification(
	greenScore int,
	class valueobject.SustainabilityClass,
	confidenceScore float64,
	now time.Time,
) GreenLoan {
	next := l
	next.status = valueobject.VerificationStatusApproved
	next.greenScore = greenScore
	next.sustainabilityClass = class
	next.rejectionReason = ""
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanVerificationApproved(
		l.id, l.tenantID, l.borrowerID, greenScore, class.String(), confidenceScore, now,
	))
	return next
}

// RejectVerification records a rejected verification outcome and emits
// LoanVerificationRejected. Re-verification is allowed from any status.
func (l GreenLoan) RejectVerification(
	greenScore int,
	class valueobject.SustainabilityClass,
	reason string,
	now time.Time,
) GreenLoan {
	next := l
	next.status = valueobject.VerificationStatusRejected
	next.greenScore = greenScore
	next.sustainabilityClass = class
	next.rejectionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanVerificationRejected(
		l.id, l.tenantID, l.borrowerID, greenScore, reason, now,
	))
	return next
}

// ---------------------------------------------------------------------------
// Derived views
// ---------------------------------------------------------------------------

// ScoringAttributes projects the loan into the shape the scoring engine reads.
func (l GreenLoan) ScoringAttributes() service.LoanAttributes {
	return service.LoanAttributes{
		GreenObjective:   l.greenObjective,
		AnnualTurnover:   l.annualTurnover,
		YearsInBusiness:  l.yearsInBusiness,
		EstimatedSavings: l.estimatedSavings,
		LoanAmount:       l.loanAmount,
		ProjectLocation:  l.projectLocation,
		Coordinates:      l.coordinates,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l GreenLoan) ID() string                          { return l.id }
func (l GreenLoan) TenantID() string                    { return l.tenantID }
func (l GreenLoan) BorrowerID() string                  { return l.borrowerID }
func (l GreenLoan) BusinessName() string                { return l.businessName }
func (l GreenLoan) Description() string                 { return l.description }
func (l GreenLoan) GreenObjective() string              { return l.greenObjective }
func (l GreenLoan) LoanAmount() decimal.Decimal         { return l.loanAmount }
func (l GreenLoan) AnnualTurnover() decimal.Decimal     { return l.annualTurnover }
func (l GreenLoan) YearsInBusiness() int                { return l.yearsInBusiness }
func (l GreenLoan) EstimatedSavings() decimal.Decimal   { return l.estimatedSavings }
func (l GreenLoan) ProjectLocation() string             { return l.projectLocation }
func (l GreenLoan) Coordinates() *service.Coordinates   { return l.coordinates }
func (l GreenLoan) Status() valueobject.VerificationStatus {
	return l.status
}
func (l GreenLoan) GreenScore() int { return l.greenScore }
func (l GreenLoan) SustainabilityClass() valueobject.SustainabilityClass {
	return l.sustainabilityClass
}
func (l GreenLoan) RejectionReason() string          { return l.rejectionReason }
func (l GreenLoan) Version() int                     { return l.version }
func (l GreenLoan) CreatedAt() time.Time             { return l.createdAt }
func (l GreenLoan) UpdatedAt() time.Time             { return l.updatedAt }
func (l GreenLoan) DomainEvents() []event.DomainEvent { return l.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (l GreenLoan) ClearEvents() GreenLoan {
	next := l
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
