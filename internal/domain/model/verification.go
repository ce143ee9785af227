package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/consolevik/TerraLend/internal/domain/service"
	"github.com/consolevik/TerraLend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// VerificationRecord aggregate (one record per loan, latest run wins)
// ---------------------------------------------------------------------------

// VerificationRecord is the immutable audit artefact of one full verification
// run. It is keyed by loan ID; re-verification replaces the stored record.
type VerificationRecord struct {
	id              string
	tenantID        string
	loanID          string
	claim           service.ExtractedClaim
	confidence      service.ConfidenceResult
	greenScore      service.GreenScoreResult
	greenwashing    service.GreenwashingResult
	climate         service.ClimateRiskResult
	finalStatus     valueobject.VerificationStatus
	rejectionReason string
	version         int
	verifiedAt      time.Time
}

// NewVerificationRecord assembles the record for a completed pipeline run.
func NewVerificationRecord(
	tenantID, loanID string,
	claim service.ExtractedClaim,
	confidence service.ConfidenceResult,
	greenScore service.GreenScoreResult,
	greenwashing service.GreenwashingResult,
	climate service.ClimateRiskResult,
	finalStatus valueobject.VerificationStatus,
	rejectionReason string,
	now time.Time,
) (VerificationRecord, error) {
	if tenantID == "" {
		return VerificationRecord{}, errors.New("tenant ID is required")
	}
	if loanID == "" {
		return VerificationRecord{}, errors.New("loan ID is required")
	}
	if !finalStatus.IsTerminal() {
		return VerificationRecord{}, errors.New("final status must be a decided outcome")
	}

	return VerificationRecord{
		id:              uuid.New().String(),
		tenantID:        tenantID,
		loanID:          loanID,
		claim:           claim,
		confidence:      confidence,
		greenScore:      greenScore,
		greenwashing:    greenwashing,
		climate:         climate,
		finalStatus:     finalStatus,
		rejectionReason: rejectionReason,
		version:         1,
		verifiedAt:      now,
	}, nil
}

// ReconstructVerificationRecord rebuilds a record from persistence.
func ReconstructVerificationRecord(
	id, tenantID, loanID string,
	claim service.ExtractedClaim,
	confidence service.ConfidenceResult,
	greenScore service.GreenScoreResult,
	greenwashing service.GreenwashingResult,
	climate service.ClimateRiskResult,
	finalStatus valueobject.VerificationStatus,
	rejectionReason string,
	version int,
	verifiedAt time.Time,
) VerificationRecord {
	return VerificationRecord{
		id:              id,
		tenantID:        tenantID,
		loanID:          loanID,
		claim:           claim,
		confidence:      confidence,
		greenScore:      greenScore,
		greenwashing:    greenwashing,
		climate:         climate,
		finalStatus:     finalStatus,
		rejectionReason: rejectionReason,
		version:         version,
		verifiedAt:      verifiedAt,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (r VerificationRecord) ID() string                          { return r.id }
func (r VerificationRecord) TenantID() string                    { return r.tenantID }
func (r VerificationRecord) LoanID() string                      { return r.loanID }
func (r VerificationRecord) Claim() service.ExtractedClaim       { return r.claim }
func (r VerificationRecord) Confidence() service.ConfidenceResult {
	return r.confidence
}
func (r VerificationRecord) GreenScore() service.GreenScoreResult {
	return r.greenScore
}
func (r VerificationRecord) Greenwashing() service.GreenwashingResult {
	return r.greenwashing
}
func (r VerificationRecord) Climate() service.ClimateRiskResult { return r.climate }
func (r VerificationRecord) FinalStatus() valueobject.VerificationStatus {
	return r.finalStatus
}
func (r VerificationRecord) RejectionReason() string { return r.rejectionReason }
func (r VerificationRecord) Version() int            { return r.version }
func (r VerificationRecord) VerifiedAt() time.Time   { return r.verifiedAt }
