package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/consolevik/TerraLend/internal/application/dto"
	"github.com/consolevik/TerraLend/internal/domain/model"
	"github.com/consolevik/TerraLend/internal/domain/port"
	"github.com/consolevik/TerraLend/internal/domain/service"
	"github.com/consolevik/TerraLend/internal/domain/valueobject"
)

// VerifyLoanUseCase orchestrates the full verification pipeline: claim
// extraction, confidence scoring, green scoring, greenwashing cross-checks,
// and climate risk assessment, ending in an approve/reject decision.
type VerifyLoanUseCase struct {
	loanRepo         port.GreenLoanRepository
	verificationRepo port.VerificationRepository
	publisher        port.EventPublisher
	auditLog         port.AuditLog
	extractor        *service.ClaimExtractor
	scorer           *service.ConfidenceScorer
	engine           *service.GreenScoreEngine
	greenwashing     *service.GreenwashingChecker
}

// NewVerifyLoanUseCase wires dependencies.
func NewVerifyLoanUseCase(
	loanRepo port.GreenLoanRepository,
	verificationRepo port.VerificationRepository,
	publisher port.EventPublisher,
	auditLog port.AuditLog,
	extractor *service.ClaimExtractor,
	scorer *service.ConfidenceScorer,
	engine *service.GreenScoreEngine,
	greenwashing *service.GreenwashingChecker,
) *VerifyLoanUseCase {
	return &VerifyLoanUseCase{
		loanRepo:         loanRepo,
		verificationRepo: verificationRepo,
		publisher:        publisher,
		auditLog:         auditLog,
		extractor:        extractor,
		scorer:           scorer,
		engine:           engine,
		greenwashing:     greenwashing,
	}
}

// Execute runs the pipeline for one loan. A greenwashing failure rejects the
// loan regardless of its green score; otherwise the score decides against the
// approval threshold. Re-running replaces the stored verification record.
func (uc *VerifyLoanUseCase) Execute(
	ctx context.Context,
	req dto.VerifyLoanRequest,
) (dto.VerificationResponse, error) {
	now := time.Now().UTC()

	// 1. Load the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.VerificationResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Extract structured claims from the free-text description.
	claim := uc.extractor.Extract(loan.Description())
	confidence := uc.scorer.Score(claim)

	// 3. Score sustainability and assess the location.
	scoreResult := uc.engine.Score(loan.ScoringAttributes())
	climate := service.AssessClimateRisk(loan.ProjectLocation())

	// 4. Cross-verify the claims.
	greenwashing := uc.greenwashing.Run()

	// 5. Decide. Unverifiable claims reject outright, regardless of score.
	finalStatus := valueobject.VerificationStatusApproved
	rejectionReason := ""
	switch {
	case !greenwashing.Passed:
		finalStatus = valueobject.VerificationStatusRejected
		rejectionReason = "sustainability claims could not be verified against reference sources"
	case scoreResult.GreenScore < service.ApprovalThreshold:
		finalStatus = valueobject.VerificationStatusRejected
		rejectionReason = fmt.Sprintf(
			"green score %d is below the approval threshold of %d",
			scoreResult.GreenScore, service.ApprovalThreshold,
		)
	}

	// 6. Apply the outcome to the aggregate.
	if finalStatus.Equal(valueobject.VerificationStatusApproved) {
		loan = loan.ApproveVerification(
			scoreResult.GreenScore, scoreResult.SustainabilityClass,
			greenwashing.ConfidenceScore, now,
		)
	} else {
		loan = loan.RejectVerification(
			scoreResult.GreenScore, scoreResult.SustainabilityClass,
			rejectionReason, now,
		)
	}

	// 7. Assemble and persist the verification record (latest run wins).
	record, err := model.NewVerificationRecord(
		loan.TenantID(), loan.ID(),
		claim, confidence, scoreResult, greenwashing, climate,
		finalStatus, rejectionReason, now,
	)
	if err != nil {
		return dto.VerificationResponse{}, fmt.Errorf("build verification record: %w", err)
	}
	if err := uc.verificationRepo.Save(ctx, record); err != nil {
		return dto.VerificationResponse{}, fmt.Errorf("save verification record: %w", err)
	}
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.VerificationResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 8. Append to the audit trail.
	entry := port.AuditEntry{
		EventType:   "verification." + finalStatus.String(),
		LoanID:      loan.ID(),
		TenantID:    loan.TenantID(),
		Description: auditDescription(finalStatus, scoreResult.GreenScore, rejectionReason),
		Timestamp:   now,
	}
	if err := uc.auditLog.Append(ctx, entry); err != nil {
		return dto.VerificationResponse{}, fmt.Errorf("append audit entry: %w", err)
	}

	// 9. Publish domain events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.VerificationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toVerificationResponse(record), nil
}

func auditDescription(status valueobject.VerificationStatus, score int, reason string) string {
	if status.Equal(valueobject.VerificationStatusApproved) {
		return fmt.Sprintf("verification approved with green score %d", score)
	}
	return fmt.Sprintf("verification rejected: %s", reason)
}
