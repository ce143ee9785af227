package usecase

import (
	"context"
	"fmt"

	"github.com/consolevik/TerraLend/internal/application/dto"
	"github.com/consolevik/TerraLend/internal/domain/port"
)

// GetVerificationUseCase retrieves the latest verification record for a loan.
type GetVerificationUseCase struct {
	verificationRepo port.VerificationRepository
}

// NewGetVerificationUseCase wires dependencies.
func NewGetVerificationUseCase(verificationRepo port.VerificationRepository) *GetVerificationUseCase {
	return &GetVerificationUseCase{verificationRepo: verificationRepo}
}

// Execute fetches the verification record for a loan.
func (uc *GetVerificationUseCase) Execute(
	ctx context.Context,
	req dto.GetVerificationRequest,
) (dto.VerificationResponse, error) {
	record, err := uc.verificationRepo.FindByLoanID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.VerificationResponse{}, fmt.Errorf("find verification record: %w", err)
	}
	return toVerificationResponse(record), nil
}
