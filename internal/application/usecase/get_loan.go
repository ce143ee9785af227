package usecase

import (
	"context"
	"fmt"

	"github.com/consolevik/TerraLend/internal/application/dto"
	"github.com/consolevik/TerraLend/internal/domain/port"
)

// GetLoanUseCase retrieves a green loan by ID.
type GetLoanUseCase struct {
	loanRepo port.GreenLoanRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.GreenLoanRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo}
}

// Execute fetches a loan.
func (uc *GetLoanUseCase) Execute(
	ctx context.Context,
	req dto.GetLoanRequest,
) (dto.GreenLoanResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.GreenLoanResponse{}, fmt.Errorf("find loan: %w", err)
	}
	return toLoanResponse(loan), nil
}
