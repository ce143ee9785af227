package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/consolevik/TerraLend/internal/application/dto"
	"github.com/consolevik/TerraLend/internal/domain/model"
	"github.com/consolevik/TerraLend/internal/domain/port"
)

// SubmitLoanUseCase registers a new green loan application and geocodes its
// project location so later scoring can use precise coordinates.
type SubmitLoanUseCase struct {
	loanRepo  port.GreenLoanRepository
	publisher port.EventPublisher
	geocoder  port.GeocodingClient
}

// NewSubmitLoanUseCase wires dependencies.
func NewSubmitLoanUseCase(
	loanRepo port.GreenLoanRepository,
	publisher port.EventPublisher,
	geocoder port.GeocodingClient,
) *SubmitLoanUseCase {
	return &SubmitLoanUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
		geocoder:  geocoder,
	}
}

// Execute creates and persists a green loan in pending verification status.
// Geocoding is best-effort: an unreachable geocoder degrades the application
// to text-only location matching instead of failing the submission.
func (uc *SubmitLoanUseCase) Execute(
	ctx context.Context,
	req dto.SubmitLoanRequest,
) (dto.GreenLoanResponse, error) {
	now := time.Now().UTC()

	coords, err := uc.geocoder.Geocode(ctx, req.ProjectLocation)
	if err != nil {
		coords = nil
	}

	loan, err := model.NewGreenLoan(
		req.TenantID, req.BorrowerID, req.BusinessName,
		req.Description, req.GreenObjective,
		req.LoanAmount, req.AnnualTurnover, req.EstimatedSavings,
		req.YearsInBusiness, req.ProjectLocation, coords, now,
	)
	if err != nil {
		return dto.GreenLoanResponse{}, fmt.Errorf("create loan: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.GreenLoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.GreenLoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}
