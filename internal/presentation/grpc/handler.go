package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/consolevik/TerraLend/internal/application/dto"
	"github.com/consolevik/TerraLend/internal/application/usecase"
	"github.com/consolevik/TerraLend/internal/domain/port"
)

// VerificationHandler exposes the verification pipeline over gRPC.
type VerificationHandler struct {
	UnimplementedVerificationServiceServer

	submitLoan      *usecase.SubmitLoanUseCase
	verifyLoan      *usecase.VerifyLoanUseCase
	getLoan         *usecase.GetLoanUseCase
	getVerification *usecase.GetVerificationUseCase
	analyze         *usecase.AnalyzeDescriptionUseCase
}

// NewVerificationHandler creates a new handler with all use-case dependencies.
func NewVerificationHandler(
	submitLoan *usecase.SubmitLoanUseCase,
	verifyLoan *usecase.VerifyLoanUseCase,
	getLoan *usecase.GetLoanUseCase,
	getVerification *usecase.GetVerificationUseCase,
	analyze *usecase.AnalyzeDescriptionUseCase,
) *VerificationHandler {
	return &VerificationHandler{
		submitLoan:      submitLoan,
		verifyLoan:      verifyLoan,
		getLoan:         getLoan,
		getVerification: getVerification,
		analyze:         analyze,
	}
}

// SubmitLoan handles a new green loan submission.
func (h *VerificationHandler) SubmitLoan(ctx context.Context, req *SubmitLoanRequest) (*SubmitLoanResponse, error) {
	loanAmount, err := decimal.NewFromString(req.LoanAmount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid loan amount: %v", err)
	}
	turnover, err := parseOptionalAmount(req.AnnualTurnover)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid annual turnover: %v", err)
	}
	savings, err := parseOptionalAmount(req.EstimatedSavings)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid estimated savings: %v", err)
	}

	resp, err := h.submitLoan.Execute(ctx, dto.SubmitLoanRequest{
		TenantID:         req.TenantId,
		BorrowerID:       req.BorrowerId,
		BusinessName:     req.BusinessName,
		Description:      req.Description,
		GreenObjective:   req.GreenObjective,
		LoanAmount:       loanAmount,
		AnnualTurnover:   turnover,
		YearsInBusiness:  int(req.YearsInBusiness),
		EstimatedSavings: savings,
		ProjectLocation:  req.ProjectLocation,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &SubmitLoanResponse{Loan: toWireLoan(resp)}, nil
}

// VerifyLoan runs the verification pipeline for a loan.
func (h *VerificationHandler) VerifyLoan(ctx context.Context, req *VerifyLoanRequest) (*VerifyLoanResponse, error) {
	resp, err := h.verifyLoan.Execute(ctx, dto.VerifyLoanRequest{
		TenantID: req.TenantId,
		LoanID:   req.LoanId,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &VerifyLoanResponse{Verification: toWireVerification(resp)}, nil
}

// GetLoan retrieves a loan by ID.
func (h *VerificationHandler) GetLoan(ctx context.Context, req *GetLoanRequest) (*GetLoanResponse, error) {
	resp, err := h.getLoan.Execute(ctx, dto.GetLoanRequest{
		TenantID: req.TenantId,
		LoanID:   req.LoanId,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &GetLoanResponse{Loan: toWireLoan(resp)}, nil
}

// GetVerification retrieves the latest verification record for a loan.
func (h *VerificationHandler) GetVerification(ctx context.Context, req *GetVerificationRequest) (*GetVerificationResponse, error) {
	resp, err := h.getVerification.Execute(ctx, dto.GetVerificationRequest{
		TenantID: req.TenantId,
		LoanID:   req.LoanId,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &GetVerificationResponse{Verification: toWireVerification(resp)}, nil
}

// AnalyzeDescription runs stateless claim extraction over raw text.
func (h *VerificationHandler) AnalyzeDescription(ctx context.Context, req *AnalyzeDescriptionRequest) (*AnalyzeDescriptionResponse, error) {
	resp, err := h.analyze.Execute(ctx, dto.AnalyzeDescriptionRequest{
		Description: req.Description,
	})
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	signals := make([]*ConfidenceSignal, 0, len(resp.Signals))
	for _, s := range resp.Signals {
		signals = append(signals, &ConfidenceSignal{
			Field:   s.Field,
			Message: s.Message,
			Penalty: s.Penalty,
		})
	}
	return &AnalyzeDescriptionResponse{
		Claim:      toWireClaim(resp.Claim),
		Confidence: resp.Confidence,
		Signals:    signals,
	}, nil
}

// ---------------------------------------------------------------------------
// mapping helpers
// ---------------------------------------------------------------------------

func parseOptionalAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func toStatusError(err error) error {
	if errors.Is(err, port.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func toWireLoan(resp dto.GreenLoanResponse) *GreenLoan {
	loan := &GreenLoan{
		Id:                  resp.ID,
		TenantId:            resp.TenantID,
		BorrowerId:          resp.BorrowerID,
		BusinessName:        resp.BusinessName,
		Description:         resp.Description,
		GreenObjective:      resp.GreenObjective,
		LoanAmount:          resp.LoanAmount.String(),
		AnnualTurnover:      resp.AnnualTurnover.String(),
		YearsInBusiness:     int32(resp.YearsInBusiness),
		EstimatedSavings:    resp.EstimatedSavings.String(),
		ProjectLocation:     resp.ProjectLocation,
		Status:              resp.Status,
		GreenScore:          int32(resp.GreenScore),
		SustainabilityClass: resp.SustainabilityClass,
		RejectionReason:     resp.RejectionReason,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Coordinates != nil {
		loan.Latitude = &resp.Coordinates.Lat
		loan.Longitude = &resp.Coordinates.Lng
	}
	return loan
}

func toWireClaim(claim dto.ClaimResponse) *Claim {
	return &Claim{
		ProjectType:               claim.ProjectType,
		CapacityKw:                claim.CapacityKW,
		Vendor:                    claim.Vendor,
		Certifications:            claim.Certifications,
		Co2SavedTonnesPerYear:     claim.CO2SavedTonnesPerYear,
		EnergyGeneratedKwhPerYear: claim.EnergyGeneratedKWhPerYear,
	}
}

func toWireVerification(resp dto.VerificationResponse) *Verification {
	reasoning := make([]*ReasonEntry, 0, len(resp.Reasoning))
	for _, r := range resp.Reasoning {
		reasoning = append(reasoning, &ReasonEntry{Factor: r.Factor, Explanation: r.Explanation})
	}

	checks := make([]*CrossCheck, 0, len(resp.Greenwashing.Checks))
	for _, c := range resp.Greenwashing.Checks {
		checks = append(checks, &CrossCheck{
			Source:     c.Source,
			Status:     c.Status,
			Confidence: c.Confidence,
			Detail:     c.Detail,
		})
	}

	risks := make([]*ClimateRisk, 0, len(resp.Climate.Risks))
	for _, r := range resp.Climate.Risks {
		risks = append(risks, &ClimateRisk{
			Type:           r.Type,
			Level:          r.Level,
			Description:    r.Description,
			Recommendation: r.Recommendation,
		})
	}

	return &Verification{
		LoanId:              resp.LoanID,
		TenantId:            resp.TenantID,
		FinalStatus:         resp.FinalStatus,
		RejectionReason:     resp.RejectionReason,
		GreenScore:          int32(resp.GreenScore),
		SustainabilityClass: resp.SustainabilityClass,
		Methodology:         resp.Methodology,
		Reasoning:           reasoning,
		Claim:               toWireClaim(resp.Claim),
		Confidence:          resp.Confidence,
		Greenwashing: &Greenwashing{
			Passed:          resp.Greenwashing.Passed,
			ConfidenceScore: resp.Greenwashing.ConfidenceScore,
			Checks:          checks,
			Flags:           resp.Greenwashing.Flags,
		},
		Climate: &ClimateAssessment{
			Level: resp.Climate.Level,
			Risks: risks,
			Notes: resp.Climate.Notes,
		},
		VerifiedAt: resp.VerifiedAt.Format(time.RFC3339),
	}
}
