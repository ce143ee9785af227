package usecase

import (
	"github.com/consolevik/TerraLend/internal/application/dto"
	"github.com/consolevik/TerraLend/internal/domain/model"
	"github.com/consolevik/TerraLend/internal/domain/service"
)

// ---------------------------------------------------------------------------
// Domain -> DTO mapping
// ---------------------------------------------------------------------------

func toLoanResponse(loan model.GreenLoan) dto.GreenLoanResponse {
	resp := dto.GreenLoanResponse{
		ID:               loan.ID(),
		TenantID:         loan.TenantID(),
		BorrowerID:       loan.BorrowerID(),
		BusinessName:     loan.BusinessName(),
		Description:      loan.Description(),
		GreenObjective:   loan.GreenObjective(),
		LoanAmount:       loan.LoanAmount(),
		AnnualTurnover:   loan.AnnualTurnover(),
		YearsInBusiness:  loan.YearsInBusiness(),
		EstimatedSavings: loan.EstimatedSavings(),
		ProjectLocation:  loan.ProjectLocation(),
		Status:           loan.Status().String(),
		GreenScore:       loan.GreenScore(),
		RejectionReason:  loan.RejectionReason(),
		CreatedAt:        loan.CreatedAt(),
		UpdatedAt:        loan.UpdatedAt(),
	}
	if !loan.SustainabilityClass().IsZero() {
		resp.SustainabilityClass = loan.SustainabilityClass().String()
	}
	if c := loan.Coordinates(); c != nil {
		resp.Coordinates = &dto.Coordinates{Lat: c.Lat, Lng: c.Lng}
	}
	return resp
}

func toClaimResponse(claim service.ExtractedClaim) dto.ClaimResponse {
	return dto.ClaimResponse{
		ProjectType:               claim.ProjectType.String(),
		CapacityKW:                claim.CapacityKW,
		Vendor:                    claim.Vendor,
		Certifications:            claim.Certifications,
		CO2SavedTonnesPerYear:     claim.ClaimedImpact.CO2SavedTonnesPerYear,
		EnergyGeneratedKWhPerYear: claim.ClaimedImpact.EnergyGeneratedKWhPerYear,
	}
}

func toSignalResponses(signals []service.ConfidenceSignal) []dto.ConfidenceSignalResponse {
	if len(signals) == 0 {
		return nil
	}
	out := make([]dto.ConfidenceSignalResponse, 0, len(signals))
	for _, s := range signals {
		out = append(out, dto.ConfidenceSignalResponse{
			Field:   s.Field,
			Message: s.Message,
			Penalty: s.Penalty,
		})
	}
	return out
}

func toGreenwashingResponse(result service.GreenwashingResult) dto.GreenwashingResponse {
	checks := make([]dto.CrossCheckResponse, 0, len(result.Checks))
	for _, c := range result.Checks {
		checks = append(checks, dto.CrossCheckResponse{
			Source:     c.Source,
			Status:     c.Status,
			Confidence: c.Confidence,
			Detail:     c.Detail,
		})
	}
	return dto.GreenwashingResponse{
		Passed:          result.Passed,
		ConfidenceScore: result.ConfidenceScore,
		Checks:          checks,
		Flags:           result.Flags,
	}
}

func toClimateResponse(result service.ClimateRiskResult) dto.ClimateRiskResponse {
	risks := make([]dto.ClimateRiskEntryResponse, 0, len(result.Risks))
	for _, r := range result.Risks {
		risks = append(risks, dto.ClimateRiskEntryResponse{
			Type:           r.Type,
			Level:          r.Level.String(),
			Description:    r.Description,
			Recommendation: r.Recommendation,
		})
	}
	return dto.ClimateRiskResponse{
		Level: result.Level.String(),
		Risks: risks,
		Notes: result.Notes,
	}
}

func toVerificationResponse(record model.VerificationRecord) dto.VerificationResponse {
	score := record.GreenScore()
	reasoning := make([]dto.ReasonResponse, 0, len(score.Reasoning))
	for _, r := range score.Reasoning {
		reasoning = append(reasoning, dto.ReasonResponse{
			Factor:      r.Factor,
			Explanation: r.Explanation,
		})
	}
	return dto.VerificationResponse{
		LoanID:              record.LoanID(),
		TenantID:            record.TenantID(),
		FinalStatus:         record.FinalStatus().String(),
		RejectionReason:     record.RejectionReason(),
		GreenScore:          score.GreenScore,
		SustainabilityClass: score.SustainabilityClass.String(),
		Methodology:         score.Methodology,
		Reasoning:           reasoning,
		Claim:               toClaimResponse(record.Claim()),
		Confidence:          record.Confidence().Confidence,
		Greenwashing:        toGreenwashingResponse(record.Greenwashing()),
		Climate:             toClimateResponse(record.Climate()),
		VerifiedAt:          record.VerifiedAt(),
	}
}
