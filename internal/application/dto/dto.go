package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// Coordinates is a WGS84 point in external representations.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SubmitLoanRequest carries the data needed to submit a new green loan
// application.
type SubmitLoanRequest struct {
	TenantID         string          `json:"tenant_id"`
	BorrowerID       string          `json:"borrower_id"`
	BusinessName     string          `json:"business_name"`
	Description      string          `json:"description"`
	GreenObjective   string          `json:"green_objective"`
	LoanAmount       decimal.Decimal `json:"loan_amount"`
	AnnualTurnover   decimal.Decimal `json:"annual_turnover"`
	YearsInBusiness  int             `json:"years_in_business"`
	EstimatedSavings decimal.Decimal `json:"estimated_savings"`
	ProjectLocation  string          `json:"project_location"`
}

// VerifyLoanRequest identifies a loan to run the verification pipeline on.
type VerifyLoanRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// GetVerificationRequest identifies a verification record to retrieve.
type GetVerificationRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// AnalyzeDescriptionRequest carries free text for a stateless claim analysis.
type AnalyzeDescriptionRequest struct {
	Description string `json:"description"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// GreenLoanResponse is the external representation of a green loan.
type GreenLoanResponse struct {
	ID                  string          `json:"id"`
	TenantID            string          `json:"tenant_id"`
	BorrowerID          string          `json:"borrower_id"`
	BusinessName        string          `json:"business_name"`
	Description         string          `json:"description"`
	GreenObjective      string          `json:"green_objective"`
	LoanAmount          decimal.Decimal `json:"loan_amount"`
	AnnualTurnover      decimal.Decimal `json:"annual_turnover"`
	YearsInBusiness     int             `json:"years_in_business"`
	EstimatedSavings    decimal.Decimal `json:"estimated_savings"`
	ProjectLocation     string          `json:"project_location"`
	Coordinates         *Coordinates    `json:"coordinates,omitempty"`
	Status              string          `json:"status"`
	GreenScore          int             `json:"green_score"`
	SustainabilityClass string          `json:"sustainability_class,omitempty"`
	RejectionReason     string          `json:"rejection_reason,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ClaimResponse is the external representation of an extracted claim.
type ClaimResponse struct {
	ProjectType               string   `json:"project_type"`
	CapacityKW                *float64 `json:"capacity_kw,omitempty"`
	Vendor                    string   `json:"vendor,omitempty"`
	Certifications            []string `json:"certifications,omitempty"`
	CO2SavedTonnesPerYear     *float64 `json:"co2_saved_tonnes_per_year,omitempty"`
	EnergyGeneratedKWhPerYear *float64 `json:"energy_generated_kwh_per_year,omitempty"`
}

// ConfidenceSignalResponse itemises one confidence deduction.
type ConfidenceSignalResponse struct {
	Field   string  `json:"field"`
	Message string  `json:"message"`
	Penalty float64 `json:"penalty"`
}

// AnalyzeDescriptionResponse is the result of a stateless claim analysis.
type AnalyzeDescriptionResponse struct {
	Claim      ClaimResponse              `json:"claim"`
	Confidence float64                    `json:"confidence"`
	Signals    []ConfidenceSignalResponse `json:"signals,omitempty"`
}

// ReasonResponse explains one green score factor.
type ReasonResponse struct {
	Factor      string `json:"factor"`
	Explanation string `json:"explanation"`
}

// CrossCheckResponse is one greenwashing cross-verification step.
type CrossCheckResponse struct {
	Source     string  `json:"source"`
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
	Detail     string  `json:"detail,omitempty"`
}

// GreenwashingResponse is the outcome of the cross-verification pass.
type GreenwashingResponse struct {
	Passed          bool                 `json:"passed"`
	ConfidenceScore float64              `json:"confidence_score"`
	Checks          []CrossCheckResponse `json:"checks"`
	Flags           []string             `json:"flags,omitempty"`
}

// ClimateRiskEntryResponse is one regional climate risk.
type ClimateRiskEntryResponse struct {
	Type           string `json:"type"`
	Level          string `json:"level"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// ClimateRiskResponse is the aggregated climate risk assessment.
type ClimateRiskResponse struct {
	Level string                     `json:"level"`
	Risks []ClimateRiskEntryResponse `json:"risks,omitempty"`
	Notes string                     `json:"notes,omitempty"`
}

// VerificationResponse is the external representation of a verification
// record.
type VerificationResponse struct {
	LoanID              string               `json:"loan_id"`
	TenantID            string               `json:"tenant_id"`
	FinalStatus         string               `json:"final_status"`
	RejectionReason     string               `json:"rejection_reason,omitempty"`
	GreenScore          int                  `json:"green_score"`
	SustainabilityClass string               `json:"sustainability_class"`
	Methodology         string               `json:"methodology"`
	Reasoning           []ReasonResponse     `json:"reasoning"`
	Claim               ClaimResponse        `json:"claim"`
	Confidence          float64              `json:"confidence"`
	Greenwashing        GreenwashingResponse `json:"greenwashing"`
	Climate             ClimateRiskResponse  `json:"climate"`
	VerifiedAt          time.Time            `json:"verified_at"`
}
