package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/consolevik/TerraLend/internal/domain/model"
	"github.com/consolevik/TerraLend/internal/domain/port"
	"github.com/consolevik/TerraLend/internal/domain/service"
	"github.com/consolevik/TerraLend/internal/domain/valueobject"
	pkgpostgres "github.com/consolevik/TerraLend/pkg/postgres"
)

// VerificationRepo implements port.VerificationRepository. The pipeline
// results are stored as JSONB documents; the record is keyed by loan ID and
// re-verification replaces the previous run (last write wins).
type VerificationRepo struct {
	db pkgpostgres.Querier
}

// NewVerificationRepo creates a new repository backed by PostgreSQL.
func NewVerificationRepo(db pkgpostgres.Querier) *VerificationRepo {
	return &VerificationRepo{db: db}
}

// Save persists a verification record, replacing any previous record for the
// same loan.
func (r *VerificationRepo) Save(ctx context.Context, record model.VerificationRecord) error {
	claim, err := json.Marshal(toClaimRow(record.Claim()))
	if err != nil {
		return fmt.Errorf("marshal claim: %w", err)
	}
	confidence, err := json.Marshal(record.Confidence())
	if err != nil {
		return fmt.Errorf("marshal confidence: %w", err)
	}
	greenScore, err := json.Marshal(toGreenScoreRow(record.GreenScore()))
	if err != nil {
		return fmt.Errorf("marshal green score: %w", err)
	}
	greenwashing, err := json.Marshal(record.Greenwashing())
	if err != nil {
		return fmt.Errorf("marshal greenwashing: %w", err)
	}
	climate, err := json.Marshal(toClimateRow(record.Climate()))
	if err != nil {
		return fmt.Errorf("marshal climate: %w", err)
	}

	query := `
		INSERT INTO verification_records (
			id, tenant_id, loan_id, claim, confidence, green_score,
			greenwashing, climate, final_status, rejection_reason,
			version, verified_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (loan_id) DO UPDATE SET
			claim            = EXCLUDED.claim,
			confidence       = EXCLUDED.confidence,
			green_score      = EXCLUDED.green_score,
			greenwashing     = EXCLUDED.greenwashing,
			climate          = EXCLUDED.climate,
			final_status     = EXCLUDED.final_status,
			rejection_reason = EXCLUDED.rejection_reason,
			version          = verification_records.version + 1,
			verified_at      = EXCLUDED.verified_at
	`
	_, err = r.db.Exec(ctx, query,
		record.ID(), record.TenantID(), record.LoanID(),
		claim, confidence, greenScore, greenwashing, climate,
		record.FinalStatus().String(), record.RejectionReason(),
		record.Version(), record.VerifiedAt(),
	)
	if err != nil {
		return fmt.Errorf("save verification record: %w", err)
	}
	return nil
}

// FindByLoanID retrieves the latest verification record for a loan.
func (r *VerificationRepo) FindByLoanID(ctx context.Context, tenantID, loanID string) (model.VerificationRecord, error) {
	query := `
		SELECT id, tenant_id, loan_id, claim, confidence, green_score,
		       greenwashing, climate, final_status, rejection_reason,
		       version, verified_at
		FROM verification_records
		WHERE tenant_id = $1 AND loan_id = $2
	`
	var (
		id, tenant, loan                     string
		claimJSON, confidenceJSON            []byte
		greenScoreJSON, greenwashingJSON     []byte
		climateJSON                          []byte
		statusStr, rejectionReason           string
		version                              int
		verifiedAt                           time.Time
	)

	err := r.db.QueryRow(ctx, query, tenantID, loanID).Scan(
		&id, &tenant, &loan, &claimJSON, &confidenceJSON, &greenScoreJSON,
		&greenwashingJSON, &climateJSON, &statusStr, &rejectionReason,
		&version, &verifiedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.VerificationRecord{}, port.ErrNotFound
	}
	if err != nil {
		return model.VerificationRecord{}, fmt.Errorf("scan verification record: %w", err)
	}

	var cRow claimRow
	if err := json.Unmarshal(claimJSON, &cRow); err != nil {
		return model.VerificationRecord{}, fmt.Errorf("unmarshal claim: %w", err)
	}
	claim, err := fromClaimRow(cRow)
	if err != nil {
		return model.VerificationRecord{}, err
	}

	var confidence service.ConfidenceResult
	if err := json.Unmarshal(confidenceJSON, &confidence); err != nil {
		return model.VerificationRecord{}, fmt.Errorf("unmarshal confidence: %w", err)
	}

	var scoreRow greenScoreRow
	if err := json.Unmarshal(greenScoreJSON, &scoreRow); err != nil {
		return model.VerificationRecord{}, fmt.Errorf("unmarshal green score: %w", err)
	}
	greenScore, err := fromGreenScoreRow(scoreRow)
	if err != nil {
		return model.VerificationRecord{}, err
	}

	var greenwashing service.GreenwashingResult
	if err := json.Unmarshal(greenwashingJSON, &greenwashing); err != nil {
		return model.VerificationRecord{}, fmt.Errorf("unmarshal greenwashing: %w", err)
	}

	var climRow climateRow
	if err := json.Unmarshal(climateJSON, &climRow); err != nil {
		return model.VerificationRecord{}, fmt.Errorf("unmarshal climate: %w", err)
	}
	climate, err := fromClimateRow(climRow)
	if err != nil {
		return model.VerificationRecord{}, err
	}

	status, err := valueobject.NewVerificationStatus(statusStr)
	if err != nil {
		return model.VerificationRecord{}, fmt.Errorf("parse status: %w", err)
	}

	return model.ReconstructVerificationRecord(
		id, tenant, loan,
		claim, confidence, greenScore, greenwashing, climate,
		status, rejectionReason, version, verifiedAt,
	), nil
}

// ---------------------------------------------------------------------------
// JSONB row shapes (value objects flattened to strings)
// ---------------------------------------------------------------------------

type claimRow struct {
	ProjectType               string   `json:"project_type"`
	CapacityKW                *float64 `json:"capacity_kw,omitempty"`
	Vendor                    string   `json:"vendor,omitempty"`
	Certifications            []string `json:"certifications,omitempty"`
	CO2SavedTonnesPerYear     *float64 `json:"co2_saved_tonnes_per_year,omitempty"`
	EnergyGeneratedKWhPerYear *float64 `json:"energy_generated_kwh_per_year,omitempty"`
}

func toClaimRow(claim service.ExtractedClaim) claimRow {
	return claimRow{
		ProjectType:               claim.ProjectType.String(),
		CapacityKW:                claim.CapacityKW,
		Vendor:                    claim.Vendor,
		Certifications:            claim.Certifications,
		CO2SavedTonnesPerYear:     claim.ClaimedImpact.CO2SavedTonnesPerYear,
		EnergyGeneratedKWhPerYear: claim.ClaimedImpact.EnergyGeneratedKWhPerYear,
	}
}

func fromClaimRow(row claimRow) (service.ExtractedClaim, error) {
	projectType, err := valueobject.NewProjectType(row.ProjectType)
	if err != nil {
		return service.ExtractedClaim{}, fmt.Errorf("parse project type: %w", err)
	}
	return service.ExtractedClaim{
		ProjectType:    projectType,
		CapacityKW:     row.CapacityKW,
		Vendor:         row.Vendor,
		Certifications: row.Certifications,
		ClaimedImpact: service.ClaimedImpact{
			CO2SavedTonnesPerYear:     row.CO2SavedTonnesPerYear,
			EnergyGeneratedKWhPerYear: row.EnergyGeneratedKWhPerYear,
		},
	}, nil
}

type greenScoreRow struct {
	GreenScore          int                   `json:"green_score"`
	SustainabilityClass string                `json:"sustainability_class"`
	Reasoning           []service.ReasonEntry `json:"reasoning"`
	Methodology         string                `json:"methodology"`
}

func toGreenScoreRow(result service.GreenScoreResult) greenScoreRow {
	return greenScoreRow{
		GreenScore:          result.GreenScore,
		SustainabilityClass: result.SustainabilityClass.String(),
		Reasoning:           result.Reasoning,
		Methodology:         result.Methodology,
	}
}

func fromGreenScoreRow(row greenScoreRow) (service.GreenScoreResult, error) {
	class, err := valueobject.NewSustainabilityClass(row.SustainabilityClass)
	if err != nil {
		return service.GreenScoreResult{}, fmt.Errorf("parse sustainability class: %w", err)
	}
	return service.GreenScoreResult{
		GreenScore:          row.GreenScore,
		SustainabilityClass: class,
		Reasoning:           row.Reasoning,
		Methodology:         row.Methodology,
	}, nil
}

type climateRiskRow struct {
	Type           string `json:"type"`
	Level          string `json:"level"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

type climateRow struct {
	Level string           `json:"level"`
	Risks []climateRiskRow `json:"risks,omitempty"`
	Notes string           `json:"notes,omitempty"`
}

func toClimateRow(result service.ClimateRiskResult) climateRow {
	risks := make([]climateRiskRow, 0, len(result.Risks))
	for _, r := range result.Risks {
		risks = append(risks, climateRiskRow{
			Type:           r.Type,
			Level:          r.Level.String(),
			Description:    r.Description,
			Recommendation: r.Recommendation,
		})
	}
	return climateRow{Level: result.Level.String(), Risks: risks, Notes: result.Notes}
}

func fromClimateRow(row climateRow) (service.ClimateRiskResult, error) {
	level, err := valueobject.NewRiskLevel(row.Level)
	if err != nil {
		return service.ClimateRiskResult{}, fmt.Errorf("parse risk level: %w", err)
	}
	risks := make([]service.ClimateRisk, 0, len(row.Risks))
	for _, r := range row.Risks {
		riskLevel, err := valueobject.NewRiskLevel(r.Level)
		if err != nil {
			return service.ClimateRiskResult{}, fmt.Errorf("parse risk level: %w", err)
		}
		risks = append(risks, service.ClimateRisk{
			Type:           r.Type,
			Level:          riskLevel,
			Description:    r.Description,
			Recommendation: r.Recommendation,
		})
	}
	if len(risks) == 0 {
		risks = nil
	}
	return service.ClimateRiskResult{Level: level, Risks: risks, Notes: row.Notes}, nil
}
