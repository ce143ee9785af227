package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/consolevik/TerraLend/internal/domain/model"
	"github.com/consolevik/TerraLend/internal/domain/port"
	"github.com/consolevik/TerraLend/internal/domain/service"
	"github.com/consolevik/TerraLend/internal/domain/valueobject"
	pkgpostgres "github.com/consolevik/TerraLend/pkg/postgres"
)

// GreenLoanRepo implements port.GreenLoanRepository.
type GreenLoanRepo struct {
	db pkgpostgres.Querier
}

// NewGreenLoanRepo creates a new repository backed by PostgreSQL.
func NewGreenLoanRepo(db pkgpostgres.Querier) *GreenLoanRepo {
	return &GreenLoanRepo{db: db}
}

// Save persists a green loan (upsert by ID with optimistic locking).
func (r *GreenLoanRepo) Save(ctx context.Context, loan model.GreenLoan) error {
	query := `
		INSERT INTO green_loans (
			id, tenant_id, borrower_id, business_name, description,
			green_objective, loan_amount, annual_turnover, years_in_business,
			estimated_savings, project_location, latitude, longitude,
			status, green_score, sustainability_class, rejection_reason,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		ON CONFLICT (id) DO UPDATE SET
			status               = EXCLUDED.status,
			green_score          = EXCLUDED.green_score,
			sustainability_class = EXCLUDED.sustainability_class,
			rejection_reason     = EXCLUDED.rejection_reason,
			version              = green_loans.version + 1,
			updated_at           = EXCLUDED.updated_at
		WHERE green_loans.version = $18
	`
	var lat, lng *float64
	if c := loan.Coordinates(); c != nil {
		lat, lng = &c.Lat, &c.Lng
	}

	tag, err := r.db.Exec(ctx, query,
		loan.ID(), loan.TenantID(), loan.BorrowerID(), loan.BusinessName(), loan.Description(),
		loan.GreenObjective(), loan.LoanAmount(), loan.AnnualTurnover(), loan.YearsInBusiness(),
		loan.EstimatedSavings(), loan.ProjectLocation(), lat, lng,
		loan.Status().String(), loan.GreenScore(), loan.SustainabilityClass().String(), loan.RejectionReason(),
		loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save green loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on green loan")
	}
	return nil
}

// FindByID retrieves a single green loan.
func (r *GreenLoanRepo) FindByID(ctx context.Context, tenantID, id string) (model.GreenLoan, error) {
	query := `
		SELECT id, tenant_id, borrower_id, business_name, description,
		       green_objective, loan_amount, annual_turnover, years_in_business,
		       estimated_savings, project_location, latitude, longitude,
		       status, green_score, sustainability_class, rejection_reason,
		       version, created_at, updated_at
		FROM green_loans
		WHERE tenant_id = $1 AND id = $2
	`
	row := r.db.QueryRow(ctx, query, tenantID, id)
	loan, err := scanGreenLoan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.GreenLoan{}, port.ErrNotFound
	}
	return loan, err
}

// FindByBorrowerID retrieves all loans for a given borrower.
func (r *GreenLoanRepo) FindByBorrowerID(ctx context.Context, tenantID, borrowerID string) ([]model.GreenLoan, error) {
	query := `
		SELECT id, tenant_id, borrower_id, business_name, description,
		       green_objective, loan_amount, annual_turnover, years_in_business,
		       estimated_savings, project_location, latitude, longitude,
		       status, green_score, sustainability_class, rejection_reason,
		       version, created_at, updated_at
		FROM green_loans
		WHERE tenant_id = $1 AND borrower_id = $2
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("query green loans: %w", err)
	}
	defer rows.Close()

	var result []model.GreenLoan
	for rows.Next() {
		loan, err := scanGreenLoan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, loan)
	}
	return result, rows.Err()
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func scanGreenLoan(s scannable) (model.GreenLoan, error) {
	var (
		id, tenantID, borrowerID           string
		businessName, description          string
		greenObjective                     string
		loanAmount, turnover, savings      decimal.Decimal
		yearsInBusiness                    int
		projectLocation                    string
		lat, lng                           *float64
		statusStr, classStr                string
		greenScore                         int
		rejectionReason                    string
		version                            int
		createdAt, updatedAt               time.Time
	)

	err := s.Scan(
		&id, &tenantID, &borrowerID, &businessName, &description,
		&greenObjective, &loanAmount, &turnover, &yearsInBusiness,
		&savings, &projectLocation, &lat, &lng,
		&statusStr, &greenScore, &classStr, &rejectionReason,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.GreenLoan{}, fmt.Errorf("scan green loan: %w", err)
	}

	status, err := valueobject.NewVerificationStatus(statusStr)
	if err != nil {
		return model.GreenLoan{}, fmt.Errorf("parse status: %w", err)
	}

	var class valueobject.SustainabilityClass
	if classStr != "" {
		class, err = valueobject.NewSustainabilityClass(classStr)
		if err != nil {
			return model.GreenLoan{}, fmt.Errorf("parse sustainability class: %w", err)
		}
	}

	var coords *service.Coordinates
	if lat != nil && lng != nil {
		coords = &service.Coordinates{Lat: *lat, Lng: *lng}
	}

	return model.ReconstructGreenLoan(
		id, tenantID, borrowerID, businessName, description, greenObjective,
		loanAmount, turnover, savings, yearsInBusiness,
		projectLocation, coords,
		status, greenScore, class, rejectionReason,
		version, createdAt, updatedAt,
	), nil
}
