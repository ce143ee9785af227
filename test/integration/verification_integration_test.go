//go:build integration

package integration

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consolevik/TerraLend/internal/domain/model"
	"github.com/consolevik/TerraLend/internal/domain/port"
	"github.com/consolevik/TerraLend/internal/domain/service"
	"github.com/consolevik/TerraLend/internal/domain/valueobject"
	"github.com/consolevik/TerraLend/internal/infrastructure/persistence/postgres"
	"github.com/consolevik/TerraLend/pkg/events"
	"github.com/consolevik/TerraLend/pkg/testutil"
)

func migrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "internal", "infrastructure", "persistence", "postgres", "migrations")
}

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pg := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { pg.Cleanup(t) })

	pg.RunMigrations(t, migrationsDir())

	return pg.Pool
}

func newTestLoan(t *testing.T, tenantID, borrowerID string) model.GreenLoan {
	t.Helper()

	loan, err := model.NewGreenLoan(
		tenantID, borrowerID,
		"Sunrise Textiles", testutil.TestSolarDescription, "solar",
		decimal.NewFromInt(2000000), decimal.NewFromInt(6000000), decimal.NewFromInt(3500000),
		5, "Jodhpur, Rajasthan", nil,
		time.Now().UTC(),
	)
	require.NoError(t, err)

	return loan.ClearEvents()
}

func TestGreenLoanRepository_SaveAndFind(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewGreenLoanRepo(pool)
	ctx := context.Background()

	tenantID := uuid.New().String()
	borrowerID := uuid.New().String()
	loan := newTestLoan(t, tenantID, borrowerID)

	require.NoError(t, repo.Save(ctx, loan))

	retrieved, err := repo.FindByID(ctx, tenantID, loan.ID())
	require.NoError(t, err)

	assert.Equal(t, loan.ID(), retrieved.ID())
	assert.Equal(t, tenantID, retrieved.TenantID())
	assert.Equal(t, borrowerID, retrieved.BorrowerID())
	assert.Equal(t, "Sunrise Textiles", retrieved.BusinessName())
	assert.Equal(t, "solar", retrieved.GreenObjective())
	assert.True(t, loan.LoanAmount().Equal(retrieved.LoanAmount()))
	assert.True(t, loan.AnnualTurnover().Equal(retrieved.AnnualTurnover()))
	assert.Equal(t, 5, retrieved.YearsInBusiness())
	assert.Equal(t, "Jodhpur, Rajasthan", retrieved.ProjectLocation())
	assert.Nil(t, retrieved.Coordinates())
	assert.Equal(t, valueobject.VerificationStatusPending, retrieved.Status())
	assert.Equal(t, 1, retrieved.Version())
}

func TestGreenLoanRepository_FindByID_WrongTenant(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewGreenLoanRepo(pool)
	ctx := context.Background()

	loan := newTestLoan(t, uuid.New().String(), uuid.New().String())
	require.NoError(t, repo.Save(ctx, loan))

	_, err := repo.FindByID(ctx, uuid.New().String(), loan.ID())
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestGreenLoanRepository_UpdateAndOptimisticLock(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewGreenLoanRepo(pool)
	ctx := context.Background()

	tenantID := uuid.New().String()
	loan := newTestLoan(t, tenantID, uuid.New().String())
	require.NoError(t, repo.Save(ctx, loan))

	// First update succeeds and bumps the stored version.
	approved := loan.ApproveVerification(95, valueobject.SustainabilityClassHigh, 1.0, time.Now().UTC()).ClearEvents()
	require.NoError(t, repo.Save(ctx, approved))

	retrieved, err := repo.FindByID(ctx, tenantID, loan.ID())
	require.NoError(t, err)
	assert.Equal(t, valueobject.VerificationStatusApproved, retrieved.Status())
	assert.Equal(t, 95, retrieved.GreenScore())
	assert.Equal(t, 2, retrieved.Version())

	// A second save from the stale copy must fail the version check.
	stale := loan.RejectVerification(30, valueobject.SustainabilityClassLow, "stale", time.Now().UTC()).ClearEvents()
	err = repo.Save(ctx, stale)
	assert.Error(t, err)
}

func TestGreenLoanRepository_FindByBorrowerID(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewGreenLoanRepo(pool)
	ctx := context.Background()

	tenantID := uuid.New().String()
	borrowerID := uuid.New().String()

	first := newTestLoan(t, tenantID, borrowerID)
	second := newTestLoan(t, tenantID, borrowerID)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	// A loan of another borrower must not show up.
	other := newTestLoan(t, tenantID, uuid.New().String())
	require.NoError(t, repo.Save(ctx, other))

	loans, err := repo.FindByBorrowerID(ctx, tenantID, borrowerID)
	require.NoError(t, err)
	assert.Len(t, loans, 2)
	for _, l := range loans {
		assert.Equal(t, borrowerID, l.BorrowerID())
	}
}

func newTestRecord(t *testing.T, tenantID, loanID string, status valueobject.VerificationStatus, reason string) model.VerificationRecord {
	t.Helper()

	extractor := service.NewClaimExtractor()
	scorer := service.NewConfidenceScorer()
	engine := service.NewGreenScoreEngine()
	checker := service.NewGreenwashingChecker()

	claim := extractor.Extract(testutil.TestSolarDescription)
	confidence := scorer.Score(claim)
	scoreResult := engine.Score(service.LoanAttributes{
		GreenObjective:   "solar",
		AnnualTurnover:   decimal.NewFromInt(6000000),
		YearsInBusiness:  5,
		EstimatedSavings: decimal.NewFromInt(3500000),
		LoanAmount:       decimal.NewFromInt(2000000),
		ProjectLocation:  "Jodhpur, Rajasthan",
	})
	climate := service.AssessClimateRisk("Jodhpur, Rajasthan")

	record, err := model.NewVerificationRecord(
		tenantID, loanID,
		claim, confidence, scoreResult, checker.Run(), climate,
		status, reason,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return record
}

func TestVerificationRepository_SaveAndReplace(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewVerificationRepo(pool)
	ctx := context.Background()

	tenantID := uuid.New().String()
	loanID := uuid.New().String()

	first := newTestRecord(t, tenantID, loanID, valueobject.VerificationStatusApproved, "")
	require.NoError(t, repo.Save(ctx, first))

	retrieved, err := repo.FindByLoanID(ctx, tenantID, loanID)
	require.NoError(t, err)
	assert.Equal(t, loanID, retrieved.LoanID())
	assert.Equal(t, valueobject.VerificationStatusApproved, retrieved.FinalStatus())
	assert.Equal(t, first.GreenScore().GreenScore, retrieved.GreenScore().GreenScore)
	assert.Equal(t, first.Claim().ProjectType, retrieved.Claim().ProjectType)
	assert.InDelta(t, first.Confidence().Score, retrieved.Confidence().Score, 0.001)
	assert.True(t, retrieved.Greenwashing().Passed)

	// Re-verification replaces the stored record for the same loan.
	second := newTestRecord(t, tenantID, loanID, valueobject.VerificationStatusRejected, "sustainability claims could not be verified against reference sources")
	require.NoError(t, repo.Save(ctx, second))

	replaced, err := repo.FindByLoanID(ctx, tenantID, loanID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.VerificationStatusRejected, replaced.FinalStatus())
	assert.NotEmpty(t, replaced.RejectionReason())
	assert.Equal(t, 2, replaced.Version())
}

func TestVerificationRepository_FindByLoanID_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewVerificationRepo(pool)
	ctx := context.Background()

	_, err := repo.FindByLoanID(ctx, uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestOutboxRepository_StoreFetchMark(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewOutboxRepo(pool)
	ctx := context.Background()

	loan, err := model.NewGreenLoan(
		uuid.New().String(), uuid.New().String(),
		"Acme Traders", testutil.TestVagueDescription, "general business improvement",
		decimal.NewFromInt(1000000), decimal.NewFromInt(500000), decimal.Zero,
		0, "somewhere nice", nil,
		time.Now().UTC(),
	)
	require.NoError(t, err)

	var entries []events.OutboxEntry
	for _, evt := range loan.DomainEvents() {
		entries = append(entries, events.NewOutboxEntry(evt))
	}
	require.NotEmpty(t, entries)

	require.NoError(t, repo.Store(ctx, entries))

	fetched, err := repo.FetchUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, fetched, len(entries))
	assert.Equal(t, "lending.green_loan.submitted", fetched[0].EventType)
	assert.Nil(t, fetched[0].PublishedAt)

	require.NoError(t, repo.MarkPublished(ctx, []string{fetched[0].ID}))

	remaining, err := repo.FetchUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, remaining, len(entries)-1)
}
