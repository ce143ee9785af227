package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consolevik/TerraLend/internal/application/dto"
	"github.com/consolevik/TerraLend/internal/application/usecase"
	"github.com/consolevik/TerraLend/internal/domain/event"
	"github.com/consolevik/TerraLend/internal/domain/model"
	"github.com/consolevik/TerraLend/internal/domain/port"
	"github.com/consolevik/TerraLend/internal/domain/service"
	"github.com/consolevik/TerraLend/pkg/testutil"
)

// --- Mock implementations ---

type mockGreenLoanRepository struct {
	saveFunc     func(ctx context.Context, loan model.GreenLoan) error
	findByIDFunc func(ctx context.Context, tenantID, id string) (model.GreenLoan, error)
	savedLoans   []model.GreenLoan
}

func (m *mockGreenLoanRepository) Save(ctx context.Context, loan model.GreenLoan) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, loan)
	}
	m.savedLoans = append(m.savedLoans, loan)
	return nil
}

func (m *mockGreenLoanRepository) FindByID(ctx context.Context, tenantID, id string) (model.GreenLoan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, id)
	}
	return model.GreenLoan{}, port.ErrNotFound
}

func (m *mockGreenLoanRepository) FindByBorrowerID(_ context.Context, _, _ string) ([]model.GreenLoan, error) {
	return nil, nil
}

type mockVerificationRepository struct {
	saveFunc         func(ctx context.Context, record model.VerificationRecord) error
	findByLoanIDFunc func(ctx context.Context, tenantID, loanID string) (model.VerificationRecord, error)
	savedRecords     []model.VerificationRecord
}

func (m *mockVerificationRepository) Save(ctx context.Context, record model.VerificationRecord) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, record)
	}
	m.savedRecords = append(m.savedRecords, record)
	return nil
}

func (m *mockVerificationRepository) FindByLoanID(ctx context.Context, tenantID, loanID string) (model.VerificationRecord, error) {
	if m.findByLoanIDFunc != nil {
		return m.findByLoanIDFunc(ctx, tenantID, loanID)
	}
	return model.VerificationRecord{}, port.ErrNotFound
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockAuditLog struct {
	appendFunc func(ctx context.Context, entry port.AuditEntry) error
	entries    []port.AuditEntry
}

func (m *mockAuditLog) Append(ctx context.Context, entry port.AuditEntry) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, entry)
	}
	m.entries = append(m.entries, entry)
	return nil
}

// --- Fixtures ---

func strongSolarLoan(t *testing.T) model.GreenLoan {
	t.Helper()
	loan, err := model.NewGreenLoan(
		testutil.TestTenantID, testutil.TestBorrowerID1,
		"Sunrise Textiles", testutil.TestSolarDescription, "solar",
		decimal.NewFromInt(2_000_000), decimal.NewFromInt(6_000_000), decimal.NewFromInt(3_500_000),
		5, "Jodhpur, Rajasthan", nil, time.Now().UTC(),
	)
	require.NoError(t, err)
	return loan.ClearEvents()
}

func vagueLoan(t *testing.T) model.GreenLoan {
	t.Helper()
	loan, err := model.NewGreenLoan(
		testutil.TestTenantID, testutil.TestBorrowerID2,
		"Acme Traders", testutil.TestVagueDescription, "general business improvement",
		decimal.NewFromInt(1_000_000), decimal.NewFromInt(500_000), decimal.Zero,
		0, "somewhere nice", nil, time.Now().UTC(),
	)
	require.NoError(t, err)
	return loan.ClearEvents()
}

func newVerifyUseCase(
	loanRepo *mockGreenLoanRepository,
	verificationRepo *mockVerificationRepository,
	publisher *mockEventPublisher,
	auditLog *mockAuditLog,
	greenwashing *service.GreenwashingChecker,
) *usecase.VerifyLoanUseCase {
	return usecase.NewVerifyLoanUseCase(
		loanRepo, verificationRepo, publisher, auditLog,
		service.NewClaimExtractor(),
		service.NewConfidenceScorer(),
		service.NewGreenScoreEngine(),
		greenwashing,
	)
}

// --- Tests ---

func TestVerifyLoan_Execute(t *testing.T) {
	t.Run("approves a strong solar application", func(t *testing.T) {
		loan := strongSolarLoan(t)
		loanRepo := &mockGreenLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.GreenLoan, error) {
				return loan, nil
			},
		}
		verificationRepo := &mockVerificationRepository{}
		publisher := &mockEventPublisher{}
		auditLog := &mockAuditLog{}

		uc := newVerifyUseCase(loanRepo, verificationRepo, publisher, auditLog, service.NewGreenwashingChecker())

		resp, err := uc.Execute(context.Background(), dto.VerifyLoanRequest{
			TenantID: loan.TenantID(), LoanID: loan.ID(),
		})

		require.NoError(t, err)
		assert.Equal(t, "approved", resp.FinalStatus)
		assert.Equal(t, 95, resp.GreenScore)
		assert.Equal(t, "high", resp.SustainabilityClass)
		assert.Empty(t, resp.RejectionReason)
		assert.Equal(t, "solar", resp.Claim.ProjectType)
		assert.Equal(t, 1.0, resp.Confidence)
		assert.True(t, resp.Greenwashing.Passed)
		assert.Len(t, resp.Reasoning, 4)

		require.Len(t, verificationRepo.savedRecords, 1)
		require.Len(t, auditLog.entries, 1)
		assert.Equal(t, "verification.approved", auditLog.entries[0].EventType)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("rejects a low scoring application with score and threshold", func(t *testing.T) {
		loan := vagueLoan(t)
		loanRepo := &mockGreenLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.GreenLoan, error) {
				return loan, nil
			},
		}
		verificationRepo := &mockVerificationRepository{}
		publisher := &mockEventPublisher{}
		auditLog := &mockAuditLog{}

		uc := newVerifyUseCase(loanRepo, verificationRepo, publisher, auditLog, service.NewGreenwashingChecker())

		resp, err := uc.Execute(context.Background(), dto.VerifyLoanRequest{
			TenantID: loan.TenantID(), LoanID: loan.ID(),
		})

		require.NoError(t, err)
		assert.Equal(t, "rejected", resp.FinalStatus)
		assert.Equal(t, 30, resp.GreenScore)
		assert.Equal(t, "low", resp.SustainabilityClass)
		assert.Contains(t, resp.RejectionReason, "30")
		assert.Contains(t, resp.RejectionReason, "50")

		require.Len(t, auditLog.entries, 1)
		assert.Equal(t, "verification.rejected", auditLog.entries[0].EventType)
	})

	t.Run("greenwashing failure rejects regardless of score", func(t *testing.T) {
		loan := strongSolarLoan(t)
		loanRepo := &mockGreenLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.GreenLoan, error) {
				return loan, nil
			},
		}
		verificationRepo := &mockVerificationRepository{}
		publisher := &mockEventPublisher{}
		auditLog := &mockAuditLog{}

		failing := service.NewGreenwashingCheckerWithChecks([]service.CrossCheck{
			{Source: "vendor_registry", Status: "unverified", Confidence: 40},
		})
		uc := newVerifyUseCase(loanRepo, verificationRepo, publisher, auditLog, failing)

		resp, err := uc.Execute(context.Background(), dto.VerifyLoanRequest{
			TenantID: loan.TenantID(), LoanID: loan.ID(),
		})

		require.NoError(t, err)
		assert.Equal(t, "rejected", resp.FinalStatus)
		assert.Equal(t, 95, resp.GreenScore)
		assert.Contains(t, resp.RejectionReason, "could not be verified")
	})

	t.Run("re-verification replaces the stored outcome", func(t *testing.T) {
		loan := strongSolarLoan(t)
		loanRepo := &mockGreenLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.GreenLoan, error) {
				return loan, nil
			},
		}
		verificationRepo := &mockVerificationRepository{}
		publisher := &mockEventPublisher{}
		auditLog := &mockAuditLog{}

		uc := newVerifyUseCase(loanRepo, verificationRepo, publisher, auditLog, service.NewGreenwashingChecker())

		req := dto.VerifyLoanRequest{TenantID: loan.TenantID(), LoanID: loan.ID()}
		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		_, err = uc.Execute(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, verificationRepo.savedRecords, 2)
		assert.Equal(t, verificationRepo.savedRecords[0].LoanID(), verificationRepo.savedRecords[1].LoanID())
		assert.Len(t, auditLog.entries, 2)
	})

	t.Run("fails when the loan does not exist", func(t *testing.T) {
		uc := newVerifyUseCase(
			&mockGreenLoanRepository{}, &mockVerificationRepository{},
			&mockEventPublisher{}, &mockAuditLog{}, service.NewGreenwashingChecker(),
		)

		_, err := uc.Execute(context.Background(), dto.VerifyLoanRequest{
			TenantID: testutil.TestTenantID, LoanID: testutil.TestLoanID,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, port.ErrNotFound)
	})

	t.Run("fails when the record save fails", func(t *testing.T) {
		loan := strongSolarLoan(t)
		loanRepo := &mockGreenLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.GreenLoan, error) {
				return loan, nil
			},
		}
		verificationRepo := &mockVerificationRepository{
			saveFunc: func(_ context.Context, _ model.VerificationRecord) error {
				return fmt.Errorf("database unavailable")
			},
		}

		uc := newVerifyUseCase(loanRepo, verificationRepo, &mockEventPublisher{}, &mockAuditLog{}, service.NewGreenwashingChecker())

		_, err := uc.Execute(context.Background(), dto.VerifyLoanRequest{
			TenantID: loan.TenantID(), LoanID: loan.ID(),
		})

		testutil.AssertErrorContains(t, err, "save verification record")
	})

	t.Run("fails when the audit append fails", func(t *testing.T) {
		loan := strongSolarLoan(t)
		loanRepo := &mockGreenLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.GreenLoan, error) {
				return loan, nil
			},
		}
		auditLog := &mockAuditLog{
			appendFunc: func(_ context.Context, _ port.AuditEntry) error {
				return fmt.Errorf("ledger unavailable")
			},
		}

		uc := newVerifyUseCase(loanRepo, &mockVerificationRepository{}, &mockEventPublisher{}, auditLog, service.NewGreenwashingChecker())

		_, err := uc.Execute(context.Background(), dto.VerifyLoanRequest{
			TenantID: loan.TenantID(), LoanID: loan.ID(),
		})

		testutil.AssertErrorContains(t, err, "append audit entry")
	})

	t.Run("fails when event publishing fails", func(t *testing.T) {
		loan := strongSolarLoan(t)
		loanRepo := &mockGreenLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.GreenLoan, error) {
				return loan, nil
			},
		}
		publisher := &mockEventPublisher{
			publishFunc: func(_ context.Context, _ ...event.DomainEvent) error {
				return fmt.Errorf("kafka unavailable")
			},
		}

		uc := newVerifyUseCase(loanRepo, &mockVerificationRepository{}, publisher, &mockAuditLog{}, service.NewGreenwashingChecker())

		_, err := uc.Execute(context.Background(), dto.VerifyLoanRequest{
			TenantID: loan.TenantID(), LoanID: loan.ID(),
		})

		testutil.AssertErrorContains(t, err, "publish events")
	})
}
