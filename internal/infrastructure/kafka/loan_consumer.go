package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/consolevik/TerraLend/internal/application/dto"
	"github.com/consolevik/TerraLend/internal/application/usecase"
	pkgkafka "github.com/consolevik/TerraLend/pkg/kafka"
)

const submittedEventType = "lending.green_loan.submitted"

// LoanEventConsumer listens on the lending events topic and runs the
// verification pipeline for every freshly submitted green loan, so loans
// are verified without an explicit VerifyLoan call.
type LoanEventConsumer struct {
	consumer *pkgkafka.Consumer
	logger   *slog.Logger
}

// NewLoanEventConsumer creates a consumer bound to the given topic and group.
func NewLoanEventConsumer(
	cfg pkgkafka.Config,
	topic string,
	verifyUC *usecase.VerifyLoanUseCase,
	logger *slog.Logger,
) *LoanEventConsumer {
	c := &LoanEventConsumer{logger: logger}
	c.consumer = pkgkafka.NewConsumer(cfg, topic, c.handlerFor(verifyUC), logger)
	return c
}

// handlerFor builds the message handler. Events other than loan submissions,
// including the verification events this service publishes itself, are
// acknowledged without action.
func (c *LoanEventConsumer) handlerFor(verifyUC *usecase.VerifyLoanUseCase) pkgkafka.Handler {
	return func(ctx context.Context, msg pkgkafka.Message) error {
		if msg.Headers["event_type"] != submittedEventType {
			return nil
		}

		loanID := string(msg.Key)
		tenantID := msg.Headers["tenant_id"]
		if loanID == "" || tenantID == "" {
			c.logger.WarnContext(ctx, "submitted event missing loan or tenant id, skipping",
				"event_id", msg.Headers["event_id"],
			)
			return nil
		}

		resp, err := verifyUC.Execute(ctx, dto.VerifyLoanRequest{
			TenantID: tenantID,
			LoanID:   loanID,
		})
		if err != nil {
			return fmt.Errorf("auto-verify loan %s: %w", loanID, err)
		}

		c.logger.InfoContext(ctx, "loan auto-verified",
			"loan_id", loanID,
			"tenant_id", tenantID,
			"status", resp.FinalStatus,
		)
		return nil
	}
}

// Start blocks consuming messages until the context is canceled.
func (c *LoanEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx)
}

// Close closes the underlying reader.
func (c *LoanEventConsumer) Close() error {
	return c.consumer.Close()
}
