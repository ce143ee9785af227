package port

import (
	"context"
	"errors"
	"time"

	"github.com/consolevik/TerraLend/internal/domain/event"
	"github.com/consolevik/TerraLend/internal/domain/model"
	"github.com/consolevik/TerraLend/internal/domain/service"
)

// ErrNotFound is returned by repositories when no row matches the lookup.
var ErrNotFound = errors.New("not found")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// GreenLoanRepository persists and retrieves green loan applications.
type GreenLoanRepository interface {
	Save(ctx context.Context, loan model.GreenLoan) error
	FindByID(ctx context.Context, tenantID, id string) (model.GreenLoan, error)
	FindByBorrowerID(ctx context.Context, tenantID, borrowerID string) ([]model.GreenLoan, error)
}

// VerificationRepository persists verification records, one per loan. Saving
// a record for a loan that already has one replaces it.
type VerificationRepository interface {
	Save(ctx context.Context, record model.VerificationRecord) error
	FindByLoanID(ctx context.Context, tenantID, loanID string) (model.VerificationRecord, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Audit log port
// ---------------------------------------------------------------------------

// AuditEntry is one append-only line in the verification audit trail.
type AuditEntry struct {
	EventType   string    `json:"event_type"`
	LoanID      string    `json:"loan_id"`
	TenantID    string    `json:"tenant_id"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// AuditLog records verification decisions in an append-only, tamper-evident
// trail.
type AuditLog interface {
	Append(ctx context.Context, entry AuditEntry) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// GeocodingClient resolves a free-text location to coordinates. A nil result
// with a nil error means the location could not be geocoded.
type GeocodingClient interface {
	Geocode(ctx context.Context, location string) (*service.Coordinates, error)
}
