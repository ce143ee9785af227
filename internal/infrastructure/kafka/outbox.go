package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/consolevik/TerraLend/internal/domain/event"
	"github.com/consolevik/TerraLend/pkg/events"
	pkgkafka "github.com/consolevik/TerraLend/pkg/kafka"
)

// OutboxEventPublisher implements port.EventPublisher by persisting events to
// the outbox table instead of writing to Kafka directly. The relay worker
// delivers them afterwards, so event storage shares the fate of the
// surrounding request.
type OutboxEventPublisher struct {
	repo events.OutboxRepository
}

// NewOutboxEventPublisher creates a publisher backed by the given outbox store.
func NewOutboxEventPublisher(repo events.OutboxRepository) *OutboxEventPublisher {
	return &OutboxEventPublisher{repo: repo}
}

// Publish converts domain events to outbox entries and stores them.
func (p *OutboxEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}
	entries := make([]events.OutboxEntry, 0, len(evts))
	for _, evt := range evts {
		entries = append(entries, events.NewOutboxEntry(evt))
	}
	if err := p.repo.Store(ctx, entries); err != nil {
		return fmt.Errorf("store events in outbox: %w", err)
	}
	return nil
}

// messageWriter is the producer surface the relay needs.
type messageWriter interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// OutboxRelay periodically drains unpublished outbox entries to Kafka.
type OutboxRelay struct {
	repo      events.OutboxRepository
	writer    messageWriter
	topic     string
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

// NewOutboxRelay creates a relay polling the outbox every interval.
func NewOutboxRelay(
	repo events.OutboxRepository,
	writer messageWriter,
	topic string,
	interval time.Duration,
	logger *slog.Logger,
) *OutboxRelay {
	return &OutboxRelay{
		repo:      repo,
		writer:    writer,
		topic:     topic,
		interval:  interval,
		batchSize: 100,
		logger:    logger,
	}
}

// Run polls until the context is canceled. Drain failures are logged and
// retried on the next tick.
func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("outbox relay starting", "topic", r.topic, "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopping")
			return
		case <-ticker.C:
			if err := r.drain(ctx); err != nil {
				r.logger.ErrorContext(ctx, "outbox drain failed", "error", err)
			}
		}
	}
}

// drain publishes one batch of unpublished entries and marks them delivered.
func (r *OutboxRelay) drain(ctx context.Context) error {
	entries, err := r.repo.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		return fmt.Errorf("fetch unpublished: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		messages = append(messages, pkgkafka.Message{
			Key:   []byte(e.AggregateID),
			Value: e.Payload,
			Headers: map[string]string{
				"event_type": e.EventType,
				"event_id":   e.ID,
				"tenant_id":  tenantIDFromPayload(e.Payload),
			},
		})
		ids = append(ids, e.ID)
	}

	if err := r.writer.Publish(ctx, r.topic, messages...); err != nil {
		return fmt.Errorf("relay to topic %s: %w", r.topic, err)
	}
	if err := r.repo.MarkPublished(ctx, ids); err != nil {
		return fmt.Errorf("mark published: %w", err)
	}

	r.logger.DebugContext(ctx, "outbox batch relayed", "count", len(ids), "topic", r.topic)
	return nil
}

func tenantIDFromPayload(payload []byte) string {
	var envelope struct {
		TenantID string `json:"tenant_id"`
	}
	_ = json.Unmarshal(payload, &envelope) //nolint:errcheck // header is best-effort
	return envelope.TenantID
}
