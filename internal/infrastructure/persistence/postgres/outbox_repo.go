package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/consolevik/TerraLend/pkg/events"
	pkgpostgres "github.com/consolevik/TerraLend/pkg/postgres"
)

// OutboxRepo implements events.OutboxRepository on top of the event_outbox
// table. Entries are inserted atomically per batch and picked up by the
// relay worker.
type OutboxRepo struct {
	pool *pgxpool.Pool
}

// NewOutboxRepo creates a new repository backed by PostgreSQL.
func NewOutboxRepo(pool *pgxpool.Pool) *OutboxRepo {
	return &OutboxRepo{pool: pool}
}

// Store inserts all entries within a single transaction.
func (r *OutboxRepo) Store(ctx context.Context, entries []events.OutboxEntry) error {
	if len(entries) == 0 {
		return nil
	}

	const query = `
		INSERT INTO event_outbox (id, aggregate_id, aggregate_type, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for _, e := range entries {
			if _, err := tx.Exec(ctx, query,
				e.ID, e.AggregateID, e.AggregateType, e.EventType, e.Payload, e.CreatedAt,
			); err != nil {
				return fmt.Errorf("store outbox entry %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

// FetchUnpublished returns up to batchSize entries that have not been
// relayed yet, oldest first.
func (r *OutboxRepo) FetchUnpublished(ctx context.Context, batchSize int) ([]events.OutboxEntry, error) {
	const query = `
		SELECT id, aggregate_id, aggregate_type, event_type, payload, created_at, published_at
		FROM event_outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, batchSize)
	if err != nil {
		return nil, fmt.Errorf("fetch unpublished outbox entries: %w", err)
	}
	defer rows.Close()

	var entries []events.OutboxEntry
	for rows.Next() {
		var e events.OutboxEntry
		if err := rows.Scan(
			&e.ID, &e.AggregateID, &e.AggregateType, &e.EventType, &e.Payload, &e.CreatedAt, &e.PublishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox entries: %w", err)
	}
	return entries, nil
}

// MarkPublished stamps the given entries as relayed.
func (r *OutboxRepo) MarkPublished(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	const query = `UPDATE event_outbox SET published_at = $1 WHERE id = ANY($2)`

	if _, err := r.pool.Exec(ctx, query, time.Now().UTC(), ids); err != nil {
		return fmt.Errorf("mark outbox entries published: %w", err)
	}
	return nil
}
