package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consolevik/TerraLend/internal/domain/event"
	"github.com/consolevik/TerraLend/pkg/events"
	pkgkafka "github.com/consolevik/TerraLend/pkg/kafka"
	"github.com/consolevik/TerraLend/pkg/observability"
	"github.com/consolevik/TerraLend/pkg/testutil"
)

type mockOutboxRepository struct {
	stored    []events.OutboxEntry
	published []string

	storeFunc func(ctx context.Context, entries []events.OutboxEntry) error
	fetchFunc func(ctx context.Context, batchSize int) ([]events.OutboxEntry, error)
	markFunc  func(ctx context.Context, ids []string) error
}

func (m *mockOutboxRepository) Store(ctx context.Context, entries []events.OutboxEntry) error {
	if m.storeFunc != nil {
		return m.storeFunc(ctx, entries)
	}
	m.stored = append(m.stored, entries...)
	return nil
}

func (m *mockOutboxRepository) FetchUnpublished(ctx context.Context, batchSize int) ([]events.OutboxEntry, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, batchSize)
	}
	return nil, nil
}

func (m *mockOutboxRepository) MarkPublished(ctx context.Context, ids []string) error {
	if m.markFunc != nil {
		return m.markFunc(ctx, ids)
	}
	m.published = append(m.published, ids...)
	return nil
}

type mockMessageWriter struct {
	topics   []string
	messages []pkgkafka.Message

	publishFunc func(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

func (m *mockMessageWriter) Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, topic, messages...)
	}
	m.topics = append(m.topics, topic)
	m.messages = append(m.messages, messages...)
	return nil
}

func newRelay(repo events.OutboxRepository, writer messageWriter) *OutboxRelay {
	logger := observability.InitLogger(observability.LogConfig{Level: "error", Format: "text"})
	return NewOutboxRelay(repo, writer, "terralend.lending.events", time.Second, logger)
}

func TestOutboxEventPublisher_StoresEntries(t *testing.T) {
	repo := &mockOutboxRepository{}
	publisher := NewOutboxEventPublisher(repo)

	evt := event.NewGreenLoanSubmitted(
		testutil.TestLoanID, testutil.TestTenantID, testutil.TestBorrowerID1,
		"solar", decimal.NewFromInt(2000000), "Jodhpur, Rajasthan", time.Now().UTC(),
	)

	err := publisher.Publish(context.Background(), evt)
	require.NoError(t, err)
	require.Len(t, repo.stored, 1)

	entry := repo.stored[0]
	assert.Equal(t, evt.EventID(), entry.ID)
	assert.Equal(t, testutil.TestLoanID, entry.AggregateID)
	assert.Equal(t, "GreenLoan", entry.AggregateType)
	assert.Equal(t, "lending.green_loan.submitted", entry.EventType)
	assert.Nil(t, entry.PublishedAt)
}

func TestOutboxEventPublisher_StoreFailure(t *testing.T) {
	repo := &mockOutboxRepository{
		storeFunc: func(ctx context.Context, entries []events.OutboxEntry) error {
			return errors.New("connection refused")
		},
	}
	publisher := NewOutboxEventPublisher(repo)

	evt := event.NewGreenLoanSubmitted(
		testutil.TestLoanID, testutil.TestTenantID, testutil.TestBorrowerID1,
		"solar", decimal.NewFromInt(2000000), "Jodhpur, Rajasthan", time.Now().UTC(),
	)

	err := publisher.Publish(context.Background(), evt)
	assert.ErrorContains(t, err, "store events in outbox")
}

func TestOutboxRelay_DrainPublishesAndMarks(t *testing.T) {
	entry := events.NewOutboxEntry(event.NewGreenLoanSubmitted(
		testutil.TestLoanID, testutil.TestTenantID, testutil.TestBorrowerID1,
		"solar", decimal.NewFromInt(2000000), "Jodhpur, Rajasthan", time.Now().UTC(),
	))
	repo := &mockOutboxRepository{
		fetchFunc: func(ctx context.Context, batchSize int) ([]events.OutboxEntry, error) {
			return []events.OutboxEntry{entry}, nil
		},
	}
	writer := &mockMessageWriter{}
	relay := newRelay(repo, writer)

	err := relay.drain(context.Background())
	require.NoError(t, err)

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, []byte(testutil.TestLoanID), msg.Key)
	assert.Equal(t, "lending.green_loan.submitted", msg.Headers["event_type"])
	assert.Equal(t, testutil.TestTenantID, msg.Headers["tenant_id"])
	assert.Equal(t, []string{entry.ID}, repo.published)
}

func TestOutboxRelay_DrainEmptyIsNoop(t *testing.T) {
	repo := &mockOutboxRepository{}
	writer := &mockMessageWriter{}
	relay := newRelay(repo, writer)

	err := relay.drain(context.Background())
	require.NoError(t, err)
	assert.Empty(t, writer.messages)
	assert.Empty(t, repo.published)
}

func TestOutboxRelay_PublishFailureLeavesUnmarked(t *testing.T) {
	entry := events.NewOutboxEntry(event.NewGreenLoanSubmitted(
		testutil.TestLoanID, testutil.TestTenantID, testutil.TestBorrowerID1,
		"solar", decimal.NewFromInt(2000000), "Jodhpur, Rajasthan", time.Now().UTC(),
	))
	repo := &mockOutboxRepository{
		fetchFunc: func(ctx context.Context, batchSize int) ([]events.OutboxEntry, error) {
			return []events.OutboxEntry{entry}, nil
		},
	}
	writer := &mockMessageWriter{
		publishFunc: func(ctx context.Context, topic string, messages ...pkgkafka.Message) error {
			return errors.New("broker unavailable")
		},
	}
	relay := newRelay(repo, writer)

	err := relay.drain(context.Background())
	assert.ErrorContains(t, err, "relay to topic")
	assert.Empty(t, repo.published)
}
