//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consolevik/TerraLend/internal/domain/event"
	infraKafka "github.com/consolevik/TerraLend/internal/infrastructure/kafka"
	pkgkafka "github.com/consolevik/TerraLend/pkg/kafka"
	"github.com/consolevik/TerraLend/pkg/observability"
	"github.com/consolevik/TerraLend/pkg/testutil"
)

func TestKafkaEventPublisher_Roundtrip(t *testing.T) {
	ctx := context.Background()
	kc := testutil.NewKafkaContainer(ctx, t)
	t.Cleanup(func() { kc.Cleanup(t) })

	logger := observability.InitLogger(observability.LogConfig{Level: "error", Format: "text"})
	topic := "terralend.lending.events"

	producer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: kc.Brokers})
	t.Cleanup(func() { _ = producer.Close() })

	publisher := infraKafka.NewKafkaEventPublisher(producer, topic, logger)

	evt := event.NewGreenLoanSubmitted(
		testutil.TestLoanID, testutil.TestTenantID, testutil.TestBorrowerID1,
		"solar", decimal.NewFromInt(2000000), "Jodhpur, Rajasthan", time.Now().UTC(),
	)
	require.NoError(t, publisher.Publish(ctx, evt))

	received := make(chan pkgkafka.Message, 1)
	consumer := pkgkafka.NewConsumer(pkgkafka.Config{
		Brokers:       kc.Brokers,
		ConsumerGroup: "integration-test",
	}, topic, func(_ context.Context, msg pkgkafka.Message) error {
		received <- msg
		return nil
	}, logger)
	t.Cleanup(func() { _ = consumer.Close() })

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = consumer.Start(consumeCtx) }()

	select {
	case msg := <-received:
		assert.Equal(t, []byte(testutil.TestLoanID), msg.Key)
		assert.Equal(t, "lending.green_loan.submitted", msg.Headers["event_type"])
		assert.Equal(t, testutil.TestTenantID, msg.Headers["tenant_id"])
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}
