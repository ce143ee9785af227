package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()
	evt := NewBaseEvent("lending.green_loan.submitted", "loan-001", "GreenLoan", "tenant-001")
	after := time.Now().UTC()

	assert.NotEmpty(t, evt.EventID())
	assert.Equal(t, "lending.green_loan.submitted", evt.EventType())
	assert.Equal(t, "loan-001", evt.AggregateID())
	assert.Equal(t, "GreenLoan", evt.AggregateType())
	assert.Equal(t, "tenant-001", evt.TenantID())
	assert.False(t, evt.OccurredAt().Before(before))
	assert.False(t, evt.OccurredAt().After(after))
}

func TestBaseEvent_UniqueIDs(t *testing.T) {
	a := NewBaseEvent("x", "agg", "Agg", "t")
	b := NewBaseEvent("x", "agg", "Agg", "t")
	assert.NotEqual(t, a.EventID(), b.EventID())
}

func TestNewOutboxEntry(t *testing.T) {
	type submitted struct {
		BaseEvent
		Amount string `json:"amount"`
	}

	evt := submitted{
		BaseEvent: NewBaseEvent("lending.green_loan.submitted", "loan-002", "GreenLoan", "tenant-001"),
		Amount:    "150000",
	}

	entry := NewOutboxEntry(evt)

	assert.Equal(t, evt.EventID(), entry.ID)
	assert.Equal(t, "loan-002", entry.AggregateID)
	assert.Equal(t, "GreenLoan", entry.AggregateType)
	assert.Equal(t, "lending.green_loan.submitted", entry.EventType)
	assert.Nil(t, entry.PublishedAt)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(entry.Payload, &decoded))
	assert.Equal(t, "150000", decoded["amount"])
	assert.Equal(t, "loan-002", decoded["aggregate_id"])
}
