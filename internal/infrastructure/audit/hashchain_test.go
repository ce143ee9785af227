package audit

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consolevik/TerraLend/internal/domain/port"
	"github.com/consolevik/TerraLend/pkg/testutil"
)

func testEntry(eventType string) port.AuditEntry {
	return port.AuditEntry{
		EventType:   eventType,
		LoanID:      testutil.TestLoanID,
		TenantID:    testutil.TestTenantID,
		Description: "verification approved with green score 95",
		Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestHashChainLog(t *testing.T) {
	t.Run("appends and verifies a chain", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "audit.log")
		log, err := NewHashChainLog(path)
		require.NoError(t, err)

		ctx := context.Background()
		require.NoError(t, log.Append(ctx, testEntry("verification.approved")))
		require.NoError(t, log.Append(ctx, testEntry("verification.rejected")))
		require.NoError(t, log.Append(ctx, testEntry("verification.approved")))

		assert.NoError(t, log.Verify())
	})

	t.Run("restores the chain head across reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "audit.log")
		ctx := context.Background()

		first, err := NewHashChainLog(path)
		require.NoError(t, err)
		require.NoError(t, first.Append(ctx, testEntry("verification.approved")))

		second, err := NewHashChainLog(path)
		require.NoError(t, err)
		require.NoError(t, second.Append(ctx, testEntry("verification.rejected")))

		assert.NoError(t, second.Verify())
	})

	t.Run("detects tampering", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "audit.log")
		log, err := NewHashChainLog(path)
		require.NoError(t, err)

		ctx := context.Background()
		require.NoError(t, log.Append(ctx, testEntry("verification.approved")))
		require.NoError(t, log.Append(ctx, testEntry("verification.rejected")))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		tampered := []byte(string(raw[:20]) + "X" + string(raw[21:]))
		require.NoError(t, os.WriteFile(path, tampered, 0o640))

		assert.Error(t, log.Verify())
	})

	t.Run("empty log verifies clean", func(t *testing.T) {
		log, err := NewHashChainLog(filepath.Join(t.TempDir(), "audit.log"))
		require.NoError(t, err)

		assert.NoError(t, log.Verify())
	})
}
