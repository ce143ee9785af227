package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreenwashingChecker_Run(t *testing.T) {
	t.Run("default source set passes", func(t *testing.T) {
		result := NewGreenwashingChecker().Run()

		assert.True(t, result.Passed)
		assert.Equal(t, 86.5, result.ConfidenceScore)
		require.Len(t, result.Checks, 4)
		assert.Empty(t, result.Flags)
	})

	t.Run("one unverified check fails the pass", func(t *testing.T) {
		checker := &GreenwashingChecker{checks: []CrossCheck{
			{Source: "vendor_registry", Status: checkStatusVerified, Confidence: 95},
			{Source: "impact_benchmark", Status: checkStatusUnverified, Confidence: 95},
		}}

		result := checker.Run()

		assert.False(t, result.Passed)
		require.Len(t, result.Flags, 1)
		assert.Contains(t, result.Flags[0], "impact_benchmark")
	})

	t.Run("verified checks below the threshold fail the pass", func(t *testing.T) {
		checker := &GreenwashingChecker{checks: []CrossCheck{
			{Source: "vendor_registry", Status: checkStatusVerified, Confidence: 70},
			{Source: "impact_benchmark", Status: checkStatusVerified, Confidence: 75},
		}}

		result := checker.Run()

		assert.False(t, result.Passed)
		assert.Equal(t, 72.5, result.ConfidenceScore)
		assert.Empty(t, result.Flags)
	})

	t.Run("mean exactly at the threshold passes", func(t *testing.T) {
		checker := &GreenwashingChecker{checks: []CrossCheck{
			{Source: "vendor_registry", Status: checkStatusVerified, Confidence: 80},
			{Source: "impact_benchmark", Status: checkStatusVerified, Confidence: 80},
		}}

		assert.True(t, checker.Run().Passed)
	})

	t.Run("result holds a copy of the check table", func(t *testing.T) {
		checker := NewGreenwashingChecker()
		result := checker.Run()
		result.Checks[0].Status = checkStatusUnverified

		assert.True(t, checker.Run().Passed)
	})
}
