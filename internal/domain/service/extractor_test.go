package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consolevik/TerraLend/internal/domain/valueobject"
	"github.com/consolevik/TerraLend/pkg/testutil"
)

func TestClaimExtractor_Extract(t *testing.T) {
	extractor := NewClaimExtractor()

	t.Run("full solar description", func(t *testing.T) {
		claim := extractor.Extract(testutil.TestSolarDescription)

		assert.Equal(t, valueobject.ProjectTypeSolar, claim.ProjectType)
		require.NotNil(t, claim.CapacityKW)
		assert.InDelta(t, 50.0, *claim.CapacityKW, 0.001)
		assert.Equal(t, "Tata Power Solar", claim.Vendor)

		require.NotNil(t, claim.ClaimedImpact.EnergyGeneratedKWhPerYear)
		assert.InDelta(t, 75000.0, *claim.ClaimedImpact.EnergyGeneratedKWhPerYear, 0.001)
		require.NotNil(t, claim.ClaimedImpact.CO2SavedTonnesPerYear)
		assert.InDelta(t, 40.0, *claim.ClaimedImpact.CO2SavedTonnesPerYear, 0.001)
	})

	t.Run("vague description yields empty claim", func(t *testing.T) {
		claim := extractor.Extract(testutil.TestVagueDescription)

		assert.True(t, claim.ProjectType.IsUnknown())
		assert.Nil(t, claim.CapacityKW)
		assert.Empty(t, claim.Vendor)
		assert.Empty(t, claim.Certifications)
		assert.Nil(t, claim.ClaimedImpact.CO2SavedTonnesPerYear)
		assert.Nil(t, claim.ClaimedImpact.EnergyGeneratedKWhPerYear)
	})

	t.Run("empty text yields empty claim", func(t *testing.T) {
		claim := extractor.Extract("")

		assert.True(t, claim.ProjectType.IsUnknown())
		assert.Nil(t, claim.CapacityKW)
	})

	t.Run("project type rules are probed in order", func(t *testing.T) {
		// Mentions both solar and waste; solar rules run first.
		claim := extractor.Extract("solar powered waste compactor")
		assert.Equal(t, valueobject.ProjectTypeSolar, claim.ProjectType)
	})

	t.Run("capacity with decimal and spacing", func(t *testing.T) {
		claim := extractor.Extract("a 12.5 kW rooftop panel array")
		require.NotNil(t, claim.CapacityKW)
		assert.InDelta(t, 12.5, *claim.CapacityKW, 0.001)
	})

	t.Run("kilowatts spelled out", func(t *testing.T) {
		claim := extractor.Extract("system rated at 8 kilowatts")
		require.NotNil(t, claim.CapacityKW)
		assert.InDelta(t, 8.0, *claim.CapacityKW, 0.001)
	})

	t.Run("kWh does not match as capacity", func(t *testing.T) {
		claim := extractor.Extract("produces 120000 kWh every year")
		assert.Nil(t, claim.CapacityKW)
		require.NotNil(t, claim.ClaimedImpact.EnergyGeneratedKWhPerYear)
		assert.InDelta(t, 120000.0, *claim.ClaimedImpact.EnergyGeneratedKWhPerYear, 0.001)
	})

	t.Run("multiple certifications all collected", func(t *testing.T) {
		claim := extractor.Extract("ISO 14001 certified plant, LEED gold building, MNRE approved modules")
		assert.Equal(t, []string{"ISO 14001", "LEED", "MNRE approved"}, claim.Certifications)
	})

	t.Run("first vendor rule wins", func(t *testing.T) {
		claim := extractor.Extract("panels from Tata Power Solar with Exide batteries")
		assert.Equal(t, "Tata Power Solar", claim.Vendor)
	})

	t.Run("comma grouped impact figures", func(t *testing.T) {
		claim := extractor.Extract("will save 1,250 tonnes of CO2")
		require.NotNil(t, claim.ClaimedImpact.CO2SavedTonnesPerYear)
		assert.InDelta(t, 1250.0, *claim.ClaimedImpact.CO2SavedTonnesPerYear, 0.001)
	})

	t.Run("ev charging description", func(t *testing.T) {
		claim := extractor.Extract("setting up an EV charging station with Ather Energy hardware")
		assert.Equal(t, valueobject.ProjectTypeEV, claim.ProjectType)
		assert.Equal(t, "Ather Energy", claim.Vendor)
	})
}
