package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consolevik/TerraLend/internal/domain/valueobject"
)

func TestGreenScoreEngine_Score(t *testing.T) {
	engine := NewGreenScoreEngine()

	t.Run("strong solar application in a favored state", func(t *testing.T) {
		result := engine.Score(LoanAttributes{
			GreenObjective:   "solar",
			AnnualTurnover:   decimal.NewFromInt(6_000_000),
			YearsInBusiness:  5,
			EstimatedSavings: decimal.NewFromInt(3_500_000),
			LoanAmount:       decimal.NewFromInt(2_000_000),
			ProjectLocation:  "Jodhpur, Rajasthan",
		})

		// 30 category + 30 financial + 30 geography + 5 integrity
		assert.Equal(t, 95, result.GreenScore)
		assert.Equal(t, valueobject.SustainabilityClassHigh, result.SustainabilityClass)
		assert.Equal(t, Methodology, result.Methodology)
		require.Len(t, result.Reasoning, 4)
		assert.Equal(t, "category_impact", result.Reasoning[0].Factor)
		assert.Equal(t, "financial_viability", result.Reasoning[1].Factor)
		assert.Equal(t, "geographic_suitability", result.Reasoning[2].Factor)
		assert.Equal(t, "data_integrity", result.Reasoning[3].Factor)
	})

	t.Run("vague application scores low", func(t *testing.T) {
		result := engine.Score(LoanAttributes{
			GreenObjective:  "general business improvement",
			AnnualTurnover:  decimal.NewFromInt(500_000),
			LoanAmount:      decimal.NewFromInt(1_000_000),
			ProjectLocation: "somewhere nice",
		})

		// 20 default category + 0 financial + 10 geography + 0 integrity
		assert.Equal(t, 30, result.GreenScore)
		assert.Equal(t, valueobject.SustainabilityClassLow, result.SustainabilityClass)
	})

	t.Run("coordinates resolve the state when location text is unusable", func(t *testing.T) {
		result := engine.Score(LoanAttributes{
			GreenObjective:   "solar",
			AnnualTurnover:   decimal.NewFromInt(6_000_000),
			YearsInBusiness:  5,
			EstimatedSavings: decimal.NewFromInt(3_500_000),
			LoanAmount:       decimal.NewFromInt(2_000_000),
			ProjectLocation:  "plot 14, industrial area",
			Coordinates:      &Coordinates{Lat: 26.9, Lng: 73.85},
		})

		// Full marks plus the coordinate integrity bonus.
		assert.Equal(t, 100, result.GreenScore)
		assert.Equal(t, valueobject.SustainabilityClassHigh, result.SustainabilityClass)
	})

	t.Run("high climate risk cancels the climate points", func(t *testing.T) {
		result := engine.Score(LoanAttributes{
			GreenObjective:  "solar",
			ProjectLocation: "Kochi, Kerala",
		})

		// Kerala is recognised but not favored for solar, and floods heavily.
		geography := result.Reasoning[2]
		assert.Contains(t, geography.Explanation, "not a favored region")
		assert.Contains(t, geography.Explanation, "high")
	})

	t.Run("waste projects score the region everywhere", func(t *testing.T) {
		result := engine.Score(LoanAttributes{
			GreenObjective:  "waste",
			ProjectLocation: "an unrecognisable address",
		})

		assert.Contains(t, result.Reasoning[2].Explanation, "viable in every region")
	})

	t.Run("transformative bonus lifts a mid-tier category to the cap", func(t *testing.T) {
		withBonus := engine.Score(LoanAttributes{
			GreenObjective:   "energy_efficiency",
			AnnualTurnover:   decimal.NewFromInt(1_000_000),
			EstimatedSavings: decimal.NewFromInt(600_000),
		})
		without := engine.Score(LoanAttributes{
			GreenObjective:   "energy_efficiency",
			AnnualTurnover:   decimal.NewFromInt(1_000_000),
			EstimatedSavings: decimal.NewFromInt(400_000),
		})

		assert.Equal(t, 5, withBonus.GreenScore-without.GreenScore)
	})

	t.Run("zero attributes stay within range", func(t *testing.T) {
		result := engine.Score(LoanAttributes{})

		assert.GreaterOrEqual(t, result.GreenScore, 0)
		assert.LessOrEqual(t, result.GreenScore, 100)
	})

	t.Run("scoring is deterministic", func(t *testing.T) {
		loan := LoanAttributes{
			GreenObjective:   "ev",
			AnnualTurnover:   decimal.NewFromInt(2_000_000),
			YearsInBusiness:  2,
			EstimatedSavings: decimal.NewFromInt(300_000),
			LoanAmount:       decimal.NewFromInt(1_500_000),
			ProjectLocation:  "Bengaluru, Karnataka",
		}

		first := engine.Score(loan)
		second := engine.Score(loan)
		assert.Equal(t, first, second)
	})
}

func TestClassifySustainability(t *testing.T) {
	tests := []struct {
		score int
		want  valueobject.SustainabilityClass
	}{
		{0, valueobject.SustainabilityClassLow},
		{49, valueobject.SustainabilityClassLow},
		{50, valueobject.SustainabilityClassMedium},
		{79, valueobject.SustainabilityClassMedium},
		{80, valueobject.SustainabilityClassHigh},
		{100, valueobject.SustainabilityClassHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifySustainability(tt.score), "score %d", tt.score)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  decimal.Decimal
	}{
		{"plain number", "5000000", decimal.NewFromInt(5_000_000)},
		{"rupee symbol and lakh grouping", "₹50,00,000", decimal.NewFromInt(5_000_000)},
		{"currency prefix", "INR 12500.50", decimal.RequireFromString("12500.50")},
		{"empty string", "", decimal.Zero},
		{"no digits", "about fifty lakh", decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(ParseAmount(tt.input)),
				"ParseAmount(%q) = %s", tt.input, ParseAmount(tt.input))
		})
	}
}
