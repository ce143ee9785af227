package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/consolevik/TerraLend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// GreenScoreEngine – domain service for the sustainability rating
// ---------------------------------------------------------------------------

// Methodology tags the rule-set version a score was produced with.
const Methodology = "terralend-green-score/v2"

// ApprovalThreshold is the minimum green score a loan must reach to be
// approved, assuming the greenwashing check passes.
const ApprovalThreshold = 50

// Sub-score caps.
const (
	categoryCap  = 30
	financialCap = 30
	geographyCap = 30
	integrityCap = 10
)

// LoanAttributes are the raw loan fields the engine scores. Missing or
// malformed values default to their lowest-scoring path; the engine has no
// error conditions.
type LoanAttributes struct {
	GreenObjective   string
	AnnualTurnover   decimal.Decimal
	YearsInBusiness  int
	EstimatedSavings decimal.Decimal
	LoanAmount       decimal.Decimal
	ProjectLocation  string
	Coordinates      *Coordinates
}

// ReasonEntry explains why one scoring factor contributed its points.
// Entries are ordered by the sequence in which rules fired.
type ReasonEntry struct {
	Factor      string `json:"factor"`
	Explanation string `json:"explanation"`
}

// GreenScoreResult is the outcome of the sustainability rating.
type GreenScoreResult struct {
	GreenScore          int
	SustainabilityClass valueobject.SustainabilityClass
	Reasoning           []ReasonEntry
	Methodology         string
}

// subScore is the output of one independent scoring rule.
type subScore struct {
	points int
	reason ReasonEntry
}

// categoryBasePoints assigns impact points per green objective.
// Unrecognised objectives score the agriculture baseline.
var categoryBasePoints = map[string]int{
	"solar":             30,
	"waste":             30,
	"wind":              30,
	"energy_efficiency": 25,
	"ev":                25,
	"water":             25,
	"agriculture":       20,
}

const defaultCategoryPoints = 20

// GreenScoreEngine computes a 0-100 sustainability score from loan
// attributes. Pure and stateless; safe for concurrent use.
type GreenScoreEngine struct{}

// NewGreenScoreEngine returns a new engine instance.
func NewGreenScoreEngine() *GreenScoreEngine {
	return &GreenScoreEngine{}
}

// Score rates a loan. The total is the sum of four independently capped
// sub-scores (category/impact 30, financial viability 30, geographic
// suitability 30, data integrity 10), clamped to [0,100].
func (e *GreenScoreEngine) Score(loan LoanAttributes) GreenScoreResult {
	subs := []subScore{
		e.scoreCategoryImpact(loan),
		e.scoreFinancialViability(loan),
		e.scoreGeographicSuitability(loan),
		e.scoreDataIntegrity(loan),
	}

	total := 0
	reasoning := make([]ReasonEntry, 0, len(subs))
	for _, s := range subs {
		total += s.points
		reasoning = append(reasoning, s.reason)
	}

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return GreenScoreResult{
		GreenScore:          total,
		SustainabilityClass: ClassifySustainability(total),
		Reasoning:           reasoning,
		Methodology:         Methodology,
	}
}

// ClassifySustainability buckets a green score: >=80 high, >=50 medium,
// otherwise low.
func ClassifySustainability(score int) valueobject.SustainabilityClass {
	switch {
	case score >= 80:
		return valueobject.SustainabilityClassHigh
	case score >= 50:
		return valueobject.SustainabilityClassMedium
	default:
		return valueobject.SustainabilityClassLow
	}
}

// scoreCategoryImpact awards base points per objective plus a transformative
// bonus when the projected savings exceed half the annual turnover (cap 30).
func (e *GreenScoreEngine) scoreCategoryImpact(loan LoanAttributes) subScore {
	category := normaliseCategory(loan.GreenObjective)

	points, recognised := categoryBasePoints[category]
	if !recognised {
		points = defaultCategoryPoints
	}

	explanation := fmt.Sprintf("objective %q scores %d base impact points", loan.GreenObjective, points)
	if !recognised {
		explanation = fmt.Sprintf("unrecognised objective %q scores the default %d impact points", loan.GreenObjective, points)
	}

	half := loan.AnnualTurnover.Div(decimal.NewFromInt(2))
	if loan.EstimatedSavings.GreaterThan(half) && loan.EstimatedSavings.IsPositive() {
		points += 5
		explanation += "; transformative bonus applied, projected savings exceed 50% of turnover"
	}

	if points > categoryCap {
		points = categoryCap
	}

	return subScore{points: points, reason: ReasonEntry{Factor: "category_impact", Explanation: explanation}}
}

// scoreFinancialViability sums ROI tiering, turnover stability, and business
// age (cap 30). Zero or missing figures score zero rather than failing.
func (e *GreenScoreEngine) scoreFinancialViability(loan LoanAttributes) subScore {
	points := 0
	var parts []string

	if loan.LoanAmount.IsPositive() {
		ratio := loan.EstimatedSavings.Div(loan.LoanAmount)
		switch {
		case ratio.GreaterThanOrEqual(decimal.NewFromFloat(0.5)):
			points += 15
			parts = append(parts, "strong savings-to-loan ratio")
		case ratio.GreaterThanOrEqual(decimal.NewFromFloat(0.25)):
			points += 10
			parts = append(parts, "good savings-to-loan ratio")
		case ratio.GreaterThanOrEqual(decimal.NewFromFloat(0.1)):
			points += 5
			parts = append(parts, "modest savings-to-loan ratio")
		default:
			parts = append(parts, "weak savings-to-loan ratio")
		}
	} else {
		parts = append(parts, "no loan amount to assess returns against")
	}

	switch {
	case loan.AnnualTurnover.GreaterThanOrEqual(decimal.NewFromInt(5_000_000)):
		points += 10
		parts = append(parts, "turnover at or above ₹50L")
	case loan.AnnualTurnover.GreaterThanOrEqual(decimal.NewFromInt(1_000_000)):
		points += 5
		parts = append(parts, "turnover at or above ₹10L")
	default:
		parts = append(parts, "turnover below stability threshold")
	}

	switch {
	case loan.YearsInBusiness >= 3:
		points += 5
		parts = append(parts, "established business (3+ years)")
	case loan.YearsInBusiness >= 1:
		points += 2
		parts = append(parts, "young business (1-2 years)")
	default:
		parts = append(parts, "no operating history")
	}

	if points > financialCap {
		points = financialCap
	}

	return subScore{points: points, reason: ReasonEntry{
		Factor:      "financial_viability",
		Explanation: strings.Join(parts, "; "),
	}}
}

// scoreGeographicSuitability combines the per-category region table (up to
// 20 points) with the inverse of the assessed climate risk (up to 10).
func (e *GreenScoreEngine) scoreGeographicSuitability(loan LoanAttributes) subScore {
	category := normaliseCategory(loan.GreenObjective)
	state := resolveState(loan)

	regionPoints, regionWhy := scoreRegion(category, state)

	climate := AssessClimateRisk(loan.ProjectLocation)
	climatePoints := 0
	switch climate.Level {
	case valueobject.RiskLevelLow:
		climatePoints = 10
	case valueobject.RiskLevelMedium:
		climatePoints = 5
	}

	points := regionPoints + climatePoints
	if points > geographyCap {
		points = geographyCap
	}

	return subScore{points: points, reason: ReasonEntry{
		Factor:      "geographic_suitability",
		Explanation: fmt.Sprintf("%s; climate risk assessed %s", regionWhy, climate.Level.String()),
	}}
}

// scoreDataIntegrity rewards complete, precise application data (cap 10).
func (e *GreenScoreEngine) scoreDataIntegrity(loan LoanAttributes) subScore {
	points := 0
	var parts []string

	if loan.Coordinates != nil {
		points += 5
		parts = append(parts, "precise geocoordinates supplied")
	} else {
		parts = append(parts, "no geocoordinates supplied")
	}

	if loan.AnnualTurnover.IsPositive() && loan.EstimatedSavings.IsPositive() {
		points += 5
		parts = append(parts, "turnover and savings figures both present")
	} else {
		parts = append(parts, "financial figures incomplete")
	}

	if points > integrityCap {
		points = integrityCap
	}

	return subScore{points: points, reason: ReasonEntry{
		Factor:      "data_integrity",
		Explanation: strings.Join(parts, "; "),
	}}
}

// resolveState prefers the nearest-centroid lookup when coordinates were
// supplied, falling back to free-text matching.
func resolveState(loan LoanAttributes) string {
	if loan.Coordinates != nil {
		if state := StateFromCoordinates(*loan.Coordinates); state != "" {
			return state
		}
	}
	return StateFromLocation(loan.ProjectLocation)
}

// scoreRegion applies the category-specific region table: favored state 20,
// recognised but unfavored state 10, unknown state 0. Waste projects are
// viable everywhere and always score the full 20.
func scoreRegion(category, state string) (int, string) {
	if category == "waste" {
		return 20, "waste projects are viable in every region"
	}
	if state == "" {
		return 0, "project location could not be resolved to a state"
	}
	if stateListed(state, favoredStatesByCategory[category]) {
		return 20, fmt.Sprintf("%s is a favored region for %s projects", state, category)
	}
	return 10, fmt.Sprintf("%s is viable but not a favored region for %s projects", state, category)
}

func normaliseCategory(objective string) string {
	return strings.ToLower(strings.TrimSpace(objective))
}

var nonAmountChars = regexp.MustCompile(`[^0-9.]`)

// ParseAmount converts a currency-like string ("₹50,00,000", "Rs. 12.5 lakh
// written as digits", plain numbers) to a decimal by stripping everything
// but digits and the decimal point. Missing or unparseable input yields zero.
func ParseAmount(s string) decimal.Decimal {
	cleaned := nonAmountChars.ReplaceAllString(s, "")
	if cleaned == "" || cleaned == "." {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
