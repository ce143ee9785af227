package service

import "math"

// ---------------------------------------------------------------------------
// ConfidenceScorer – domain service for extraction confidence
// ---------------------------------------------------------------------------

// ConfidenceSignal explains one deduction applied to the confidence score.
type ConfidenceSignal struct {
	Field   string  `json:"field"`
	Message string  `json:"message"`
	Penalty float64 `json:"penalty"`
}

// ClaimCompleteness flags which tracked fields were present in a claim.
type ClaimCompleteness struct {
	ProjectType    bool `json:"project_type"`
	Capacity       bool `json:"capacity"`
	Vendor         bool `json:"vendor"`
	Impact         bool `json:"impact"`
	Certifications bool `json:"certifications"`
}

// ConfidenceResult holds the confidence score for an extracted claim along
// with the itemised signals that produced it.
type ConfidenceResult struct {
	Confidence   float64            `json:"confidence"`
	Signals      []ConfidenceSignal `json:"signals"`
	Completeness ClaimCompleteness  `json:"completeness"`
}

// penaltyRule describes one critical-field deduction. Rules are applied in
// order so the signal list has a stable, test-visible sequence.
type penaltyRule struct {
	field   string
	message string
	penalty float64
	missing func(ExtractedClaim) bool
}

var defaultPenaltyRules = []penaltyRule{
	{
		field:   "project_type",
		message: "project type could not be determined from the description",
		penalty: 0.20,
		missing: func(c ExtractedClaim) bool { return c.ProjectType.IsUnknown() },
	},
	{
		field:   "capacity",
		message: "no system capacity figure found",
		penalty: 0.25,
		missing: func(c ExtractedClaim) bool { return c.CapacityKW == nil },
	},
	{
		field:   "vendor",
		message: "no recognised vendor named",
		penalty: 0.20,
		missing: func(c ExtractedClaim) bool { return c.Vendor == "" },
	},
	{
		field:   "impact",
		message: "neither CO2 savings nor energy generation figures stated",
		penalty: 0.15,
		missing: func(c ExtractedClaim) bool {
			return c.ClaimedImpact.CO2SavedTonnesPerYear == nil &&
				c.ClaimedImpact.EnergyGeneratedKWhPerYear == nil
		},
	},
}

const (
	certificationBonus    = 0.05
	certificationBonusCap = 0.10
)

// ConfidenceScorer computes a 0-1 confidence value from the presence of
// critical claim fields. Pure and stateless.
type ConfidenceScorer struct {
	rules []penaltyRule
}

// NewConfidenceScorer returns a scorer with the default penalty rules.
func NewConfidenceScorer() *ConfidenceScorer {
	return &ConfidenceScorer{rules: defaultPenaltyRules}
}

// Score evaluates an extracted claim. Confidence starts at 1.0, each missing
// critical field subtracts its fixed penalty, named certifications add a
// capped bonus, and the result is clamped to [0,1] and rounded to two
// decimals. There are no error conditions.
func (s *ConfidenceScorer) Score(claim ExtractedClaim) ConfidenceResult {
	confidence := 1.0
	var signals []ConfidenceSignal

	for _, rule := range s.rules {
		if !rule.missing(claim) {
			continue
		}
		confidence -= rule.penalty
		signals = append(signals, ConfidenceSignal{
			Field:   rule.field,
			Message: rule.message,
			Penalty: rule.penalty,
		})
	}

	bonus := certificationBonus * float64(len(claim.Certifications))
	if bonus > certificationBonusCap {
		bonus = certificationBonusCap
	}
	confidence += bonus

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return ConfidenceResult{
		Confidence: math.Round(confidence*100) / 100,
		Signals:    signals,
		Completeness: ClaimCompleteness{
			ProjectType: !claim.ProjectType.IsUnknown(),
			Capacity:    claim.CapacityKW != nil,
			Vendor:      claim.Vendor != "",
			Impact: claim.ClaimedImpact.CO2SavedTonnesPerYear != nil ||
				claim.ClaimedImpact.EnergyGeneratedKWhPerYear != nil,
			Certifications: len(claim.Certifications) > 0,
		},
	}
}
