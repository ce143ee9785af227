package service

import (
	"strings"

	"github.com/consolevik/TerraLend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Climate risk assessment
// ---------------------------------------------------------------------------

// ClimateRisk describes one regional risk that applies to a project location.
type ClimateRisk struct {
	Type           string
	Level          valueobject.RiskLevel
	Description    string
	Recommendation string
}

// ClimateRiskResult aggregates the regional risks for a location. The overall
// level is the maximum severity among triggered risks, low when none trigger.
type ClimateRiskResult struct {
	Level valueobject.RiskLevel
	Risks []ClimateRisk
	Notes string
}

// climateRiskRule ties one risk category to the states it affects. The three
// categories are independent: a location can trigger any subset of them.
type climateRiskRule struct {
	riskType       string
	level          valueobject.RiskLevel
	states         []string
	description    string
	recommendation string
}

var climateRiskRules = []climateRiskRule{
	{
		riskType:       "drought",
		level:          valueobject.RiskLevelMedium,
		states:         []string{"Maharashtra", "Karnataka", "Andhra Pradesh"},
		description:    "region has recurring drought cycles affecting water-dependent operations",
		recommendation: "provision water storage and drought contingency into the project plan",
	},
	{
		riskType:       "flood",
		level:          valueobject.RiskLevelHigh,
		states:         []string{"Assam", "Bihar", "Kerala", "West Bengal"},
		description:    "region lies in a high flood-incidence zone",
		recommendation: "elevate critical equipment and verify flood insurance coverage",
	},
	{
		riskType:       "heatwave",
		level:          valueobject.RiskLevelMedium,
		states:         []string{"Delhi", "Telangana", "Uttar Pradesh"},
		description:    "region experiences severe summer heatwaves that derate equipment",
		recommendation: "plan for thermal derating and cooling in equipment sizing",
	},
}

// AssessClimateRisk evaluates a free-text project location against the
// regional risk tables. It never fails; an empty or unrecognised location
// yields a low-risk result with no entries.
func AssessClimateRisk(location string) ClimateRiskResult {
	lowered := strings.ToLower(location)

	result := ClimateRiskResult{
		Level: valueobject.RiskLevelLow,
		Notes: "no regional climate risks identified for the declared location",
	}

	for _, rule := range climateRiskRules {
		if !matchesAnyState(lowered, rule.states) {
			continue
		}
		result.Risks = append(result.Risks, ClimateRisk{
			Type:           rule.riskType,
			Level:          rule.level,
			Description:    rule.description,
			Recommendation: rule.recommendation,
		})
		result.Level = result.Level.Max(rule.level)
	}

	if len(result.Risks) > 0 {
		result.Notes = "assessment derived from the declared project location"
	}

	return result
}

func matchesAnyState(loweredLocation string, states []string) bool {
	for _, s := range states {
		if strings.Contains(loweredLocation, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
