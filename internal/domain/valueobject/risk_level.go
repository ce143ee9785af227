package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// RiskLevel – immutable value object
// ---------------------------------------------------------------------------

// RiskLevel grades a climate risk assessment.
type RiskLevel struct {
	value string
	rank  int
}

var (
	RiskLevelLow    = RiskLevel{value: "low", rank: 0}
	RiskLevelMedium = RiskLevel{value: "medium", rank: 1}
	RiskLevelHigh   = RiskLevel{value: "high", rank: 2}
)

var validRiskLevels = map[string]RiskLevel{
	"low":    RiskLevelLow,
	"medium": RiskLevelMedium,
	"high":   RiskLevelHigh,
}

// NewRiskLevel creates a RiskLevel from a raw string.
func NewRiskLevel(s string) (RiskLevel, error) {
	v, ok := validRiskLevels[s]
	if !ok {
		return RiskLevel{}, fmt.Errorf("invalid risk level: %q", s)
	}
	return v, nil
}

// String returns the string representation of the level.
func (l RiskLevel) String() string { return l.value }

// IsZero returns true if the level has not been initialised.
func (l RiskLevel) IsZero() bool { return l.value == "" }

// Severity returns an ordinal rank: low 0, medium 1, high 2.
func (l RiskLevel) Severity() int { return l.rank }

// Max returns the more severe of the two levels.
func (l RiskLevel) Max(other RiskLevel) RiskLevel {
	if other.rank > l.rank {
		return other
	}
	return l
}

// Equal returns true when both levels carry the same value.
func (l RiskLevel) Equal(other RiskLevel) bool { return l.value == other.value }
