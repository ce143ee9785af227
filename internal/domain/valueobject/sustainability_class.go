package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// SustainabilityClass – immutable value object
// ---------------------------------------------------------------------------

// SustainabilityClass is the coarse bucket derived from a green score.
type SustainabilityClass struct {
	value string
}

const (
	sustainabilityLow    = "low"
	sustainabilityMedium = "medium"
	sustainabilityHigh   = "high"
)

var (
	SustainabilityClassLow    = SustainabilityClass{value: sustainabilityLow}
	SustainabilityClassMedium = SustainabilityClass{value: sustainabilityMedium}
	SustainabilityClassHigh   = SustainabilityClass{value: sustainabilityHigh}
)

var validSustainabilityClasses = map[string]SustainabilityClass{
	sustainabilityLow:    SustainabilityClassLow,
	sustainabilityMedium: SustainabilityClassMedium,
	sustainabilityHigh:   SustainabilityClassHigh,
}

// NewSustainabilityClass creates a SustainabilityClass from a raw string.
func NewSustainabilityClass(s string) (SustainabilityClass, error) {
	v, ok := validSustainabilityClasses[s]
	if !ok {
		return SustainabilityClass{}, fmt.Errorf("invalid sustainability class: %q", s)
	}
	return v, nil
}

// String returns the string representation of the class.
func (c SustainabilityClass) String() string { return c.value }

// IsZero returns true if the class has not been initialised.
func (c SustainabilityClass) IsZero() bool { return c.value == "" }

// Equal returns true when both classes carry the same value.
func (c SustainabilityClass) Equal(other SustainabilityClass) bool {
	return c.value == other.value
}
