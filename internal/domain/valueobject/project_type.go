package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// ProjectType – immutable value object
// ---------------------------------------------------------------------------

// ProjectType classifies the sustainability project described by an applicant.
// The zero value means the type could not be determined from the description.
type ProjectType struct {
	value string
}

var (
	ProjectTypeUnknown          = ProjectType{}
	ProjectTypeSolar            = ProjectType{value: "solar"}
	ProjectTypeEV               = ProjectType{value: "ev"}
	ProjectTypeWaste            = ProjectType{value: "waste"}
	ProjectTypeEnergyEfficiency = ProjectType{value: "energy_efficiency"}
	ProjectTypeWater            = ProjectType{value: "water"}
)

var validProjectTypes = map[string]ProjectType{
	"":                  ProjectTypeUnknown,
	"solar":             ProjectTypeSolar,
	"ev":                ProjectTypeEV,
	"waste":             ProjectTypeWaste,
	"energy_efficiency": ProjectTypeEnergyEfficiency,
	"water":             ProjectTypeWater,
}

// NewProjectType creates a ProjectType from a raw string. The empty string is
// valid and yields the unknown type.
func NewProjectType(s string) (ProjectType, error) {
	v, ok := validProjectTypes[s]
	if !ok {
		return ProjectType{}, fmt.Errorf("invalid project type: %q", s)
	}
	return v, nil
}

// String returns the string representation, or "" when unknown.
func (p ProjectType) String() string { return p.value }

// IsUnknown reports whether no project type was determined.
func (p ProjectType) IsUnknown() bool { return p.value == "" }

// Equal returns true when both types carry the same value.
func (p ProjectType) Equal(other ProjectType) bool { return p.value == other.value }
