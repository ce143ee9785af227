package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/consolevik/TerraLend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ClaimExtractor – domain service for structured claim extraction
// ---------------------------------------------------------------------------

// ClaimedImpact holds the environmental impact figures an applicant claims.
// Nil pointers mean the figure was not stated in the description.
type ClaimedImpact struct {
	CO2SavedTonnesPerYear     *float64
	EnergyGeneratedKWhPerYear *float64
}

// ExtractedClaim is the structured result of parsing a free-text project
// description. Fields that could not be determined stay at their zero value;
// extraction never guesses.
type ExtractedClaim struct {
	ProjectType    valueobject.ProjectType
	CapacityKW     *float64
	Vendor         string
	Certifications []string
	ClaimedImpact  ClaimedImpact
}

// projectTypeRule maps a keyword set to a project type. Rules are probed in
// order and the first set with any keyword present in the text wins.
type projectTypeRule struct {
	projectType valueobject.ProjectType
	keywords    []string
}

// vendorRule maps a recognised vendor alias pattern to its canonical name.
type vendorRule struct {
	pattern   *regexp.Regexp
	canonical string
}

// certificationRule recognises one certification label. Unlike the other
// rule lists every certification rule is tested, since certifications co-occur.
type certificationRule struct {
	label   string
	pattern *regexp.Regexp
}

var defaultProjectTypeRules = []projectTypeRule{
	{valueobject.ProjectTypeSolar, []string{"solar", "photovoltaic", "pv module", "rooftop panel"}},
	{valueobject.ProjectTypeEV, []string{"electric vehicle", "ev charging", "ev fleet", "e-rickshaw", "charging station"}},
	{valueobject.ProjectTypeWaste, []string{"waste", "recycl", "compost", "biogas"}},
	{valueobject.ProjectTypeEnergyEfficiency, []string{"energy efficien", "led retrofit", "led lighting", "insulation", "hvac"}},
	{valueobject.ProjectTypeWater, []string{"water", "rainwater", "drip irrigation", "effluent"}},
}

var defaultCapacityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*kw\b`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*kilowatts?\b`),
	regexp.MustCompile(`(?i)capacity\s+of\s+(\d+(?:\.\d+)?)`),
}

var defaultVendorRules = []vendorRule{
	{regexp.MustCompile(`(?i)tata\s+power\s+solar`), "Tata Power Solar"},
	{regexp.MustCompile(`(?i)adani\s+solar`), "Adani Solar"},
	{regexp.MustCompile(`(?i)vikram\s+solar`), "Vikram Solar"},
	{regexp.MustCompile(`(?i)waaree`), "Waaree Energies"},
	{regexp.MustCompile(`(?i)renewsys`), "RenewSys"},
	{regexp.MustCompile(`(?i)tata\s+motors`), "Tata Motors"},
	{regexp.MustCompile(`(?i)mahindra\s+electric`), "Mahindra Electric"},
	{regexp.MustCompile(`(?i)ather\s+energy`), "Ather Energy"},
	{regexp.MustCompile(`(?i)ola\s+electric`), "Ola Electric"},
	{regexp.MustCompile(`(?i)exide`), "Exide Industries"},
	{regexp.MustCompile(`(?i)luminous`), "Luminous Power"},
	{regexp.MustCompile(`(?i)havells`), "Havells"},
}

var defaultCertificationRules = []certificationRule{
	{"ISO 14001", regexp.MustCompile(`(?i)iso[\s-]*14001`)},
	{"ISO 9001", regexp.MustCompile(`(?i)iso[\s-]*9001`)},
	{"LEED", regexp.MustCompile(`(?i)\bleed\b`)},
	{"GRIHA", regexp.MustCompile(`(?i)\bgriha\b`)},
	{"IGBC", regexp.MustCompile(`(?i)\bigbc\b`)},
	{"BIS", regexp.MustCompile(`(?i)\bbis\b`)},
	{"MNRE approved", regexp.MustCompile(`(?i)mnre[\s-]*approved`)},
	{"BEE star rated", regexp.MustCompile(`(?i)bee[\s-]*star`)},
}

// Impact patterns run over the raw text so digit-group separators survive
// until parsing.
var defaultCO2Patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s*(?:tonnes?|tons?)\s+of\s+co2`),
	regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s*(?:tonnes?|tons?)\s+co2`),
	regexp.MustCompile(`(?i)co2\s+savings?\s+of\s+([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s*tco2`),
}

var defaultEnergyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s*kwh`),
	regexp.MustCompile(`(?i)generate\s+([\d,]+(?:\.\d+)?)\s*units`),
}

// ClaimExtractor parses free-text project descriptions into structured
// claims using ordered pattern rules. It holds no mutable state and is safe
// for concurrent use.
type ClaimExtractor struct {
	typeRules        []projectTypeRule
	capacityPatterns []*regexp.Regexp
	vendorRules      []vendorRule
	certRules        []certificationRule
	co2Patterns      []*regexp.Regexp
	energyPatterns   []*regexp.Regexp
}

// NewClaimExtractor returns an extractor loaded with the default rule set.
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{
		typeRules:        defaultProjectTypeRules,
		capacityPatterns: defaultCapacityPatterns,
		vendorRules:      defaultVendorRules,
		certRules:        defaultCertificationRules,
		co2Patterns:      defaultCO2Patterns,
		energyPatterns:   defaultEnergyPatterns,
	}
}

// Extract parses a project description. It never fails: text that matches
// nothing yields an empty claim with every field unknown.
func (e *ClaimExtractor) Extract(text string) ExtractedClaim {
	var claim ExtractedClaim
	lowered := strings.ToLower(text)

	for _, rule := range e.typeRules {
		if containsAny(lowered, rule.keywords) {
			claim.ProjectType = rule.projectType
			break
		}
	}

	claim.CapacityKW = firstNumericMatch(e.capacityPatterns, text)

	for _, rule := range e.vendorRules {
		if rule.pattern.MatchString(text) {
			claim.Vendor = rule.canonical
			break
		}
	}

	for _, rule := range e.certRules {
		if rule.pattern.MatchString(text) {
			claim.Certifications = append(claim.Certifications, rule.label)
		}
	}

	claim.ClaimedImpact.CO2SavedTonnesPerYear = firstNumericMatch(e.co2Patterns, text)
	claim.ClaimedImpact.EnergyGeneratedKWhPerYear = firstNumericMatch(e.energyPatterns, text)

	return claim
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// firstNumericMatch probes the patterns in order and returns the first
// capture group that parses as a number. Digit-group commas are stripped
// before parsing.
func firstNumericMatch(patterns []*regexp.Regexp, text string) *float64 {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}
