package testutil

// Fixed IDs for deterministic testing
const (
	TestBorrowerID1 = "00000000-0000-0000-0000-000000000001"
	TestBorrowerID2 = "00000000-0000-0000-0000-000000000002"
	TestTenantID    = "00000000-0000-0000-0000-000000000010"
	TestLoanID      = "00000000-0000-0000-0000-000000000030"
)

// Canonical project descriptions used across extractor and pipeline tests.
const (
	TestSolarDescription = "Installing 50kW solar panels from Tata Power Solar to generate " +
		"75,000 kWh annually and save 40 tonnes of CO2 per year"
	TestVagueDescription = "We want to make our factory greener"
)
