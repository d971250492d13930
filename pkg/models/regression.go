package models

// RegressionAnalysis is the set difference between the failure identities of
// the current run and a previous run. Identity sets carry no ordering
// guarantees beyond being sorted for stable output.
type RegressionAnalysis struct {
	NewFailures       []string `json:"new_failures"`
	RecurringFailures []string `json:"recurring_failures"`
	ResolvedFailures  []string `json:"resolved_failures"`
	RegressionRate    float64  `json:"regression_rate"`
	TotalCurrent      int      `json:"total_current"`
	TotalPrevious     int      `json:"total_previous"`
}
