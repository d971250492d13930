package models

// FailureCluster groups failures that share one fingerprint, representing a
// single root cause. Severity and domain are computed from the first failure
// assigned to the cluster and are not re-run for later members.
type FailureCluster struct {
	Fingerprint   string              `json:"fingerprint"`
	RootCause     string              `json:"root_cause"`
	Severity      Severity            `json:"severity"`
	Domain        Domain              `json:"domain"`
	FailureCount  int                 `json:"failure_count"`
	Tests         []string            `json:"tests"`
	Keywords      []string            `json:"keywords,omitempty"`
	ErrorPatterns []string            `json:"error_patterns,omitempty"`
	SuggestedFix  string              `json:"suggested_fix,omitempty"`
	Failures      []ClassifiedFailure `json:"failures"`
}

// HasTest reports whether the cluster already tracks the given test name.
func (c *FailureCluster) HasTest(name string) bool {
	for _, t := range c.Tests {
		if t == name {
			return true
		}
	}
	return false
}

// HasKeyword reports whether the cluster already tracks the given step name.
func (c *FailureCluster) HasKeyword(name string) bool {
	for _, k := range c.Keywords {
		if k == name {
			return true
		}
	}
	return false
}
