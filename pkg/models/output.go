package models

// AnalysisSummary is the headline block of a structured analysis.
type AnalysisSummary struct {
	TotalTests     int      `json:"total_tests"`
	Passed         int      `json:"passed"`
	Failed         int      `json:"failed"`
	UniqueIssues   int      `json:"unique_issues"`
	Systemic       bool     `json:"systemic"`
	RegressionRate *float64 `json:"regression_rate,omitempty"`
}

// ClusterReport is the per-cluster projection inside a structured analysis.
type ClusterReport struct {
	Fingerprint        string              `json:"fingerprint"`
	RootCause          string              `json:"root_cause"`
	Severity           Severity            `json:"severity"`
	Domain             Domain              `json:"domain"`
	Occurrences        int                 `json:"occurrences"`
	Tests              []string            `json:"tests"`
	Keywords           []string            `json:"keywords,omitempty"`
	ErrorPatterns      []string            `json:"error_patterns,omitempty"`
	SuggestedFix       string              `json:"suggested_fix,omitempty"`
	Confidence         *ConfidenceScore    `json:"confidence,omitempty"`
	RecommendedActions []string            `json:"recommended_actions"`
	SampleFailures     []ClassifiedFailure `json:"sample_failures,omitempty"`
}

// StructuredAnalysisOutput is the full JSON-serializable analysis report.
// Clusters are ordered by severity rank, then descending occurrence count.
type StructuredAnalysisOutput struct {
	Summary            AnalysisSummary     `json:"summary"`
	Clusters           []ClusterReport     `json:"clusters"`
	SystemicPatterns   []string            `json:"systemic_patterns,omitempty"`
	TopRecommendations []string            `json:"top_recommendations,omitempty"`
	Regression         *RegressionAnalysis `json:"regression,omitempty"`
	Metadata           map[string]string   `json:"metadata,omitempty"`
}

// TriageIssue is one row of the condensed triage projection.
type TriageIssue struct {
	RootCause         string   `json:"root_cause"`
	Severity          Severity `json:"severity"`
	Ownership         Domain   `json:"ownership"`
	Occurrences       int      `json:"occurrences"`
	RecommendedAction string   `json:"recommended_action,omitempty"`
}

// TriageOutput is the strict subset of a structured analysis meant for CI
// dashboards: status, counts, and the top-N issues only.
type TriageOutput struct {
	Status       string        `json:"status"`
	TotalTests   int           `json:"total_tests"`
	Failed       int           `json:"failed"`
	UniqueIssues int           `json:"unique_issues"`
	TopIssues    []TriageIssue `json:"top_issues"`
}
