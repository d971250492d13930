// Package report assembles clusters, confidence, regression, and systemic
// signals into the stable output schema, plus the condensed triage
// projection for CI dashboards.
package report

import (
	"sort"

	"github.com/kamilpajak/mendeleev/pkg/models"
)

const (
	maxActionsPerCluster   = 5
	maxTopRecommendations  = 5
	topClustersForOverview = 3
	maxSampleFailures      = 3
	lowConfidenceThreshold = 0.5
)

// RunStats carries the pass/fail counts of the run being reported.
type RunStats struct {
	TotalTests int
	Passed     int
	Failed     int
	Skipped    int
}

// domainAdvice is the lead recommendation per ownership domain.
var domainAdvice = map[models.Domain]string{
	models.DomainInfrastructure: "Escalate to the infrastructure team; verify host, network, and DNS health",
	models.DomainEnvironment:    "Check environment configuration, credentials, and dependency installation",
	models.DomainTestAutomation: "Review test code and locators; the failure originates in automation, not the product",
	models.DomainProduct:        "File a product defect with the cluster evidence attached",
	models.DomainUnknown:        "Triage manually; automated classification found no strong signal",
}

// Build assembles the structured analysis output. Clusters are ordered by
// severity rank, then descending occurrence count, with the fingerprint as a
// final tiebreak for stable output.
func Build(
	clusters map[string]*models.FailureCluster,
	scores map[string]models.ConfidenceScore,
	stats RunStats,
	regression *models.RegressionAnalysis,
	systemicPatterns []string,
	metadata map[string]string,
) models.StructuredAnalysisOutput {
	ordered := sortClusters(clusters)

	out := models.StructuredAnalysisOutput{
		Summary: models.AnalysisSummary{
			TotalTests:   stats.TotalTests,
			Passed:       stats.Passed,
			Failed:       stats.Failed,
			UniqueIssues: len(ordered),
			Systemic:     len(systemicPatterns) > 0,
		},
		SystemicPatterns: systemicPatterns,
		Regression:       regression,
		Metadata:         metadata,
	}
	if regression != nil {
		rate := regression.RegressionRate
		out.Summary.RegressionRate = &rate
	}

	for _, cl := range ordered {
		cr := models.ClusterReport{
			Fingerprint:   cl.Fingerprint,
			RootCause:     cl.RootCause,
			Severity:      cl.Severity,
			Domain:        cl.Domain,
			Occurrences:   cl.FailureCount,
			Tests:         cl.Tests,
			Keywords:      cl.Keywords,
			ErrorPatterns: cl.ErrorPatterns,
			SuggestedFix:  cl.SuggestedFix,
		}
		if score, ok := scores[cl.Fingerprint]; ok {
			s := score
			cr.Confidence = &s
		}
		cr.RecommendedActions = recommendedActions(cl, cr.Confidence)
		if len(cl.Failures) > maxSampleFailures {
			cr.SampleFailures = cl.Failures[:maxSampleFailures]
		} else {
			cr.SampleFailures = cl.Failures
		}
		out.Clusters = append(out.Clusters, cr)
	}

	out.TopRecommendations = topRecommendations(out.Clusters)
	return out
}

// recommendedActions derives up to five actions for one cluster: escalation
// for critical severity, the domain-specific advice, a warning when the
// classification confidence is low, and the cluster's own suggested fix.
func recommendedActions(cl *models.FailureCluster, score *models.ConfidenceScore) []string {
	var actions []string
	if cl.Severity == models.SeverityCritical {
		actions = append(actions, "Escalate immediately: critical severity blocks the release until resolved")
	}
	actions = append(actions, domainAdvice[cl.Domain])
	if score != nil && score.Overall < lowConfidenceThreshold {
		actions = append(actions, "Classification confidence is low; verify the root cause manually before acting")
	}
	if cl.SuggestedFix != "" && !contains(actions, cl.SuggestedFix) {
		actions = append(actions, cl.SuggestedFix)
	}
	if len(actions) > maxActionsPerCluster {
		actions = actions[:maxActionsPerCluster]
	}
	return actions
}

// topRecommendations takes the first two actions from each of the top three
// clusters, deduplicated, capped at five.
func topRecommendations(clusters []models.ClusterReport) []string {
	var top []string
	limit := min(topClustersForOverview, len(clusters))
	for _, cr := range clusters[:limit] {
		for i, action := range cr.RecommendedActions {
			if i >= 2 {
				break
			}
			if !contains(top, action) {
				top = append(top, action)
			}
		}
	}
	if len(top) > maxTopRecommendations {
		top = top[:maxTopRecommendations]
	}
	return top
}

// Triage strips a structured output down to the condensed projection: run
// status, counts, and the first maxClusters issues with one action each.
func Triage(out models.StructuredAnalysisOutput, maxClusters int) models.TriageOutput {
	status := "pass"
	if out.Summary.Failed > 0 {
		status = "fail"
	}
	triage := models.TriageOutput{
		Status:       status,
		TotalTests:   out.Summary.TotalTests,
		Failed:       out.Summary.Failed,
		UniqueIssues: out.Summary.UniqueIssues,
	}
	limit := min(maxClusters, len(out.Clusters))
	for _, cr := range out.Clusters[:limit] {
		issue := models.TriageIssue{
			RootCause:   cr.RootCause,
			Severity:    cr.Severity,
			Ownership:   cr.Domain,
			Occurrences: cr.Occurrences,
		}
		if len(cr.RecommendedActions) > 0 {
			issue.RecommendedAction = cr.RecommendedActions[0]
		}
		triage.TopIssues = append(triage.TopIssues, issue)
	}
	return triage
}

func sortClusters(clusters map[string]*models.FailureCluster) []*models.FailureCluster {
	ordered := make([]*models.FailureCluster, 0, len(clusters))
	for _, cl := range clusters {
		ordered = append(ordered, cl)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Severity.Rank() != ordered[j].Severity.Rank() {
			return ordered[i].Severity.Rank() < ordered[j].Severity.Rank()
		}
		if ordered[i].FailureCount != ordered[j].FailureCount {
			return ordered[i].FailureCount > ordered[j].FailureCount
		}
		return ordered[i].Fingerprint < ordered[j].Fingerprint
	})
	return ordered
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
