package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamilpajak/mendeleev/pkg/models"
)

func sampleClusters() map[string]*models.FailureCluster {
	return map[string]*models.FailureCluster{
		"fp-med": {
			Fingerprint:  "fp-med",
			RootCause:    "Timeout 30000ms exceeded",
			Severity:     models.SeverityMedium,
			Domain:       models.DomainProduct,
			FailureCount: 5,
			Tests:        []string{"t3"},
		},
		"fp-high": {
			Fingerprint:  "fp-high",
			RootCause:    "Element not found",
			Severity:     models.SeverityHigh,
			Domain:       models.DomainTestAutomation,
			FailureCount: 2,
			Tests:        []string{"t1", "t2"},
			SuggestedFix: "Review element locators; the UI may have changed",
		},
		"fp-crit": {
			Fingerprint:  "fp-crit",
			RootCause:    "Internal server error",
			Severity:     models.SeverityCritical,
			Domain:       models.DomainProduct,
			FailureCount: 1,
			Tests:        []string{"t4"},
		},
	}
}

func TestBuildOrdersBySeverityThenCount(t *testing.T) {
	out := Build(sampleClusters(), nil, RunStats{}, nil, nil, nil)

	require.Len(t, out.Clusters, 3)
	assert.Equal(t, "fp-crit", out.Clusters[0].Fingerprint)
	assert.Equal(t, "fp-high", out.Clusters[1].Fingerprint)
	assert.Equal(t, "fp-med", out.Clusters[2].Fingerprint)
}

func TestBuildOrdersByCountWithinSeverity(t *testing.T) {
	clusters := map[string]*models.FailureCluster{
		"fp-a": {Fingerprint: "fp-a", Severity: models.SeverityHigh, FailureCount: 1},
		"fp-b": {Fingerprint: "fp-b", Severity: models.SeverityHigh, FailureCount: 7},
	}
	out := Build(clusters, nil, RunStats{}, nil, nil, nil)

	assert.Equal(t, "fp-b", out.Clusters[0].Fingerprint)
}

func TestBuildFingerprintTiebreak(t *testing.T) {
	clusters := map[string]*models.FailureCluster{
		"fp-b": {Fingerprint: "fp-b", Severity: models.SeverityHigh, FailureCount: 1},
		"fp-a": {Fingerprint: "fp-a", Severity: models.SeverityHigh, FailureCount: 1},
	}
	out := Build(clusters, nil, RunStats{}, nil, nil, nil)

	assert.Equal(t, "fp-a", out.Clusters[0].Fingerprint)
}

func TestBuildSummary(t *testing.T) {
	stats := RunStats{TotalTests: 10, Passed: 6, Failed: 4, Skipped: 0}
	out := Build(sampleClusters(), nil, stats, nil, []string{"something systemic"}, map[string]string{"source": "x"})

	assert.Equal(t, 10, out.Summary.TotalTests)
	assert.Equal(t, 4, out.Summary.Failed)
	assert.Equal(t, 3, out.Summary.UniqueIssues)
	assert.True(t, out.Summary.Systemic)
	assert.Nil(t, out.Summary.RegressionRate)
	assert.Equal(t, "x", out.Metadata["source"])
}

func TestBuildRegressionRateSurfaced(t *testing.T) {
	reg := &models.RegressionAnalysis{RegressionRate: 25.0}
	out := Build(sampleClusters(), nil, RunStats{}, reg, nil, nil)

	require.NotNil(t, out.Summary.RegressionRate)
	assert.InDelta(t, 25.0, *out.Summary.RegressionRate, 1e-9)
	assert.Equal(t, reg, out.Regression)
}

func TestBuildAttachesConfidence(t *testing.T) {
	scores := map[string]models.ConfidenceScore{
		"fp-crit": {Overall: 0.9},
	}
	out := Build(sampleClusters(), scores, RunStats{}, nil, nil, nil)

	require.NotNil(t, out.Clusters[0].Confidence)
	assert.InDelta(t, 0.9, out.Clusters[0].Confidence.Overall, 1e-9)
	assert.Nil(t, out.Clusters[1].Confidence)
}

func TestRecommendedActionsCriticalEscalatesFirst(t *testing.T) {
	cl := &models.FailureCluster{Severity: models.SeverityCritical, Domain: models.DomainProduct}
	actions := recommendedActions(cl, nil)

	require.NotEmpty(t, actions)
	assert.Contains(t, actions[0], "Escalate immediately")
	assert.Contains(t, actions[1], "product defect")
}

func TestRecommendedActionsLowConfidenceWarning(t *testing.T) {
	cl := &models.FailureCluster{Severity: models.SeverityHigh, Domain: models.DomainUnknown}
	score := &models.ConfidenceScore{Overall: 0.3}

	actions := recommendedActions(cl, score)
	assert.Contains(t, actions, "Classification confidence is low; verify the root cause manually before acting")

	score.Overall = 0.7
	actions = recommendedActions(cl, score)
	assert.NotContains(t, actions, "Classification confidence is low; verify the root cause manually before acting")
}

func TestRecommendedActionsIncludeSuggestedFix(t *testing.T) {
	cl := &models.FailureCluster{
		Severity:     models.SeverityHigh,
		Domain:       models.DomainTestAutomation,
		SuggestedFix: "Review element locators; the UI may have changed",
	}
	actions := recommendedActions(cl, nil)
	assert.Contains(t, actions, cl.SuggestedFix)
}

func TestTopRecommendationsDeduplicated(t *testing.T) {
	clusters := []models.ClusterReport{
		{RecommendedActions: []string{"fix A", "fix B"}},
		{RecommendedActions: []string{"fix A", "fix C"}},
		{RecommendedActions: []string{"fix D", "fix E", "never reached"}},
		{RecommendedActions: []string{"beyond top three"}},
	}

	top := topRecommendations(clusters)

	assert.Equal(t, []string{"fix A", "fix B", "fix C", "fix D", "fix E"}, top)
}

func TestBuildSampleFailuresCapped(t *testing.T) {
	failures := make([]models.ClassifiedFailure, 5)
	clusters := map[string]*models.FailureCluster{
		"fp": {Fingerprint: "fp", Severity: models.SeverityHigh, FailureCount: 5, Failures: failures},
	}
	out := Build(clusters, nil, RunStats{}, nil, nil, nil)

	assert.Len(t, out.Clusters[0].SampleFailures, maxSampleFailures)
}

func TestTriage(t *testing.T) {
	out := Build(sampleClusters(), nil, RunStats{TotalTests: 10, Failed: 4}, nil, nil, nil)

	triage := Triage(out, 2)

	assert.Equal(t, "fail", triage.Status)
	assert.Equal(t, 10, triage.TotalTests)
	assert.Equal(t, 4, triage.Failed)
	assert.Equal(t, 3, triage.UniqueIssues)
	require.Len(t, triage.TopIssues, 2)
	assert.Equal(t, "Internal server error", triage.TopIssues[0].RootCause)
	assert.Equal(t, models.SeverityCritical, triage.TopIssues[0].Severity)
	assert.NotEmpty(t, triage.TopIssues[0].RecommendedAction)
}

func TestTriagePassWhenNothingFailed(t *testing.T) {
	out := Build(nil, nil, RunStats{TotalTests: 10}, nil, nil, nil)
	triage := Triage(out, 5)

	assert.Equal(t, "pass", triage.Status)
	assert.Empty(t, triage.TopIssues)
}
