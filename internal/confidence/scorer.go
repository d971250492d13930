// Package confidence combines independent evidence signals into one
// calibrated confidence value per cluster. The model is a fixed weighted
// sum, not a fitted one: same inputs, same score, always explainable from
// the returned signal breakdown.
package confidence

import (
	"github.com/kamilpajak/mendeleev/pkg/models"
)

// clusterSignalCap is the failure count at which repetition stops adding
// evidence.
const clusterSignalCap = 5.0

// domainSignal reflects how trustworthy each domain classification is:
// product and infra rules are specific, the unknown bucket is a shrug.
var domainSignal = map[models.Domain]float64{
	models.DomainProduct:        0.9,
	models.DomainInfrastructure: 0.85,
	models.DomainTestAutomation: 0.8,
	models.DomainEnvironment:    0.75,
	models.DomainUnknown:        0.3,
}

// Weight sets, chosen per the presence of an external AI score.
var (
	baseWeights = map[string]float64{"cluster": 0.4, "domain": 0.35, "pattern": 0.25}
	aiWeights   = map[string]float64{"cluster": 0.3, "domain": 0.3, "pattern": 0.2, "ai": 0.2}
)

// Score computes the confidence for one cluster. aiScore, when non-nil, is
// an externally supplied model score clamped to [0,1] and blended in as a
// fourth signal. The overall value is always within [0,1]; full precision is
// retained and rounding is left to renderers.
func Score(cl *models.FailureCluster, aiScore *float64) models.ConfidenceScore {
	score := models.ConfidenceScore{
		ClusterSignal: clamp01(float64(cl.FailureCount) / clusterSignalCap),
		DomainSignal:  domainSignal[cl.Domain],
		PatternSignal: 0.4,
	}
	if len(cl.ErrorPatterns) > 0 {
		score.PatternSignal = 0.8
	}

	if aiScore == nil {
		score.Weights = baseWeights
		score.Overall = score.ClusterSignal*baseWeights["cluster"] +
			score.DomainSignal*baseWeights["domain"] +
			score.PatternSignal*baseWeights["pattern"]
	} else {
		ai := clamp01(*aiScore)
		score.AISignal = &ai
		score.Weights = aiWeights
		score.Overall = score.ClusterSignal*aiWeights["cluster"] +
			score.DomainSignal*aiWeights["domain"] +
			score.PatternSignal*aiWeights["pattern"] +
			ai*aiWeights["ai"]
	}

	score.Overall = clamp01(score.Overall)
	return score
}

// ScoreAll computes confidence for every cluster in the set, keyed by
// fingerprint. Scores are recomputed fresh per call, never cached.
func ScoreAll(clusters map[string]*models.FailureCluster, aiScore *float64) map[string]models.ConfidenceScore {
	scores := make(map[string]models.ConfidenceScore, len(clusters))
	for fp, cl := range clusters {
		scores[fp] = Score(cl, aiScore)
	}
	return scores
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
