package models

// ConfidenceScore is the calibrated confidence in a cluster's classification.
// All signals and the overall value are within [0,1]. Full precision is kept
// here; rounding happens only at render time.
type ConfidenceScore struct {
	Overall       float64            `json:"overall"`
	ClusterSignal float64            `json:"cluster_signal"`
	DomainSignal  float64            `json:"domain_signal"`
	PatternSignal float64            `json:"pattern_signal"`
	AISignal      *float64           `json:"ai_signal,omitempty"`
	Weights       map[string]float64 `json:"weights"`
}
