// Package analyze wires the full pipeline: parse a raw report, cluster its
// failures, detect systemic patterns, score confidence, compare against a
// previous run, and assemble the structured output.
package analyze

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kamilpajak/mendeleev/internal/cluster"
	"github.com/kamilpajak/mendeleev/internal/confidence"
	"github.com/kamilpajak/mendeleev/internal/parser"
	"github.com/kamilpajak/mendeleev/internal/regression"
	"github.com/kamilpajak/mendeleev/internal/report"
	"github.com/kamilpajak/mendeleev/internal/sanitize"
	"github.com/kamilpajak/mendeleev/internal/systemic"
	"github.com/kamilpajak/mendeleev/pkg/models"
)

// Params configures an analysis run.
type Params struct {
	// Data is the raw report file content; Format may be left unknown to
	// auto-detect.
	Data   []byte
	Format parser.Format
	// Source labels where the report came from, for output metadata.
	Source string

	Deduplicate    bool
	MinClusterSize int
	// Workers above 1 clusters record partitions concurrently.
	Workers int

	// AIScore is an optional externally supplied model score blended into
	// confidence scoring.
	AIScore *float64
	// AINotes is an optional free-text AI explanation; it is sanitized and
	// carried in output metadata, never interpreted.
	AINotes string
	// Previous, when non-nil, enables regression comparison against the
	// given identity set.
	Previous []regression.Record

	Metadata map[string]string
}

// Outcome bundles everything one analysis run produced.
type Outcome struct {
	Report     *models.Report
	Clusters   map[string]*models.FailureCluster
	Output     models.StructuredAnalysisOutput
	Identities []regression.Record
	// SkippedRecords counts failure records dropped for blank error text.
	SkippedRecords int
}

// Run executes the full pipeline over one raw report.
func Run(ctx context.Context, p Params) (*Outcome, error) {
	rep, err := parser.Parse(p.Data, p.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	records := rep.FailureRecords()
	log.Debug().Int("failures", len(records)).Str("framework", rep.Framework).Msg("report parsed")

	opts := cluster.Options{Deduplicate: p.Deduplicate, MinClusterSize: p.MinClusterSize}
	clustered, err := cluster.BuildParallel(ctx, records, opts, p.Workers)
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}

	patterns := systemic.Detect(clustered.Clusters)
	scores := confidence.ScoreAll(clustered.Clusters, p.AIScore)

	var regAnalysis *models.RegressionAnalysis
	identities := regression.FromClusters(clustered.Clusters)
	if p.Previous != nil {
		analysis := regression.Compare(identities, p.Previous)
		regAnalysis = &analysis
	}

	stats := report.RunStats{
		TotalTests: rep.TotalTests,
		Passed:     rep.PassedTests,
		Failed:     rep.FailedTests,
		Skipped:    rep.SkippedTests,
	}
	meta := make(map[string]string, len(p.Metadata)+2)
	for k, v := range p.Metadata {
		meta[k] = v
	}
	meta["framework"] = rep.Framework
	if p.Source != "" {
		meta["source"] = p.Source
	}
	if p.AINotes != "" {
		if notes := sanitize.Clean(p.AINotes); notes != "" {
			meta["ai_notes"] = notes
		}
	}

	out := report.Build(clustered.Clusters, scores, stats, regAnalysis, patterns, meta)

	return &Outcome{
		Report:         rep,
		Clusters:       clustered.Clusters,
		Output:         out,
		Identities:     identities,
		SkippedRecords: clustered.Skipped,
	}, nil
}
