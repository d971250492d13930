// Package regression diffs the failure identities of two runs with plain
// set algebra: which root causes are new, which persist, which went away.
package regression

import (
	"sort"

	"github.com/kamilpajak/mendeleev/pkg/models"
)

// Record is one failure identity from a run. The fingerprint is the primary
// key; legacy records without one fall back to their root-cause text.
type Record struct {
	Fingerprint string `json:"fingerprint,omitempty"`
	RootCause   string `json:"root_cause,omitempty"`
}

// Identity returns the comparison key for the record.
func (r Record) Identity() string {
	if r.Fingerprint != "" {
		return r.Fingerprint
	}
	return r.RootCause
}

// FromClusters extracts the identity records of a cluster set.
func FromClusters(clusters map[string]*models.FailureCluster) []Record {
	records := make([]Record, 0, len(clusters))
	for _, cl := range clusters {
		records = append(records, Record{Fingerprint: cl.Fingerprint, RootCause: cl.RootCause})
	}
	return records
}

// Compare diffs current against previous run identities. The regression rate
// is the share of current distinct failures that are new, as a percentage;
// an empty current run rates zero.
func Compare(current, previous []Record) models.RegressionAnalysis {
	cur := identitySet(current)
	prev := identitySet(previous)

	analysis := models.RegressionAnalysis{
		TotalCurrent:  len(cur),
		TotalPrevious: len(prev),
	}
	for id := range cur {
		if _, ok := prev[id]; ok {
			analysis.RecurringFailures = append(analysis.RecurringFailures, id)
		} else {
			analysis.NewFailures = append(analysis.NewFailures, id)
		}
	}
	for id := range prev {
		if _, ok := cur[id]; !ok {
			analysis.ResolvedFailures = append(analysis.ResolvedFailures, id)
		}
	}

	sort.Strings(analysis.NewFailures)
	sort.Strings(analysis.RecurringFailures)
	sort.Strings(analysis.ResolvedFailures)

	if len(cur) > 0 {
		analysis.RegressionRate = float64(len(analysis.NewFailures)) / float64(len(cur)) * 100
	}
	return analysis
}

func identitySet(records []Record) map[string]struct{} {
	set := make(map[string]struct{}, len(records))
	for _, r := range records {
		if id := r.Identity(); id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}
