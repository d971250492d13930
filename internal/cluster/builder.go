// Package cluster groups failure records by fingerprint, deduplicating
// repeat observations and classifying each cluster once. Clustering is a
// pure fold over the input: records are never mutated and malformed records
// are skipped, not fatal.
package cluster

import (
	"strings"

	"github.com/kamilpajak/mendeleev/internal/classify"
	"github.com/kamilpajak/mendeleev/internal/fingerprint"
	"github.com/kamilpajak/mendeleev/pkg/models"
)

const rootCauseMaxLen = 150

// Options controls one clustering invocation.
type Options struct {
	// Deduplicate drops repeat (fingerprint, test, keyword) combinations
	// within this invocation. The same fingerprint under a different
	// keyword on the same test is intentionally kept: distinct steps are
	// distinct observations.
	Deduplicate bool
	// MinClusterSize drops clusters below the threshold after all records
	// are processed. Zero or one keeps everything.
	MinClusterSize int
}

// DefaultOptions matches the documented contract defaults.
func DefaultOptions() Options {
	return Options{Deduplicate: true, MinClusterSize: 1}
}

// Result is the outcome of one clustering invocation.
type Result struct {
	Clusters map[string]*models.FailureCluster
	// Valid counts records with non-blank error text, including ones later
	// dropped as duplicates.
	Valid int
	// Skipped counts records dropped for blank error text.
	Skipped int
	// Duplicates counts records dropped by deduplication.
	Duplicates int
}

// DeduplicationRatio is raw valid failures per distinct root cause. Five raw
// failures over two clusters is 2.5.
func (r Result) DeduplicationRatio() float64 {
	if len(r.Clusters) == 0 {
		return 0
	}
	return float64(r.Valid) / float64(len(r.Clusters))
}

// UniqueIssues is the number of distinct root causes found.
func (r Result) UniqueIssues() int {
	return len(r.Clusters)
}

type dedupKey struct {
	fingerprint string
	test        string
	keyword     string
}

// Build groups records into clusters keyed by fingerprint. A cluster's root
// cause, severity, and domain come from the first failure assigned to it;
// later members only accumulate counts, tests, and keywords.
func Build(records []models.FailureRecord, opts Options) Result {
	res := Result{Clusters: make(map[string]*models.FailureCluster)}
	seen := make(map[dedupKey]struct{})

	for _, rec := range records {
		if strings.TrimSpace(rec.Error) == "" {
			res.Skipped++
			continue
		}
		res.Valid++

		fp := fingerprint.Compute(rec.Error, rec.StackTrace, rec.HTTPStatus)
		if opts.Deduplicate {
			key := dedupKey{fp, rec.Name, rec.KeywordName}
			if _, dup := seen[key]; dup {
				res.Duplicates++
				continue
			}
			seen[key] = struct{}{}
		}

		domain := classify.Domain(rec.Error, rec.StackTrace, rec.Library)
		cl, ok := res.Clusters[fp]
		if !ok {
			cl = &models.FailureCluster{
				Fingerprint: fp,
				RootCause:   rootCause(rec.Error),
				Severity:    classify.Severity(rec.Error, rec.KeywordName, rec.HTTPStatus),
				Domain:      domain,
			}
			res.Clusters[fp] = cl
		}
		appendFailure(cl, models.ClassifiedFailure{FailureRecord: rec, Domain: domain})
	}

	finalize(res.Clusters, opts.MinClusterSize)
	return res
}

// appendFailure adds one surviving failure to its cluster, keeping the tests
// and keywords ordered sets in first-seen order.
func appendFailure(cl *models.FailureCluster, cf models.ClassifiedFailure) {
	cl.Failures = append(cl.Failures, cf)
	cl.FailureCount++
	if cf.Name != "" && !cl.HasTest(cf.Name) {
		cl.Tests = append(cl.Tests, cf.Name)
	}
	if cf.KeywordName != "" && !cl.HasKeyword(cf.KeywordName) {
		cl.Keywords = append(cl.Keywords, cf.KeywordName)
	}
}

// finalize derives per-cluster error patterns and fix suggestions from the
// combined error text, then applies the minimum-size filter.
func finalize(clusters map[string]*models.FailureCluster, minSize int) {
	for fp, cl := range clusters {
		combined := combinedErrorText(cl)
		cl.ErrorPatterns = DetectErrorPatterns(combined)
		cl.SuggestedFix = SuggestFix(combined)
		if minSize > 1 && cl.FailureCount < minSize {
			delete(clusters, fp)
		}
	}
}

func combinedErrorText(cl *models.FailureCluster) string {
	var b strings.Builder
	for _, f := range cl.Failures {
		b.WriteString(strings.ToLower(f.Error))
		b.WriteByte('\n')
	}
	return b.String()
}

// rootCause is the first line of the triggering error, ellipsis-truncated to
// a displayable length.
func rootCause(errText string) string {
	line := strings.TrimSpace(errText)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	runes := []rune(line)
	if len(runes) <= rootCauseMaxLen {
		return line
	}
	return string(runes[:rootCauseMaxLen-3]) + "..."
}
