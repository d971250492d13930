package cluster

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kamilpajak/mendeleev/pkg/models"
)

// BuildParallel clusters records across worker goroutines and merges the
// partial results. Clustering is a commutative fold grouping purely by
// fingerprint, so partitioning is safe; the merge re-derives counts, tests,
// and keywords and re-applies deduplication across partition boundaries.
// The result is identical to a single-threaded Build over the same records.
func BuildParallel(ctx context.Context, records []models.FailureRecord, opts Options, workers int) (Result, error) {
	if workers <= 1 || len(records) < workers*2 {
		return Build(records, opts), nil
	}

	chunks := partition(records, workers)
	partials := make([]Result, len(chunks))

	g, _ := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			// Dedup and size filtering are deferred to the merge;
			// per-partition dedup would miss duplicates that landed in
			// different partitions.
			partials[i] = Build(chunk, Options{Deduplicate: false})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return merge(partials, opts), nil
}

// merge folds partial results in partition order, so first-seen semantics
// (root cause, severity, domain from the first failure of a fingerprint)
// match the sequential fold.
func merge(partials []Result, opts Options) Result {
	res := Result{Clusters: make(map[string]*models.FailureCluster)}
	seen := make(map[dedupKey]struct{})

	for _, p := range partials {
		res.Skipped += p.Skipped
		res.Valid += p.Valid
	}
	for _, p := range partials {
		for fp, partial := range p.Clusters {
			for _, cf := range partial.Failures {
				if opts.Deduplicate {
					key := dedupKey{fp, cf.Name, cf.KeywordName}
					if _, dup := seen[key]; dup {
						res.Duplicates++
						continue
					}
					seen[key] = struct{}{}
				}
				cl, ok := res.Clusters[fp]
				if !ok {
					cl = &models.FailureCluster{
						Fingerprint: fp,
						RootCause:   partial.RootCause,
						Severity:    partial.Severity,
						Domain:      partial.Domain,
					}
					res.Clusters[fp] = cl
				}
				appendFailure(cl, cf)
			}
		}
	}

	finalize(res.Clusters, opts.MinClusterSize)
	return res
}

func partition(records []models.FailureRecord, n int) [][]models.FailureRecord {
	size := (len(records) + n - 1) / n
	var chunks [][]models.FailureRecord
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		chunks = append(chunks, records[start:end])
	}
	return chunks
}
