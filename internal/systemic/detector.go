// Package systemic surfaces cross-cutting signals over a whole cluster set:
// situations where many apparently distinct failures likely share one
// underlying cause. Each heuristic is independent; several warnings may
// co-occur.
package systemic

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/kamilpajak/mendeleev/pkg/models"
)

const (
	volumeThreshold       = 6
	cascadeMinFailures    = 3
	cascadeMinTests       = 2
	keywordShareThreshold = 0.7
	libraryShareThreshold = 0.7
	featureShareThreshold = 0.6
	envShareThreshold     = 0.7
	minClustersForShare   = 3
	minFailuresForShare   = 3
	minTestsForShare      = 3
)

// stopwords are test-name tokens that carry no feature information.
var featureStopwords = map[string]struct{}{
	"test": {}, "check": {}, "verify": {}, "validate": {}, "should": {}, "can": {},
}

// environmentVocabulary is the fixed set of deployment tokens checked by the
// common-environment heuristic.
var environmentVocabulary = []string{
	"esxi", "vmware", "azure", "aws", "kubernetes", "k8s",
	"docker", "windows", "linux", "production", "staging",
}

var tokenRe = regexp.MustCompile(`[A-Za-z][A-Za-z0-9]+`)

// Detect runs all six heuristics over the cluster set and returns
// human-readable warnings, in fixed heuristic order.
func Detect(clusters map[string]*models.FailureCluster) []string {
	var warnings []string

	if w := checkVolume(clusters); w != "" {
		warnings = append(warnings, w)
	}
	if w := checkCascade(clusters); w != "" {
		warnings = append(warnings, w)
	}
	if w := checkCommonKeyword(clusters); w != "" {
		warnings = append(warnings, w)
	}
	if w := checkCommonLibrary(clusters); w != "" {
		warnings = append(warnings, w)
	}
	if w := checkCommonFeature(clusters); w != "" {
		warnings = append(warnings, w)
	}
	if w := checkCommonEnvironment(clusters); w != "" {
		warnings = append(warnings, w)
	}
	return warnings
}

func checkVolume(clusters map[string]*models.FailureCluster) string {
	if len(clusters) < volumeThreshold {
		return ""
	}
	return fmt.Sprintf("High issue volume: %d distinct failure clusters in one run suggests a systemic regression rather than isolated breakage", len(clusters))
}

// checkCascade looks for an initial failure followed by failures of other
// tests, the signature of one broken dependency taking the rest down.
func checkCascade(clusters map[string]*models.FailureCluster) string {
	type stamped struct {
		test string
		at   time.Time
	}
	var failures []stamped
	for _, cl := range clusters {
		for _, f := range cl.Failures {
			if !f.Timestamp.IsZero() {
				failures = append(failures, stamped{test: f.Name, at: f.Timestamp})
			}
		}
	}
	if len(failures) < cascadeMinFailures {
		return ""
	}

	earliest := failures[0]
	for _, f := range failures[1:] {
		if f.at.Before(earliest.at) {
			earliest = f
		}
	}
	after := make(map[string]struct{})
	for _, f := range failures {
		if f.at.After(earliest.at) {
			after[f.test] = struct{}{}
		}
	}
	if len(after) < cascadeMinTests {
		return ""
	}
	return fmt.Sprintf("Possible cascade: %d tests failed after the initial failure of %q; the first failure may have broken shared state", len(after), earliest.test)
}

func checkCommonKeyword(clusters map[string]*models.FailureCluster) string {
	if len(clusters) < minClustersForShare {
		return ""
	}
	counts := make(map[string]int)
	for _, cl := range clusters {
		for _, kw := range cl.Keywords {
			counts[kw]++
		}
	}
	keyword, count := topEntry(counts)
	if keyword == "" || float64(count)/float64(len(clusters)) < keywordShareThreshold {
		return ""
	}
	return fmt.Sprintf("Common step %q appears in %d of %d clusters; the step itself may be at fault", keyword, count, len(clusters))
}

func checkCommonLibrary(clusters map[string]*models.FailureCluster) string {
	total := 0
	counts := make(map[string]int)
	for _, cl := range clusters {
		for _, f := range cl.Failures {
			total++
			if f.Library != "" {
				counts[f.Library]++
			}
		}
	}
	if total < minFailuresForShare {
		return ""
	}
	library, count := topEntry(counts)
	if library == "" || float64(count)/float64(total) < libraryShareThreshold {
		return ""
	}
	return fmt.Sprintf("Library %q is involved in %d of %d failures; suspect a regression in that library or its integration", library, count, total)
}

func checkCommonFeature(clusters map[string]*models.FailureCluster) string {
	names := distinctTestNames(clusters)
	if len(names) < minTestsForShare {
		return ""
	}

	counts := make(map[string]int)
	for _, name := range names {
		for token := range featureTokens(name) {
			counts[token]++
		}
	}

	var qualifying []string
	for token, count := range counts {
		if float64(count)/float64(len(names)) >= featureShareThreshold {
			qualifying = append(qualifying, token)
		}
	}
	if len(qualifying) == 0 {
		return ""
	}
	sort.Slice(qualifying, func(i, j int) bool {
		if counts[qualifying[i]] != counts[qualifying[j]] {
			return counts[qualifying[i]] > counts[qualifying[j]]
		}
		return qualifying[i] < qualifying[j]
	})
	if len(qualifying) > 2 {
		qualifying = qualifying[:2]
	}
	return fmt.Sprintf("Failures concentrate on feature area(s): %s", strings.Join(qualifying, ", "))
}

func checkCommonEnvironment(clusters map[string]*models.FailureCluster) string {
	names := distinctTestNames(clusters)
	if len(names) < minTestsForShare {
		return ""
	}
	for _, env := range environmentVocabulary {
		count := 0
		for _, name := range names {
			if strings.Contains(strings.ToLower(name), env) {
				count++
			}
		}
		if float64(count)/float64(len(names)) >= envShareThreshold {
			return fmt.Sprintf("Environment token %q appears in %d of %d failing tests; the environment itself may be degraded", env, count, len(names))
		}
	}
	return ""
}

// featureTokens extracts candidate feature tokens from one test name,
// dropping stopwords and short fragments.
func featureTokens(name string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, raw := range tokenRe.FindAllString(name, -1) {
		token := strings.ToLower(raw)
		if len(token) <= 2 {
			continue
		}
		if _, stop := featureStopwords[token]; stop {
			continue
		}
		tokens[token] = struct{}{}
	}
	return tokens
}

func distinctTestNames(clusters map[string]*models.FailureCluster) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, cl := range clusters {
		for _, t := range cl.Tests {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				names = append(names, t)
			}
		}
	}
	sort.Strings(names)
	return names
}

// topEntry returns the highest-count key, breaking ties alphabetically so
// warnings are deterministic.
func topEntry(counts map[string]int) (string, int) {
	best, bestCount := "", 0
	for k, c := range counts {
		if c > bestCount || (c == bestCount && (best == "" || k < best)) {
			best, bestCount = k, c
		}
	}
	return best, bestCount
}
