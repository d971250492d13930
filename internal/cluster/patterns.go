package cluster

import "strings"

// errorPatternCatalogue maps recognized pattern labels to the substrings
// that evidence them in a cluster's combined lower-cased error text. The
// catalogue is fixed and scanned in declaration order so pattern lists are
// deterministic.
var errorPatternCatalogue = []struct {
	label      string
	substrings []string
}{
	{"element not found", []string{"element not found", "no such element", "elementnotfound"}},
	{"timeout", []string{"timeout", "timed out"}},
	{"connection refused", []string{"connection refused"}},
	{"assertion failure", []string{"assertion", "expected"}},
	{"null reference", []string{"nullpointer", "null reference", "nonetype", "null"}},
	{"index out of bounds", []string{"index out of", "indexerror"}},
	{"http 404", []string{"404"}},
	{"http 500", []string{"500"}},
	{"http 503", []string{"503"}},
}

// fixAdvice maps trigger keywords to advisory fixes, first match wins.
var fixAdvice = []struct {
	triggers []string
	advice   string
}{
	{[]string{"element"}, "Review element locators; the UI may have changed"},
	{[]string{"timeout", "timed out"}, "Raise operation timeouts or investigate slow responses"},
	{[]string{"connection", "network"}, "Check connectivity between the test runner and the target service"},
	{[]string{"assertion", "expected"}, "Review test expectations against current product behavior"},
	{[]string{"null", "none"}, "Add null checks before dereferencing"},
}

// DetectErrorPatterns returns the catalogue labels evidenced by the given
// combined error text, in catalogue order.
func DetectErrorPatterns(combined string) []string {
	var labels []string
	for _, entry := range errorPatternCatalogue {
		for _, s := range entry.substrings {
			if strings.Contains(combined, s) {
				labels = append(labels, entry.label)
				break
			}
		}
	}
	return labels
}

// SuggestFix returns advisory text for the first matching trigger keyword,
// or an empty string when nothing in the catalogue applies.
func SuggestFix(combined string) string {
	for _, entry := range fixAdvice {
		for _, t := range entry.triggers {
			if strings.Contains(combined, t) {
				return entry.advice
			}
		}
	}
	return ""
}
