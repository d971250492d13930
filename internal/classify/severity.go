// Package classify assigns severity tiers and ownership domains to failures
// using ordered, static rule tables. Classification is deterministic: the
// tables are compiled once at package init and evaluated first-match-wins.
package classify

import (
	"strings"

	"github.com/kamilpajak/mendeleev/pkg/models"
)

// HTTP status tables. A status code, when present, outranks every text
// pattern: a 500 "gateway timeout" is critical, not medium.
var severityByStatus = map[int]models.Severity{
	500: models.SeverityCritical,
	501: models.SeverityCritical,
	507: models.SeverityCritical,
	508: models.SeverityCritical,
	511: models.SeverityCritical,

	502: models.SeverityHigh,
	503: models.SeverityHigh,
	504: models.SeverityHigh,
	400: models.SeverityHigh,
	401: models.SeverityHigh,
	403: models.SeverityHigh,
	404: models.SeverityHigh,
	409: models.SeverityHigh,
	422: models.SeverityHigh,

	408: models.SeverityMedium,
	429: models.SeverityMedium,
}

var criticalPatterns = []string{
	"crash",
	"core dump",
	"segfault",
	"segmentation fault",
	"fatal",
	"out of memory",
	"stack overflow",
	"data corruption",
	"integrity violation",
	"unauthorized",
	"permission denied",
	"access denied",
	"security violation",
	"system down",
	"service unavailable - critical",
	"service unavailable critical",
	"http 500",
	"internal server error",
}

var highPatterns = []string{
	"assertion",
	"expected but was",
	"validation fail",
	"element not found",
	"no such element",
	"locator",
	"operation failed",
	"command failed",
	"execution failed",
	"http 400",
	"http 401",
	"http 402",
	"http 403",
	"http 404",
	"sql error",
	"deadlock",
	"constraint violation",
	"business rule",
	"invalid state",
}

var mediumPatterns = []string{
	"timeout",
	"timed out",
	"connection refused",
	"cannot connect",
	"connection reset",
	"network error",
	"dns error",
	"service unavailable",
	"gateway timeout",
	"retry exceeded",
	"rate limit",
	"throttled",
}

var lowPatterns = []string{
	"warning",
	"deprecat",
	"skipped",
	"ignored",
	"informational",
	"redirect",
	"moved permanently",
}

// Severity maps an error to one of the four severity tiers. Precedence:
// HTTP status first, then critical, high, medium, and low text patterns over
// the combined error and keyword text. Anything unclassified defaults to
// high so unknown failures are never silently downgraded.
func Severity(errText, keywordName string, httpStatus int) models.Severity {
	if httpStatus != 0 {
		if sev, ok := severityByStatus[httpStatus]; ok {
			return sev
		}
		if httpStatus >= 300 && httpStatus <= 308 {
			return models.SeverityLow
		}
	}

	text := strings.ToLower(errText)
	if keywordName != "" {
		text += " " + strings.ToLower(keywordName)
	}

	switch {
	case containsAny(text, criticalPatterns):
		return models.SeverityCritical
	case containsAny(text, highPatterns):
		return models.SeverityHigh
	case containsAny(text, mediumPatterns):
		return models.SeverityMedium
	case containsAny(text, lowPatterns):
		return models.SeverityLow
	default:
		return models.SeverityHigh
	}
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
