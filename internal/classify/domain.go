package classify

import (
	"regexp"
	"strings"

	"github.com/kamilpajak/mendeleev/pkg/models"
)

// Domain rule tables, evaluated in order over the concatenated lower-cased
// error text, stack trace, and library name. Word-boundary-sensitive rules
// use regexes; the rest are plain substrings.
var infraRes = []*regexp.Regexp{
	regexp.MustCompile(`\bssh\b`),
	regexp.MustCompile(`\bvms?\b`),
	regexp.MustCompile(`virtual machine`),
	regexp.MustCompile(`host (?:is )?unreachable`),
	regexp.MustCompile(`no route to host`),
	regexp.MustCompile(`connection refused`),
	regexp.MustCompile(`dns (?:resolution|lookup)`),
	regexp.MustCompile(`port .{0,12}(?:closed|blocked)`),
	regexp.MustCompile(`(?:cloud )?resource not found`),
}

var environmentPatterns = []string{
	"missing config",
	"configuration not found",
	"env var",
	"environment variable",
	"file not found",
	"no such file",
	"module not found",
	"modulenotfound",
	"import error",
	"importerror",
	"missing credential",
	"missing propert",
	"bootstrap fail",
}

var automationPatterns = []string{
	"indexerror",
	"index out of",
	"keyerror",
	"attributeerror",
	"typeerror",
	"nameerror",
	"nullpointer",
	"null pointer",
	"element not found",
	"no such element",
	"stale element",
	"locator",
	"webdriver",
	"selenium",
	"hook failed",
	"teardown failed",
}

// Locator failures usually carry the selector between "element" and "not
// found", so the contiguous substrings above miss them.
var elementNotFoundRe = regexp.MustCompile(`element\b.{0,40}\bnot found`)

// Test source files in a stack trace mark the failure as automation-owned
// even when no automation text pattern matches.
var testSourceRe = regexp.MustCompile(`test_\w+\.py|\w+_test\.py|\w+_test\.go|\.spec\.\w+|conftest\.py`)

var productPatterns = []string{
	"http 4",
	"http 5",
	"status code 4",
	"status code 5",
	"api error",
	"api request failed",
	"endpoint",
	"service error",
	"business",
	"database",
	"db error",
	"auth",
	"session",
	"timeout",
}

// Domain maps a failure to its ownership domain. A literal "fixture" mention
// wins outright, because fixture setup failures otherwise collide with the
// environment table's setup/config wording. Product patterns are only
// consulted when nothing marked the failure as automation-origin, so
// automation bugs are never miscredited to the product team.
func Domain(errText, stackTrace, library string) models.Domain {
	text := strings.ToLower(errText)
	if stackTrace != "" {
		text += " " + strings.ToLower(stackTrace)
	}
	if library != "" {
		text += " " + strings.ToLower(library)
	}

	if strings.Contains(text, "fixture") {
		return models.DomainTestAutomation
	}
	for _, re := range infraRes {
		if re.MatchString(text) {
			return models.DomainInfrastructure
		}
	}
	if containsAny(text, environmentPatterns) {
		return models.DomainEnvironment
	}
	if containsAny(text, automationPatterns) || elementNotFoundRe.MatchString(text) || testSourceRe.MatchString(text) {
		return models.DomainTestAutomation
	}
	if containsAny(text, productPatterns) {
		return models.DomainProduct
	}
	return models.DomainUnknown
}
