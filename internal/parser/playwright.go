package parser

import (
	"encoding/json"
	"fmt"

	"github.com/kamilpajak/mendeleev/pkg/models"
)

// playwrightReport represents the raw Playwright JSON structure
type playwrightReport struct {
	Suites []playwrightSuite `json:"suites"`
	Stats  playwrightStats   `json:"stats"`
}

type playwrightStats struct {
	Expected   int `json:"expected"`
	Unexpected int `json:"unexpected"`
	Flaky      int `json:"flaky"`
	Skipped    int `json:"skipped"`
	// Blob format uses these
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

type playwrightSuite struct {
	Title  string            `json:"title"`
	File   string            `json:"file"`
	Specs  []playwrightSpec  `json:"specs"`
	Suites []playwrightSuite `json:"suites"`
}

type playwrightSpec struct {
	Title string           `json:"title"`
	File  string           `json:"file"`
	Line  int              `json:"line"`
	OK    *bool            `json:"ok"`
	Tests []playwrightTest `json:"tests"`
}

type playwrightTest struct {
	Status  string             `json:"status"`
	Results []playwrightResult `json:"results"`
}

type playwrightResult struct {
	Status   string            `json:"status"`
	Duration int64             `json:"duration"`
	Errors   []playwrightError `json:"errors"`
}

type playwrightError struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

// ParsePlaywright parses a Playwright JSON report, accepting both the JSON
// reporter layout (expected/unexpected) and the blob layout (passed/failed).
func ParsePlaywright(data []byte) (*models.Report, error) {
	var raw playwrightReport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse playwright report: %w", err)
	}

	passed := raw.Stats.Passed
	if passed == 0 {
		passed = raw.Stats.Expected
	}
	failed := raw.Stats.Failed
	if failed == 0 {
		failed = raw.Stats.Unexpected + raw.Stats.Flaky
	}
	total := raw.Stats.Total
	if total == 0 {
		total = passed + failed + raw.Stats.Skipped
	}

	report := &models.Report{
		Framework:    string(FormatPlaywright),
		TotalTests:   total,
		PassedTests:  passed,
		FailedTests:  failed,
		SkippedTests: raw.Stats.Skipped,
		Suites:       make([]models.TestSuite, 0, len(raw.Suites)),
	}
	for _, suite := range raw.Suites {
		report.Suites = append(report.Suites, normalizePlaywrightSuite(suite))
	}
	return report, nil
}

func normalizePlaywrightSuite(raw playwrightSuite) models.TestSuite {
	suite := models.TestSuite{
		Name:     raw.Title,
		FilePath: raw.File,
		Tests:    make([]models.TestCase, 0),
		Suites:   make([]models.TestSuite, 0),
	}
	for _, spec := range raw.Specs {
		if test := normalizePlaywrightSpec(spec); test != nil {
			suite.Tests = append(suite.Tests, *test)
		}
	}
	for _, nested := range raw.Suites {
		suite.Suites = append(suite.Suites, normalizePlaywrightSuite(nested))
	}
	return suite
}

// normalizePlaywrightSpec reduces a spec to one test case using the last
// result of its first test, the retry that decided the spec's outcome.
func normalizePlaywrightSpec(spec playwrightSpec) *models.TestCase {
	if len(spec.Tests) == 0 {
		return nil
	}
	test := spec.Tests[0]
	if len(test.Results) == 0 {
		return nil
	}
	result := test.Results[len(test.Results)-1]

	tc := &models.TestCase{
		Name:       spec.Title,
		FilePath:   spec.File,
		LineNumber: spec.Line,
		DurationMS: result.Duration,
	}
	switch result.Status {
	case "passed":
		tc.Status = models.StatusPassed
	case "skipped":
		tc.Status = models.StatusSkipped
	default:
		tc.Status = models.StatusFailed
	}
	if len(result.Errors) > 0 {
		tc.ErrorMessage = result.Errors[0].Message
		tc.ErrorStack = result.Errors[0].Stack
	}
	return tc
}
