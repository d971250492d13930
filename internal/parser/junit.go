package parser

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/kamilpajak/mendeleev/pkg/models"
)

// junitSuites is the <testsuites> root; some producers emit a bare
// <testsuite> root instead, which is handled as a single-suite document.
type junitSuites struct {
	XMLName xml.Name     `xml:"testsuites"`
	Suites  []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name     string       `xml:"name,attr"`
	Tests    int          `xml:"tests,attr"`
	Failures int          `xml:"failures,attr"`
	Errors   int          `xml:"errors,attr"`
	Skipped  int          `xml:"skipped,attr"`
	Time     float64      `xml:"time,attr"`
	Cases    []junitCase  `xml:"testcase"`
	Suites   []junitSuite `xml:"testsuite"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	File      string        `xml:"file,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *junitOutcome `xml:"failure"`
	Error     *junitOutcome `xml:"error"`
	Skipped   *junitOutcome `xml:"skipped"`
}

type junitOutcome struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// ParseJUnit parses a JUnit XML report.
func ParseJUnit(data []byte) (*models.Report, error) {
	var root junitSuites
	if err := xml.Unmarshal(data, &root); err != nil {
		// Retry with a bare <testsuite> root.
		var single junitSuite
		if err2 := xml.Unmarshal(data, &single); err2 != nil {
			return nil, fmt.Errorf("failed to parse junit report: %w", err)
		}
		root.Suites = []junitSuite{single}
	}
	if len(root.Suites) == 0 {
		return nil, fmt.Errorf("junit report contains no test suites")
	}

	report := &models.Report{Framework: string(FormatJUnit)}
	for _, raw := range root.Suites {
		suite := normalizeJUnitSuite(raw, report)
		report.Suites = append(report.Suites, suite)
	}
	return report, nil
}

func normalizeJUnitSuite(raw junitSuite, report *models.Report) models.TestSuite {
	suite := models.TestSuite{Name: raw.Name}
	report.DurationMS += int64(raw.Time * 1000)

	for _, c := range raw.Cases {
		tc := models.TestCase{
			Name:       caseName(c),
			FilePath:   c.File,
			DurationMS: int64(c.Time * 1000),
		}
		outcome := c.Failure
		if outcome == nil {
			outcome = c.Error
		}
		switch {
		case outcome != nil:
			tc.Status = models.StatusFailed
			tc.ErrorMessage = outcomeMessage(outcome)
			tc.ErrorStack = strings.TrimSpace(outcome.Body)
			report.FailedTests++
		case c.Skipped != nil:
			tc.Status = models.StatusSkipped
			report.SkippedTests++
		default:
			tc.Status = models.StatusPassed
			report.PassedTests++
		}
		report.TotalTests++
		suite.Tests = append(suite.Tests, tc)
	}
	for _, nested := range raw.Suites {
		suite.Suites = append(suite.Suites, normalizeJUnitSuite(nested, report))
	}
	return suite
}

func caseName(c junitCase) string {
	if c.ClassName != "" {
		return c.ClassName + "." + c.Name
	}
	return c.Name
}

// outcomeMessage prefers the message attribute, falling back to the first
// line of the element body.
func outcomeMessage(o *junitOutcome) string {
	msg := strings.TrimSpace(o.Message)
	if msg != "" {
		if o.Type != "" && !strings.Contains(msg, o.Type) {
			return o.Type + ": " + msg
		}
		return msg
	}
	body := strings.TrimSpace(o.Body)
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = strings.TrimSpace(body[:i])
	}
	return body
}
