package models

import "strconv"

// TestStatus represents the status of a test case
type TestStatus string

const (
	StatusPassed  TestStatus = "passed"
	StatusFailed  TestStatus = "failed"
	StatusSkipped TestStatus = "skipped"
)

// TestCase represents a single test result
type TestCase struct {
	Name         string     `json:"name"`
	Status       TestStatus `json:"status"`
	DurationMS   int64      `json:"duration_ms,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	ErrorStack   string     `json:"error_stack,omitempty"`
	FilePath     string     `json:"file_path,omitempty"`
	LineNumber   int        `json:"line_number,omitempty"`
}

// TestSuite represents a collection of test cases
type TestSuite struct {
	Name     string      `json:"name"`
	Tests    []TestCase  `json:"tests"`
	Suites   []TestSuite `json:"suites,omitempty"`
	FilePath string      `json:"file_path,omitempty"`
}

// Report represents a normalized test report
type Report struct {
	Framework    string      `json:"framework"`
	TotalTests   int         `json:"total_tests"`
	PassedTests  int         `json:"passed_tests"`
	FailedTests  int         `json:"failed_tests"`
	SkippedTests int         `json:"skipped_tests"`
	DurationMS   int64       `json:"duration_ms,omitempty"`
	Suites       []TestSuite `json:"suites"`
}

// HasFailures returns true if the report contains any failures
func (r *Report) HasFailures() bool {
	return r.FailedTests > 0
}

// FailureRecords flattens the report's failed test cases into the records the
// clustering pipeline consumes. The owning suite's name becomes the keyword
// (sub-step) of each record; file and line travel in metadata.
func (r *Report) FailureRecords() []FailureRecord {
	var records []FailureRecord
	for _, suite := range r.Suites {
		records = append(records, collectFailureRecords(suite, r.Framework)...)
	}
	return records
}

func collectFailureRecords(suite TestSuite, framework string) []FailureRecord {
	var records []FailureRecord
	for _, test := range suite.Tests {
		if test.Status != StatusFailed {
			continue
		}
		meta := map[string]string{"framework": framework}
		if test.FilePath != "" {
			meta["file"] = test.FilePath
		}
		if test.LineNumber > 0 {
			meta["line"] = strconv.Itoa(test.LineNumber)
		}
		records = append(records, FailureRecord{
			Name:        test.Name,
			KeywordName: suite.Name,
			Error:       test.ErrorMessage,
			StackTrace:  test.ErrorStack,
			Metadata:    meta,
		})
	}
	for _, nested := range suite.Suites {
		records = append(records, collectFailureRecords(nested, framework)...)
	}
	return records
}
