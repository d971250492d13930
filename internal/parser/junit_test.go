package parser

import (
	"testing"

	"github.com/kamilpajak/mendeleev/pkg/models"
)

const junitSample = `<?xml version="1.0" encoding="UTF-8"?>
<testsuites>
	<testsuite name="checkout" tests="3" failures="1" errors="1" time="4.5">
		<testcase classname="checkout.cart" name="test_add_item" time="1.2"/>
		<testcase classname="checkout.cart" name="test_remove_item" time="0.8">
			<failure message="Element #btn-123 not found" type="NoSuchElementException">stack line one
stack line two</failure>
		</testcase>
		<testcase classname="checkout.payment" name="test_charge" time="2.5">
			<error>ConnectionError: connection refused
at charge (payment.py:10)</error>
		</testcase>
	</testsuite>
	<testsuite name="auth" tests="1" skipped="1" time="0.1">
		<testcase classname="auth.login" name="test_login" time="0.1">
			<skipped message="not configured"/>
		</testcase>
	</testsuite>
</testsuites>`

func TestParseJUnit(t *testing.T) {
	report, err := ParseJUnit([]byte(junitSample))
	if err != nil {
		t.Fatalf("ParseJUnit() error = %v", err)
	}

	if report.Framework != "junit" {
		t.Errorf("Framework = %q, want junit", report.Framework)
	}
	if report.TotalTests != 4 {
		t.Errorf("TotalTests = %d, want 4", report.TotalTests)
	}
	if report.PassedTests != 1 || report.FailedTests != 2 || report.SkippedTests != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1",
			report.PassedTests, report.FailedTests, report.SkippedTests)
	}
	if len(report.Suites) != 2 {
		t.Fatalf("Suites = %d, want 2", len(report.Suites))
	}

	failed := report.Suites[0].Tests[1]
	if failed.Status != models.StatusFailed {
		t.Errorf("Status = %q, want failed", failed.Status)
	}
	if failed.Name != "checkout.cart.test_remove_item" {
		t.Errorf("Name = %q", failed.Name)
	}
	if failed.ErrorMessage != "NoSuchElementException: Element #btn-123 not found" {
		t.Errorf("ErrorMessage = %q", failed.ErrorMessage)
	}
	if failed.ErrorStack == "" {
		t.Error("ErrorStack should carry the element body")
	}

	errored := report.Suites[0].Tests[2]
	if errored.Status != models.StatusFailed {
		t.Errorf("error element should mark the case failed, got %q", errored.Status)
	}
	// No message attribute: first body line stands in.
	if errored.ErrorMessage != "ConnectionError: connection refused" {
		t.Errorf("ErrorMessage = %q", errored.ErrorMessage)
	}
}

func TestParseJUnitBareSuiteRoot(t *testing.T) {
	data := []byte(`<testsuite name="solo" tests="1">
		<testcase name="test_one">
			<failure message="boom"/>
		</testcase>
	</testsuite>`)

	report, err := ParseJUnit(data)
	if err != nil {
		t.Fatalf("ParseJUnit() error = %v", err)
	}
	if len(report.Suites) != 1 || report.Suites[0].Name != "solo" {
		t.Fatalf("bare testsuite root not handled: %+v", report.Suites)
	}
	if report.FailedTests != 1 {
		t.Errorf("FailedTests = %d, want 1", report.FailedTests)
	}
}

func TestParseJUnitNestedSuites(t *testing.T) {
	data := []byte(`<testsuites>
		<testsuite name="outer">
			<testsuite name="inner">
				<testcase name="test_deep">
					<failure message="deep failure"/>
				</testcase>
			</testsuite>
		</testsuite>
	</testsuites>`)

	report, err := ParseJUnit(data)
	if err != nil {
		t.Fatalf("ParseJUnit() error = %v", err)
	}
	records := report.FailureRecords()
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].KeywordName != "inner" {
		t.Errorf("KeywordName = %q, want inner", records[0].KeywordName)
	}
}

func TestParseJUnitInvalid(t *testing.T) {
	if _, err := ParseJUnit([]byte("<not-xml")); err == nil {
		t.Fatal("expected error for invalid XML")
	}
	if _, err := ParseJUnit([]byte(`<testsuites></testsuites>`)); err == nil {
		t.Fatal("expected error for empty testsuites")
	}
}
