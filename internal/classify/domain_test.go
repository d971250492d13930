package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kamilpajak/mendeleev/pkg/models"
)

func TestDomainFixtureWinsOutright(t *testing.T) {
	// Without the fixture rule this would classify as environment.
	assert.Equal(t, models.DomainTestAutomation, Domain("fixture setup failed: file not found", "", ""))
}

func TestDomainInfrastructure(t *testing.T) {
	tests := []string{
		"ssh handshake failed",
		"VM did not boot within deadline",
		"host is unreachable",
		"no route to host 10.0.0.5",
		"connection refused by gateway",
		"DNS resolution failed for internal zone",
	}
	for _, errText := range tests {
		assert.Equal(t, models.DomainInfrastructure, Domain(errText, "", ""), "%q", errText)
	}
}

func TestDomainEnvironment(t *testing.T) {
	tests := []string{
		"ModuleNotFoundError: No module named requests",
		"environment variable DB_URL is not set",
		"missing credentials for registry",
		"bootstrap failed before suite start",
	}
	for _, errText := range tests {
		assert.Equal(t, models.DomainEnvironment, Domain(errText, "", ""), "%q", errText)
	}
}

func TestDomainTestAutomation(t *testing.T) {
	tests := []string{
		"NullPointerException while reading page object",
		"stale element reference: element is not attached",
		"IndexError: list index out of range",
		"teardown failed after scenario",
	}
	for _, errText := range tests {
		assert.Equal(t, models.DomainTestAutomation, Domain(errText, "", ""), "%q", errText)
	}
}

func TestDomainElementLocatorWithSelector(t *testing.T) {
	// The selector token sits between "element" and "not found"; the failure
	// is still locator-owned.
	tests := []string{
		"Element #btn-123 not found",
		"Element '#login-form .submit' not found",
		"element [data-test=checkout] not found after 3 retries",
	}
	for _, errText := range tests {
		assert.Equal(t, models.DomainTestAutomation, Domain(errText, "", ""), "%q", errText)
	}
}

func TestDomainTestSourceInStackTrace(t *testing.T) {
	// No automation text pattern matches, but the stack points at test code.
	got := Domain("unexpected value in response", `File "checkout_test.py", line 42`, "")
	assert.Equal(t, models.DomainTestAutomation, got)
}

func TestDomainProduct(t *testing.T) {
	tests := []string{
		"API error: status code 500 from /orders",
		"endpoint returned malformed payload",
		"database constraint rejected the order",
	}
	for _, errText := range tests {
		assert.Equal(t, models.DomainProduct, Domain(errText, "", ""), "%q", errText)
	}
}

func TestDomainAutomationBeatsProduct(t *testing.T) {
	// Both tables match; automation precedence keeps the blame off the product.
	got := Domain("locator timeout while polling endpoint", "", "")
	assert.Equal(t, models.DomainTestAutomation, got)
}

func TestDomainLibraryContributes(t *testing.T) {
	assert.Equal(t, models.DomainTestAutomation, Domain("wait condition never satisfied", "", "SeleniumLibrary"))
}

func TestDomainUnknown(t *testing.T) {
	assert.Equal(t, models.DomainUnknown, Domain("complete mystery", "", ""))
}
