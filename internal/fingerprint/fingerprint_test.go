package fingerprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "element id placeholder",
			input:    "Element #btn-123 not found",
			expected: "element <id> not found",
		},
		{
			name:     "millisecond counts collapse",
			input:    "Timeout 30000ms exceeded",
			expected: "timeout <ms> exceeded",
		},
		{
			name:     "absolute timestamp",
			input:    "failed at 2024-01-02 03:04:05 during setup",
			expected: "failed at <timestamp> during setup",
		},
		{
			name:     "bare clock time",
			input:    "retry at 12:34:56.789",
			expected: "retry at <time>",
		},
		{
			name:     "url before path",
			input:    "GET https://example.com/api/users failed",
			expected: "get <url> failed",
		},
		{
			name:     "filesystem path",
			input:    "cannot open /var/log/app.log",
			expected: "cannot open <path>",
		},
		{
			name:     "line reference",
			input:    "syntax error on line 42",
			expected: "syntax error on <line>",
		},
		{
			name:     "hex address",
			input:    "panic at 0xdeadbeef",
			expected: "panic at <addr>",
		},
		{
			name:     "ui element nouns collapse",
			input:    "the Button inside the dropdown is gone",
			expected: "the <element> inside the <element> is gone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestComputeStable(t *testing.T) {
	fp1 := Compute("Element #btn-123 not found", "", 0)
	fp2 := Compute("Element #btn-123 not found", "", 0)
	assert.Equal(t, fp1, fp2)
	assert.Len(t, fp1, 32)
}

func TestComputeCollapsesVolatileDetail(t *testing.T) {
	fp1 := Compute("Element #btn-123 not found", "", 0)
	fp2 := Compute("Element #btn-456 not found", "", 0)
	assert.Equal(t, fp1, fp2, "ids should not split clusters")

	fp3 := Compute("Timeout 30000ms exceeded", "", 0)
	fp4 := Compute("Timeout 45000ms exceeded", "", 0)
	assert.Equal(t, fp3, fp4, "durations should not split clusters")

	assert.NotEqual(t, fp1, fp3, "distinct error shapes must differ")
}

func TestComputeDistinguishesInputs(t *testing.T) {
	base := Compute("something broke", "", 0)

	withStatus := Compute("something broke", "", 500)
	assert.NotEqual(t, base, withStatus, "http status contributes")

	withFrame := Compute("something broke", "at com.example.Checkout(checkout.java:10)", 0)
	assert.NotEqual(t, base, withFrame, "top stack frame contributes")
}

func TestComputeIgnoresDeepFrames(t *testing.T) {
	top := "at com.example.Checkout(checkout.java:10)"
	fp1 := Compute("boom", top+"\nat com.example.Cart(cart.java:22)", 0)
	fp2 := Compute("boom", top+"\nat com.example.Other(other.java:99)", 0)
	assert.Equal(t, fp1, fp2, "only the top frame participates")
}

func TestComputeTruncatesLongMessages(t *testing.T) {
	base := strings.Repeat("x", 250)
	fp1 := Compute(base+" tail one", "", 0)
	fp2 := Compute(base+" tail two", "", 0)
	assert.Equal(t, fp1, fp2, "detail past the prefix is ignored")
}

func TestTopStackFrame(t *testing.T) {
	assert.Equal(t, "", topStackFrame(""))
	assert.Equal(t, "", topStackFrame("no frames here"))
	assert.Equal(t, "com.example.checkout", topStackFrame("at com.example.Checkout (checkout.java:10)"))
}
