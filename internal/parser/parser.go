// Package parser converts raw framework report files into the normalized
// models.Report the pipeline consumes. Supported formats: Playwright JSON
// (both the JSON reporter and blob stat layouts) and JUnit XML.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kamilpajak/mendeleev/pkg/models"
)

// Format identifies a supported report format.
type Format string

const (
	FormatPlaywright Format = "playwright"
	FormatJUnit      Format = "junit"
	FormatUnknown    Format = "unknown"
)

// Detect inspects report content to determine its format. JSON documents
// with a "suites" key are Playwright; XML documents with a testsuite root
// are JUnit.
func Detect(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatUnknown
	}

	if trimmed[0] == '{' {
		var generic map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &generic); err != nil {
			return FormatUnknown
		}
		if _, ok := generic["suites"]; ok {
			return FormatPlaywright
		}
		return FormatUnknown
	}

	if trimmed[0] == '<' {
		if bytes.Contains(trimmed, []byte("<testsuite")) {
			return FormatJUnit
		}
	}
	return FormatUnknown
}

// Parse detects the format and parses accordingly. An explicit format skips
// detection.
func Parse(data []byte, format Format) (*models.Report, error) {
	if format == "" || format == FormatUnknown {
		format = Detect(data)
	}
	switch format {
	case FormatPlaywright:
		return ParsePlaywright(data)
	case FormatJUnit:
		return ParseJUnit(data)
	default:
		return nil, fmt.Errorf("unrecognized report format")
	}
}
