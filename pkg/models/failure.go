package models

import "time"

// Severity is the impact tier assigned to a failure cluster.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank orders severities for sorting; lower is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// Domain is the ownership classification of a failure: which team should
// look at it first.
type Domain string

const (
	DomainInfrastructure Domain = "infrastructure"
	DomainEnvironment    Domain = "environment"
	DomainTestAutomation Domain = "test_automation"
	DomainProduct        Domain = "product"
	DomainUnknown        Domain = "unknown"
)

// FailureRecord is a single failed test observation handed in by a parser.
// The pipeline treats records as immutable; metadata keys it does not
// understand are carried through unchanged.
type FailureRecord struct {
	Name        string            `json:"name"`
	KeywordName string            `json:"keyword_name,omitempty"`
	Error       string            `json:"error"`
	StackTrace  string            `json:"stack_trace,omitempty"`
	Library     string            `json:"library,omitempty"`
	HTTPStatus  int               `json:"http_status,omitempty"`
	Timestamp   time.Time         `json:"timestamp,omitzero"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// ClassifiedFailure is a FailureRecord annotated with its computed ownership
// domain. Created once during clustering and never mutated afterwards.
type ClassifiedFailure struct {
	FailureRecord
	Domain Domain `json:"domain"`
}
