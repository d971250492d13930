package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/kamilpajak/mendeleev/pkg/models"
)

var severityColors = map[models.Severity]*color.Color{
	models.SeverityCritical: color.New(color.FgRed, color.Bold),
	models.SeverityHigh:     color.New(color.FgRed),
	models.SeverityMedium:   color.New(color.FgYellow),
	models.SeverityLow:      color.New(color.FgHiBlack),
}

func printOutput(w io.Writer, out models.StructuredAnalysisOutput) {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	s := out.Summary
	_, _ = bold.Fprintf(w, "%d tests, %d failed, %d distinct issues\n", s.TotalTests, s.Failed, s.UniqueIssues)
	if s.RegressionRate != nil {
		fmt.Fprintf(w, "Regression rate: %.1f%%\n", *s.RegressionRate)
	}
	fmt.Fprintln(w)

	if len(out.SystemicPatterns) > 0 {
		yellow := color.New(color.FgYellow)
		_, _ = yellow.Fprintln(w, "SYSTEMIC PATTERNS")
		for _, p := range out.SystemicPatterns {
			fmt.Fprintf(w, "  ! %s\n", p)
		}
		fmt.Fprintln(w)
	}

	for i, cr := range out.Clusters {
		sevColor, ok := severityColors[cr.Severity]
		if !ok {
			sevColor = bold
		}
		_, _ = sevColor.Fprintf(w, "[%s]", strings.ToUpper(string(cr.Severity)))
		_, _ = bold.Fprintf(w, " %s\n", cr.RootCause)
		fmt.Fprintf(w, "  Ownership: %s | Occurrences: %d | Tests: %d\n", cr.Domain, cr.Occurrences, len(cr.Tests))
		if cr.Confidence != nil {
			printConfidenceBar(w, cr.Confidence.Overall)
		}
		if len(cr.ErrorPatterns) > 0 {
			_, _ = dim.Fprintf(w, "  Patterns: %s\n", strings.Join(cr.ErrorPatterns, ", "))
		}
		for _, action := range cr.RecommendedActions {
			fmt.Fprintf(w, "  - %s\n", action)
		}
		if i < len(out.Clusters)-1 {
			fmt.Fprintln(w)
		}
	}

	if len(out.TopRecommendations) > 0 {
		fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, "TOP RECOMMENDATIONS")
		for _, rec := range out.TopRecommendations {
			fmt.Fprintf(w, "  %s\n", rec)
		}
	}

	if out.Regression != nil {
		fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, "REGRESSION")
		fmt.Fprintf(w, "  New: %d | Recurring: %d | Resolved: %d\n",
			len(out.Regression.NewFailures), len(out.Regression.RecurringFailures), len(out.Regression.ResolvedFailures))
	}
}

func printConfidenceBar(w io.Writer, overall float64) {
	const barWidth = 24
	pct := int(overall*100 + 0.5)
	filled := pct * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}

	var barColor *color.Color
	switch {
	case pct >= 80:
		barColor = color.New(color.FgGreen)
	case pct >= 40:
		barColor = color.New(color.FgYellow)
	default:
		barColor = color.New(color.FgRed)
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	fmt.Fprintf(w, "  Confidence: %d%% ", pct)
	_, _ = barColor.Fprint(w, bar)
	fmt.Fprintln(w)
}
