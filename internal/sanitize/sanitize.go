// Package sanitize strips boilerplate disclaimers from AI-generated
// explanations before display. It performs no semantic validation; it only
// removes a fixed phrase blacklist, collapses the resulting whitespace, and
// restores the leading capital.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

// disclaimerRes match the blacklisted phrases case-insensitively. Patterns
// that end in a clause (access/capability excuses) consume up to the end of
// the sentence.
var disclaimerRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bas an ai(?: language)?(?: model)?[,:]?\s*`),
	regexp.MustCompile(`(?i)\bi apologize,?\s*(?:but\s*)?`),
	regexp.MustCompile(`(?i)\bi'?m sorry,?\s*(?:but\s*)?`),
	regexp.MustCompile(`(?i)\bsorry,?\s*but\s*`),
	regexp.MustCompile(`(?i)\bi don'?t have access to[^.!?]*[.!?]?`),
	regexp.MustCompile(`(?i)\bi cannot access[^.!?]*[.!?]?`),
	regexp.MustCompile(`(?i)\bunfortunately,?\s*i (?:cannot|can'?t)[^.!?]*[.!?]?`),
	regexp.MustCompile(`(?i)\bplease note that\s*`),
	regexp.MustCompile(`(?i)\bit'?s important to note that\s*`),
	regexp.MustCompile(`(?i)\bkeep in mind that\s*`),
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Clean removes disclaimer phrases, collapses whitespace, and capitalizes
// the first letter. Cleaning is idempotent: cleaning already-clean text is a
// no-op.
func Clean(text string) string {
	for _, re := range disclaimerRes {
		text = re.ReplaceAllString(text, " ")
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	return capitalize(text)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
