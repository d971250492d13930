// Package fingerprint reduces free-text errors to a stable hash identifying
// their root cause. Two errors that differ only in volatile detail
// (timestamps, element ids, durations, paths) produce the same fingerprint
// and therefore land in the same cluster.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const messagePrefixLen = 200

// Normalization tables, compiled once. Each entry rewrites one class of
// volatile noise to a fixed placeholder; order matters and mirrors the
// documented normalization sequence.
var normalizations = []struct {
	re          *regexp.Regexp
	placeholder string
}{
	// Absolute timestamps, then bare clock times with optional millis.
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}[ t]\d{2}:\d{2}:\d{2}`), "<timestamp>"},
	{regexp.MustCompile(`\d{2}:\d{2}:\d{2}(?:\.\d+)?`), "<time>"},
	// CSS/HTML ids, trailing numeric ids, millisecond and pixel counts.
	{regexp.MustCompile(`#[a-z][\w-]*-\d+`), "<id>"},
	{regexp.MustCompile(`[-#]\d{3,}`), "<id>"},
	{regexp.MustCompile(`\d+ms`), "<ms>"},
	{regexp.MustCompile(`\d+px`), "<px>"},
	// Generic UI element nouns collapse so selector-specific variants of
	// the same failure shape cluster together.
	{regexp.MustCompile(`\bbtn-[\w-]+`), "<element>"},
	{regexp.MustCompile(`\b(?:button|link|input|form|div|span|menu|dropdown)\b`), "<element>"},
	// URLs before filesystem paths, so path rules never eat a URL tail.
	{regexp.MustCompile(`https?://[^\s"']+`), "<url>"},
	{regexp.MustCompile(`(?:/[\w][\w.-]*){2,}/?`), "<path>"},
	{regexp.MustCompile(`\b[a-z]:\\[^\s:*?"<>|]+`), "<path>"},
	// Line references and hex memory addresses.
	{regexp.MustCompile(`\bline:? ?\d+`), "<line>"},
	{regexp.MustCompile(`\b0x[0-9a-f]+\b`), "<addr>"},
}

var (
	exceptionTypeRe = regexp.MustCompile(`(\w+(?:exception|error|notfound))\s*:`)
	stackFrameRe    = regexp.MustCompile(`at ([\w.$<>]+)\s*\(`)
)

// Normalize lower-cases and trims the error text and rewrites every class of
// volatile noise to a placeholder. The result is what actually gets hashed.
func Normalize(errText string) string {
	msg := strings.ToLower(strings.TrimSpace(errText))
	for _, n := range normalizations {
		msg = n.re.ReplaceAllString(msg, n.placeholder)
	}
	return msg
}

// Compute returns the stable 32-hex-char fingerprint for an error. The same
// inputs always produce the same fingerprint regardless of call order. The
// stack trace contributes only its top frame symbol; the HTTP status, when
// non-zero, contributes directly. Callers must not pass empty error text;
// clustering filters blank records upstream.
func Compute(errText, stackTrace string, httpStatus int) string {
	msg := Normalize(errText)

	var parts []string
	if m := exceptionTypeRe.FindStringSubmatch(msg); m != nil {
		parts = append(parts, "exception:"+m[1])
	}
	if httpStatus != 0 {
		parts = append(parts, fmt.Sprintf("http:%d", httpStatus))
	}
	parts = append(parts, prefix(msg, messagePrefixLen))
	if frame := topStackFrame(stackTrace); frame != "" {
		parts = append(parts, "frame:"+frame)
	}

	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// topStackFrame extracts the symbol of the first "at symbol(" frame, the one
// closest to the failure site.
func topStackFrame(stackTrace string) string {
	if stackTrace == "" {
		return ""
	}
	m := stackFrameRe.FindStringSubmatch(strings.ToLower(stackTrace))
	if m == nil {
		return ""
	}
	return m[1]
}

// prefix truncates to at most n runes without splitting a multi-byte
// character.
func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
