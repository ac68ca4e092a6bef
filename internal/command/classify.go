package command

import "strings"

// ErrorType is a coarse classification of a failed execution, derived from the
// raw error text. It drives both the metrics failure breakdown and
// recovery-strategy matching.
type ErrorType string

const (
	ErrorTimeout    ErrorType = "timeout"
	ErrorPermission ErrorType = "permission"
	ErrorNotFound   ErrorType = "not_found"
	ErrorConnection ErrorType = "connection"
	ErrorMemory     ErrorType = "memory"
	ErrorSyntax     ErrorType = "syntax"
	ErrorUnknown    ErrorType = "unknown"
)

// classifiers are evaluated top to bottom; the first matching substring wins.
// This is best-effort bucketing of arbitrary tool output, not an exhaustive
// taxonomy.
var classifiers = []struct {
	substrings []string
	kind       ErrorType
}{
	{[]string{"timed out", "timeout", "deadline exceeded"}, ErrorTimeout},
	{[]string{"permission denied", "access denied", "operation not permitted"}, ErrorPermission},
	{[]string{"not found", "no such file", "does not exist", "unknown command"}, ErrorNotFound},
	{[]string{"connection refused", "connection reset", "could not connect", "network is unreachable"}, ErrorConnection},
	{[]string{"out of memory", "memory exhausted", "allowed memory size", "cannot allocate memory"}, ErrorMemory},
	{[]string{"syntax error", "parse error", "unexpected token"}, ErrorSyntax},
}

// Classify buckets raw error text into an ErrorType by case-insensitive
// substring matching.
func Classify(text string) ErrorType {
	lowered := strings.ToLower(text)
	for _, c := range classifiers {
		for _, sub := range c.substrings {
			if strings.Contains(lowered, sub) {
				return c.kind
			}
		}
	}
	return ErrorUnknown
}
