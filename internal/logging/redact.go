package logging

import (
	"fmt"
	"regexp"
)

const (
	redactedValue = "[REDACTED]"
	redactedEmail = "[REDACTED_EMAIL]"
)

var (
	sensitiveKey = regexp.MustCompile(`(?i)password|token|secret|api[_-]?key|credential|webhook`)
	emailLike    = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
)

// Redact returns a copy of v that is safe to write to logs. Map entries
// whose key looks like a secret are replaced wholesale, and email addresses
// inside strings are masked. Maps, slices and errors are walked recursively;
// other values are returned unchanged.
func Redact(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return emailLike.ReplaceAllString(val, redactedEmail)
	case error:
		return emailLike.ReplaceAllString(val.Error(), redactedEmail)
	case fmt.Stringer:
		return emailLike.ReplaceAllString(val.String(), redactedEmail)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if sensitiveKey.MatchString(k) {
				out[k] = redactedValue
				continue
			}
			out[k] = Redact(item)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if sensitiveKey.MatchString(k) {
				out[k] = redactedValue
				continue
			}
			out[k] = Redact(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Redact(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Redact(item)
		}
		return out
	}
	return v
}
