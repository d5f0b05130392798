package sanitization

import (
	"strings"
	"unicode/utf8"

	"github.com/denischpt/portfolio/internal/models"
)

// SanitizeContact trims every field, lower-cases the email and truncates
// each field to its retained length. Applying it twice yields the same
// submission.
func SanitizeContact(sub models.ContactSubmission) models.ContactSubmission {
	return models.ContactSubmission{
		Name:    SanitizeString(sub.Name, models.MaxNameLength),
		Email:   SanitizeEmail(sub.Email),
		Message: SanitizeString(sub.Message, models.MaxMessageLength),
	}
}

// SanitizeString trims whitespace and keeps at most max characters
func SanitizeString(input string, max int) string {
	safe := strings.TrimSpace(input)
	safe = truncate(safe, max)
	// Truncation can expose trailing whitespace
	return strings.TrimSpace(safe)
}

// SanitizeEmail lower-cases and trims an email address
func SanitizeEmail(input string) string {
	return SanitizeString(strings.ToLower(input), models.MaxEmailLength)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
