package utils

import "strings"

// MaskEmail keeps the first character of the local part and the domain,
// e.g. "denis@example.com" becomes "d***@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	local := []rune(email[:at])
	return string(local[0]) + "***" + email[at:]
}
