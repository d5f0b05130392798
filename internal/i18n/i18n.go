// Package i18n holds the user-facing strings of the contact pipeline and
// resolves which language a caller should receive them in.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultTag is the site's primary language.
var DefaultTag = language.French

var supported = []language.Tag{language.French, language.English}

var matcher = language.NewMatcher(supported)

// SupportedTags returns the languages that have a full message catalog.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// ParseTag parses a locale string such as "fr", "en-US" or "fr_FR" and maps
// it onto a supported language.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", "-"))
	if value == "" {
		return DefaultTag, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag, false
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultTag, false
	}
	return supported[idx], true
}

// ResolveTag picks the best supported language for an Accept-Language header
// value, returning fallback when the header is empty or matches nothing.
func ResolveTag(acceptLanguage string, fallback language.Tag) language.Tag {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return supported[idx]
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Text returns the localized text for key in tag.
func Text(tag language.Tag, key Key) string {
	return message.NewPrinter(tag).Sprintf(string(key))
}
