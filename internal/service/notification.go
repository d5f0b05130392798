package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/denischpt/portfolio/internal/i18n"
	"github.com/denischpt/portfolio/internal/models"

	"golang.org/x/text/language"
)

const (
	// NotificationColor is the embed accent (indigo)
	NotificationColor = 0x6366f1

	// UnknownAddress stands in for a requester address that could not be determined
	UnknownAddress = "Unknown"

	// Discord caps a single embed field value at this many characters
	maxFieldValueLength = 1024

	dateLayout = "02/01/2006 15:04:05"
)

// WebhookPayload is the JSON body posted to the Discord webhook
type WebhookPayload struct {
	Username        string          `json:"username"`
	Embeds          []Embed         `json:"embeds"`
	AllowedMentions AllowedMentions `json:"allowed_mentions"`
}

// AllowedMentions stops visitor text from pinging anyone in the channel
type AllowedMentions struct {
	Parse []string `json:"parse"`
}

// Embed is one rich message block
type Embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []EmbedField `json:"fields"`
	Timestamp string       `json:"timestamp"`
	Footer    EmbedFooter  `json:"footer"`
}

// EmbedField is one labelled value of an embed
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// EmbedFooter is the small text under an embed
type EmbedFooter struct {
	Text string `json:"text"`
}

// ContactMessageInfo holds request details gathered alongside a submission
type ContactMessageInfo struct {
	IPAddress  string
	UserAgent  string
	Referrer   string
	RequestID  string
	ReceivedAt time.Time
}

// NotificationOptions controls presentation of the outbound notification
type NotificationOptions struct {
	Username string
	Footer   string
	Location *time.Location
	Language language.Tag
}

// BuildNotification assembles the webhook payload for an already
// sanitized submission.
func BuildNotification(sub models.ContactSubmission, info *ContactMessageInfo, opts NotificationOptions) WebhookPayload {
	if info == nil {
		info = &ContactMessageInfo{}
	}
	received := info.ReceivedAt
	if received.IsZero() {
		received = time.Now()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	ip := strings.TrimSpace(info.IPAddress)
	if ip == "" {
		ip = UnknownAddress
	}
	text := func(key i18n.Key) string { return i18n.Text(opts.Language, key) }

	fields := []EmbedField{
		{Name: text(i18n.KeyFieldName), Value: sub.Name, Inline: true},
		{Name: text(i18n.KeyFieldEmail), Value: sub.Email, Inline: true},
	}
	fields = append(fields, messageFields(text(i18n.KeyFieldMessage), sub.Message)...)
	fields = append(fields,
		EmbedField{Name: text(i18n.KeyFieldIP), Value: ip, Inline: true},
		EmbedField{Name: text(i18n.KeyFieldDate), Value: received.In(loc).Format(dateLayout), Inline: true},
	)

	return WebhookPayload{
		Username: opts.Username,
		Embeds: []Embed{{
			Title:     text(i18n.KeyNotificationTitle),
			Color:     NotificationColor,
			Fields:    fields,
			Timestamp: received.UTC().Format(time.RFC3339),
			Footer:    EmbedFooter{Text: opts.Footer},
		}},
		AllowedMentions: AllowedMentions{Parse: []string{}},
	}
}

// messageFields splits a message across as many fields as the per-field
// limit requires. Continuation fields carry a zero-width label.
func messageFields(label, message string) []EmbedField {
	chunks := splitRunes(message, maxFieldValueLength)
	fields := make([]EmbedField, 0, len(chunks))
	for i, chunk := range chunks {
		name := label
		if i > 0 {
			name = "\u200b"
		}
		fields = append(fields, EmbedField{Name: name, Value: chunk, Inline: false})
	}
	return fields
}

func splitRunes(s string, size int) []string {
	if utf8.RuneCountInString(s) <= size {
		return []string{s}
	}
	var chunks []string
	count, start := 0, 0
	for i := range s {
		if count == size {
			chunks = append(chunks, s[start:i])
			start, count = i, 0
		}
		count++
	}
	return append(chunks, s[start:])
}
