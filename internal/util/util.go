package util

import (
	"html"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\b\d{10}\b`)
)

// MaskEmail keeps the first character of the local part and the domain.
// "jane.doe@example.com" becomes "j***@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}

	return email[:1] + "***" + email[at:]
}

// MaskPhone keeps the last four digits.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}

	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// RedactPII masks every email address and 10-digit phone number found in free text.
func RedactPII(text string) string {
	text = emailPattern.ReplaceAllStringFunc(text, MaskEmail)

	return phonePattern.ReplaceAllStringFunc(text, MaskPhone)
}

// SanitizeText trims the value and escapes HTML so stored addresses can't carry markup.
func SanitizeText(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
