package util

import (
	"testing"
)

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{name: "regular address", email: "jane.doe@example.com", expected: "j***@example.com"},
		{name: "single character local part", email: "a@b.io", expected: "a***@b.io"},
		{name: "missing at sign", email: "not-an-email", expected: "***"},
		{name: "empty local part", email: "@example.com", expected: "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := MaskEmail(tt.email); got != tt.expected {
				t.Fatalf("MaskEmail(%q) = %s, want %s", tt.email, got, tt.expected)
			}
		})
	}
}

func TestMaskPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		phone    string
		expected string
	}{
		{name: "ten digits", phone: "9876543210", expected: "******3210"},
		{name: "short value", phone: "123", expected: "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := MaskPhone(tt.phone); got != tt.expected {
				t.Fatalf("MaskPhone(%q) = %s, want %s", tt.phone, got, tt.expected)
			}
		})
	}
}

func TestRedactPII(t *testing.T) {
	t.Parallel()

	got := RedactPII("order for jane.doe@example.com, call 9876543210 before noon")
	want := "order for j***@example.com, call ******3210 before noon"

	if got != want {
		t.Fatalf("RedactPII() = %q, want %q", got, want)
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	if got := SanitizeText("  <b>12 Main St</b> "); got != "&lt;b&gt;12 Main St&lt;/b&gt;" {
		t.Fatalf("SanitizeText() = %q", got)
	}
}
