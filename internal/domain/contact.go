package domain

import "strings"

// Field length bounds applied during normalization.
const (
	MaxContactNameLen    = 120
	MaxContactEmailLen   = 254
	MaxContactMessageLen = 4000
)

// ContactSubmission carries one contact-form submission. Company is a
// honeypot field: it is hidden from legitimate users, so a non-empty
// value marks the submission as automated spam.
type ContactSubmission struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Company string `json:"company,omitempty"`
}

// Normalize trims all fields, lower-cases the email and truncates each
// field to its bound. It mutates the receiver.
func (c *ContactSubmission) Normalize() {
	c.Name = truncate(strings.TrimSpace(c.Name), MaxContactNameLen)
	c.Email = truncate(strings.ToLower(strings.TrimSpace(c.Email)), MaxContactEmailLen)
	c.Message = truncate(strings.TrimSpace(c.Message), MaxContactMessageLen)
	c.Company = strings.TrimSpace(c.Company)
}

// IsSpam reports whether the honeypot field was filled in.
func (c *ContactSubmission) IsSpam() bool {
	return c.Company != ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
