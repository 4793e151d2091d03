// Package redaction masks contact details in text extracted from documents.
package redaction

import (
	"regexp"
	"strings"
)

// rule replaces every match of pattern with a placeholder
type rule struct {
	name        string
	pattern     *regexp.Regexp
	placeholder string
}

// Scrubber masks personal data in extracted text. Rules are applied in order,
// so card numbers are masked before the phone rule can match their digits.
type Scrubber struct {
	rules []rule
}

// NewScrubber creates a scrubber for emails, national ids, card and phone numbers
func NewScrubber() *Scrubber {
	return &Scrubber{rules: []rule{
		{"emails", regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), "[EMAIL]"},
		{"ssns", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), "[SSN]"},
		{"cards", regexp.MustCompile(`\b(?:\d[ -]?){12,18}\d\b`), "[CARD]"},
		{"phones", regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}\b`), "[PHONE]"},
	}}
}

// Scrub returns text with every match replaced by its placeholder
func (s *Scrubber) Scrub(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	for _, r := range s.rules {
		text = r.pattern.ReplaceAllString(text, r.placeholder)
	}
	return text
}

// Count reports the number of matches per rule without modifying text
func (s *Scrubber) Count(text string) map[string]int {
	counts := make(map[string]int, len(s.rules))
	for _, r := range s.rules {
		n := len(r.pattern.FindAllStringIndex(text, -1))
		counts[r.name] = n
		text = r.pattern.ReplaceAllString(text, r.placeholder)
	}
	return counts
}
