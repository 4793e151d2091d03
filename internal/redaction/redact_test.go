package redaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrubber_Scrub(t *testing.T) {
	s := NewScrubber()

	tests := []struct {
		name   string
		input  string
		want   string
		absent []string
	}{
		{
			name:   "emails",
			input:  "Contact billing@example.com or ops@corp.org",
			want:   "Contact [EMAIL] or [EMAIL]",
			absent: []string{"billing@example.com", "ops@corp.org"},
		},
		{
			name:  "ssn",
			input: "SSN: 123-45-6789",
			want:  "SSN: [SSN]",
		},
		{
			name:  "card before phone",
			input: "Card 4111 1111 1111 1111 on file",
			want:  "Card [CARD] on file",
		},
		{
			name:  "phone",
			input: "Call 555-123-4567 today",
			want:  "Call [PHONE] today",
		},
		{
			name:  "page numbers are kept",
			input: "Page 12 of 240, invoice 2024",
			want:  "Page 12 of 240, invoice 2024",
		},
		{
			name:  "blank",
			input: "   ",
			want:  "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Scrub(tt.input)
			assert.Equal(t, tt.want, got)
			for _, a := range tt.absent {
				assert.NotContains(t, got, a)
			}
		})
	}
}

func TestScrubber_Count(t *testing.T) {
	s := NewScrubber()

	counts := s.Count("a@b.io, c@d.io, 555-123-4567, 4111111111111111")

	assert.Equal(t, 2, counts["emails"])
	assert.Equal(t, 1, counts["phones"])
	assert.Equal(t, 1, counts["cards"])
	assert.Equal(t, 0, counts["ssns"])
}
