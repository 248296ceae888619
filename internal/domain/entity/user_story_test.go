package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWellFormedStory(t *testing.T) {
	tests := []struct {
		name  string
		story string
		want  bool
	}{
		{
			name:  "canonical form",
			story: "As a customer, I want to browse products, so that I can find what I need.",
			want:  true,
		},
		{
			name:  "markers anywhere in the string",
			story: "Story: As a user I said I want to log in so that I stay safe",
			want:  true,
		},
		{
			name:  "missing role marker",
			story: "A customer, I want to browse, so that I can shop.",
			want:  false,
		},
		{
			name:  "missing action marker",
			story: "As a customer, browsing products, so that I can shop.",
			want:  false,
		},
		{
			name:  "missing benefit marker",
			story: "As a customer, I want to browse products quickly.",
			want:  false,
		},
		{
			name:  "case sensitive markers",
			story: "as a customer, i want to browse, So That I can shop.",
			want:  false,
		},
		{
			name:  "empty string",
			story: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWellFormedStory(tt.story))
		})
	}
}
