package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bare array",
			input: `["a", "b"]`,
			want:  `["a", "b"]`,
			ok:    true,
		},
		{
			name:  "array with surrounding prose",
			input: "Here are your stories:\n[\"a\", \"b\"]\nHope this helps!",
			want:  `["a", "b"]`,
			ok:    true,
		},
		{
			name:  "markdown fenced array",
			input: "```json\n[\"a\"]\n```",
			want:  `["a"]`,
			ok:    true,
		},
		{
			name:  "widest span across nested brackets",
			input: `prefix ["a [role]", "b"] suffix`,
			want:  `["a [role]", "b"]`,
			ok:    true,
		},
		{
			name:  "no opening bracket",
			input: "no array here]",
			ok:    false,
		},
		{
			name:  "no closing bracket",
			input: "[unclosed",
			ok:    false,
		},
		{
			name:  "closing before opening",
			input: "] then [",
			ok:    false,
		},
		{
			name:  "empty input",
			input: "",
			ok:    false,
		},
		{
			name:  "whitespace only",
			input: "   \n\t ",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONArray(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
