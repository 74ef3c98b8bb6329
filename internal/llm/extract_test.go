package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"plain array",
			`[{"title": "Test"}]`,
			`[{"title": "Test"}]`,
		},
		{
			"plain object",
			`{"key": "value"}`,
			`{"key": "value"}`,
		},
		{
			"json fence",
			"```json\n[{\"title\": \"Test\"}]\n```",
			`[{"title": "Test"}]`,
		},
		{
			"bare fence",
			"```\n{\"a\": 1}\n```",
			`{"a": 1}`,
		},
		{
			"surrounding prose",
			"Here's the structure:\n[{\"title\": \"Test\"}]\nThat's the result.",
			`[{"title": "Test"}]`,
		},
		{
			"nested objects",
			`prefix {"outer": {"inner": [1, 2]}} suffix`,
			`{"outer": {"inner": [1, 2]}}`,
		},
		{
			"brace inside string",
			`{"text": "a } inside"}`,
			`{"text": "a } inside"}`,
		},
		{
			"escaped quote inside string",
			`{"text": "say \"}\" now"}`,
			`{"text": "say \"}\" now"}`,
		},
		{
			"no json at all",
			"I cannot produce that.",
			"I cannot produce that.",
		},
		{
			"unterminated json",
			`{"partial": true`,
			`{"partial": true`,
		},
		{
			"whitespace padding",
			"  \n  [1, 2, 3]  \n",
			"[1, 2, 3]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
