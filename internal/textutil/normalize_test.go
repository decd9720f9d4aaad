package textutil

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "Plain text untouched",
			input:    "Hello world.",
			expected: "Hello world.",
		},
		{
			name:     "URL removed",
			input:    "Check https://example.com now.",
			expected: "Check now.",
		},
		{
			name:     "HTTP URL removed",
			input:    "Visit http://example.com/path?x=1 today",
			expected: "Visit today",
		},
		{
			name:     "Angle brackets removed",
			input:    "From: Abhi <abhi@movya.com>",
			expected: "From: Abhi abhi@movya.com",
		},
		{
			name:     "Blank lines collapsed",
			input:    "First line.\n\n\nSecond line.",
			expected: "First line.\nSecond line.",
		},
		{
			name:     "Whitespace around newlines collapsed",
			input:    "First line.   \n   Second line.",
			expected: "First line.\nSecond line.",
		},
		{
			name:     "Space runs collapsed",
			input:    "Too    many\tspaces",
			expected: "Too many\tspaces",
		},
		{
			name:     "Leading and trailing whitespace trimmed",
			input:    "  \n padded \n ",
			expected: "padded",
		},
		{
			name:     "Body from stored record scenario",
			input:    "Check https://example.com now.\n\n\nThanks.",
			expected: "Check now.\nThanks.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Check https://example.com now.\n\n\nThanks.",
		"a  b\n\n\nc <d> http://e.fg h",
		"   \t \n  mixed \r\n whitespace  everywhere \n\n",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalizeNeverLeavesForbiddenContent(t *testing.T) {
	inputs := []string{
		"<a href=\"https://example.com\">link</a>",
		"nested <<brackets>> and http://one.example https://two.example",
		"url at end https://example.com",
	}

	for _, input := range inputs {
		got := Normalize(input)
		if strings.ContainsAny(got, "<>") {
			t.Errorf("Normalize(%q) = %q still contains angle brackets", input, got)
		}
		if urlPattern.MatchString(got) {
			t.Errorf("Normalize(%q) = %q still contains a URL", input, got)
		}
	}
}
