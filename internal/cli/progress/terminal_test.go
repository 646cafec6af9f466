package progress

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClearLine_UsesANSIEraseSequence(t *testing.T) {
	caps := terminalCapabilities{supportsANSI: true, terminalWidth: 80}

	assert.Equal(t, "\033[2K\r", clearLine(caps))
}

func TestClearLine_PadsWithSpacesWithoutANSI(t *testing.T) {
	for _, width := range []int{40, 80, 200} {
		t.Run(fmt.Sprintf("width-%d", width), func(t *testing.T) {
			caps := terminalCapabilities{supportsANSI: false, terminalWidth: width}

			result := clearLine(caps)

			assert.Equal(t, "\r"+strings.Repeat(" ", width)+"\r", result)
		})
	}
}

func TestTruncateToWidth_PlainText(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello\033[0m"},
		{"hello world", 11, "hello world"},
		{"", 10, ""},
		{"test", 0, ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, truncateToWidth(tc.input, tc.width),
			"truncateToWidth(%q, %d)", tc.input, tc.width)
	}
}

func TestTruncateToWidth_EscapeSequencesAreInvisible(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "escape codes do not count toward the width",
			input:    "\033[1mhello\033[0m",
			width:    5,
			expected: "\033[1mhello\033[0m",
		},
		{
			name:     "truncation keeps leading escape codes",
			input:    "\033[1mhello world\033[0m",
			width:    5,
			expected: "\033[1mhello\033[0m",
		},
		{
			name:     "multiple escape sequences",
			input:    "\033[1mbold\033[0m \033[2mdim\033[0m",
			width:    7,
			expected: "\033[1mbold\033[0m \033[2mdi\033[0m",
		},
		{
			name:     "reset appended after truncated styled text",
			input:    "\033[32m+\033[0m test",
			width:    3,
			expected: "\033[32m+\033[0m t\033[0m",
		},
		{
			name:     "escape codes with no visible text",
			input:    "\033[1m\033[0m",
			width:    5,
			expected: "\033[1m\033[0m",
		},
		{
			name:     "multi-parameter color sequence",
			input:    "\033[38;2;255;0;0mred\033[0m",
			width:    3,
			expected: "\033[38;2;255;0;0mred\033[0m",
		},
		{
			name:     "truncated multi-parameter color sequence",
			input:    "\033[38;2;255;0;0mred text\033[0m",
			width:    3,
			expected: "\033[38;2;255;0;0mred\033[0m",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, truncateToWidth(tc.input, tc.width))
		})
	}
}

func TestTruncateToWidth_CountsVisibleRunesOnly(t *testing.T) {
	result := truncateToWidth("\033[1m\033[32mColored Bold Text\033[0m", 10)

	visible := 0
	inEscape := false
	for _, r := range result {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
		default:
			visible++
		}
	}

	assert.Equal(t, 10, visible)
}
