package progress

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// terminalCapabilities describes what the attached terminal can do.
type terminalCapabilities struct {
	supportsANSI  bool
	terminalWidth int
}

// detectCapabilities probes the terminal attached to stdout. When the width
// cannot be determined (pipes, CI runners) it assumes 80 columns.
func detectCapabilities() terminalCapabilities {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	return terminalCapabilities{
		supportsANSI:  initTerminal(),
		terminalWidth: width,
	}
}

// clearLine returns the sequence that erases the current line. Terminals
// without ANSI support get the line overwritten with spaces instead.
func clearLine(caps terminalCapabilities) string {
	if caps.supportsANSI {
		return "\033[2K\r"
	}
	return "\r" + strings.Repeat(" ", caps.terminalWidth) + "\r"
}

// truncateToWidth cuts s down to at most width visible characters. ANSI
// escape sequences pass through without counting toward the width, and a
// reset is appended whenever visible text was dropped so styling cannot
// leak into the next line.
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}

	var out strings.Builder
	visible := 0
	inEscape := false
	truncated := false

	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
			out.WriteRune(r)
		case inEscape:
			out.WriteRune(r)
			// Escape sequences terminate on the first letter.
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
		case visible >= width:
			truncated = true
		default:
			out.WriteRune(r)
			visible++
		}
		if truncated {
			break
		}
	}

	if truncated && !inEscape {
		out.WriteString("\033[0m")
	}

	return out.String()
}
