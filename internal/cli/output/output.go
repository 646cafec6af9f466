package output

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ColorsEnabled reports whether ANSI styling should be applied. Styling is
// disabled when stdout is not a terminal or NO_COLOR is set
// (https://no-color.org/).
func ColorsEnabled() bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ANSI escape codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	white  = "\033[37m"
)

// Message prefixes, kept ASCII so logs and CI output stay readable.
const (
	SymbolSuccess = "+"
	SymbolError   = "x"
	SymbolWarning = "!"
	SymbolInfo    = "*"
	SymbolArrow   = "->"
)

func colorize(code, text string) string {
	if !ColorsEnabled() {
		return text
	}
	return code + text + reset
}

// Success styles text for success messages.
func Success(text string) string { return colorize(green, text) }

// Error styles text for error messages.
func Error(text string) string { return colorize(red, text) }

// Warning styles text for warning messages.
func Warning(text string) string { return colorize(yellow, text) }

// Info styles text for informational messages.
func Info(text string) string { return colorize(cyan, text) }

// Header styles text as a section header.
func Header(text string) string { return colorize(bold+white, text) }

// PrintHeader prints a section header line.
func PrintHeader(text string) {
	fmt.Println(Header(text))
}

// PrintSuccess prints a success message.
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", Success(SymbolSuccess), Success(message))
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", Error(SymbolError), Error(message))
}

// PrintWarning prints a warning message to stderr.
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", Warning(SymbolWarning), Warning(message))
}

// PrintInfo prints an informational message.
func PrintInfo(message string) {
	fmt.Printf("%s %s\n", Info(SymbolInfo), Info(message))
}

// PrintStep prints an indented step line for multi-step commands.
func PrintStep(message string) {
	fmt.Printf("  %s %s\n", SymbolArrow, message)
}

// Plural picks the singular or plural form based on count.
func Plural(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
