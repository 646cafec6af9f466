//go:build windows

package progress

import (
	"os"

	"golang.org/x/sys/windows"
)

// ENABLE_VIRTUAL_TERMINAL_PROCESSING turns on ANSI escape handling in the
// Windows console host.
const enableVirtualTerminalProcessing = 0x0004

// initTerminal enables virtual terminal processing on the stdout console
// and reports whether ANSI sequences can be used. Setting the mode twice
// is harmless, so repeated calls are fine.
func initTerminal() bool {
	handle := windows.Handle(os.Stdout.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return false
	}

	return windows.SetConsoleMode(handle, mode|enableVirtualTerminalProcessing) == nil
}
