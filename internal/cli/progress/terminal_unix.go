//go:build !windows

package progress

// initTerminal reports ANSI support. Unix terminals handle ANSI escape
// sequences natively, so no console setup is needed.
func initTerminal() bool {
	return true
}
