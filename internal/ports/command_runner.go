package ports

import "io"

// CommandRunner executes external commands and returns their combined output.
type CommandRunner interface {
	Run(name string, args ...string) ([]byte, error)
	RunInDir(dir, name string, args ...string) ([]byte, error)
	RunWithStdin(stdin io.Reader, name string, args ...string) ([]byte, error)
	RunWithEnv(name string, env []string, args ...string) ([]byte, error)
	RunWithEnvInDir(dir string, env []string, name string, args ...string) ([]byte, error)
	// LookPath reports the absolute path of a binary, or an error when it
	// is not installed.
	LookPath(name string) (string, error)
}
