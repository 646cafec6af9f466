package scm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"phd/internal/ports"
)

// sshBatchModeEnv configures SSH to fail immediately instead of hanging
// when authentication requires user input (e.g., password-protected keys).
var sshBatchModeEnv = []string{"GIT_SSH_COMMAND=ssh -o BatchMode=yes"}

// isSSHAuthError checks if the error output indicates an SSH authentication failure
// (permission denied or connection issues, but NOT host key verification).
func isSSHAuthError(output string) bool {
	return strings.Contains(output, "Permission denied") ||
		strings.Contains(output, "Connection closed by remote host") ||
		strings.Contains(output, "Connection reset by peer")
}

// isHostKeyError checks if the error output indicates a host key verification failure.
func isHostKeyError(output string) bool {
	return strings.Contains(output, "Host key verification failed")
}

// wrapSSHAuthError wraps an error with helpful SSH troubleshooting information.
func wrapSSHAuthError(operation, url string, output []byte, err error) error {
	outputStr := string(output)
	if isSSHAuthError(outputStr) {
		return fmt.Errorf("SSH authentication failed during %s for %s.\n\n"+
			"If your SSH key has a passphrase, add it to ssh-agent first:\n"+
			"  eval \"$(ssh-agent -s)\"\n"+
			"  ssh-add ~/.ssh/id_rsa\n\n"+
			"Original error: %s", operation, url, outputStr)
	}
	if isHostKeyError(outputStr) {
		return fmt.Errorf("SSH host key verification failed during %s for %s.\n\n"+
			"The remote host is not in your known_hosts file. Connect once manually to add it:\n"+
			"  ssh -T git@github.com    # For GitHub\n\n"+
			"Accept the host key when prompted, then retry.\n\n"+
			"Original error: %s", operation, url, outputStr)
	}
	return fmt.Errorf("failed to %s %s: %v\n%s", operation, url, err, outputStr)
}

// Git downloads template repositories, reusing an existing checkout when one
// is already present at the destination path.
type Git struct {
	commandRunner ports.CommandRunner
	fileSystem    ports.FileSystem
	// Track repo+ref combinations already synced in this invocation.
	downloaded map[string]bool
}

func ProvideGit(commandRunner ports.CommandRunner, fileSystem ports.FileSystem) *Git {
	return &Git{
		commandRunner: commandRunner,
		fileSystem:    fileSystem,
		downloaded:    make(map[string]bool),
	}
}

var _ ports.Scm = (*Git)(nil)

func (g *Git) Download(repositoryUrl string, ref string, repositoryPath string) error {
	repoKey := repositoryPath + ":" + ref
	if g.downloaded[repoKey] {
		return nil
	}

	if g.containsRepository(repositoryPath) {
		if err := g.sync(repositoryPath, repositoryUrl, ref); err != nil {
			return err
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(repositoryPath), 0700); err != nil {
			return fmt.Errorf("failed to create destination directory: %v", err)
		}
		output, err := g.commandRunner.RunWithEnv("git", sshBatchModeEnv,
			"clone", "-c", "core.autocrlf=false", repositoryUrl, "--branch", ref, repositoryPath)
		if err != nil {
			return wrapSSHAuthError("clone", repositoryUrl, output, err)
		}
	}

	g.downloaded[repoKey] = true
	return nil
}

func (g *Git) containsRepository(repositoryPath string) bool {
	exists, err := g.fileSystem.FileExists(filepath.Join(repositoryPath, ".git", "HEAD"))
	return err == nil && exists
}

func (g *Git) sync(repositoryPath, repositoryUrl, ref string) error {
	if output, err := g.commandRunner.RunInDir(repositoryPath, "git", "remote", "set-url", "origin", repositoryUrl); err != nil {
		return fmt.Errorf("failed to update git remote URL: %v\n%s", err, string(output))
	}

	output, err := g.commandRunner.RunWithEnvInDir(repositoryPath, sshBatchModeEnv,
		"git", "-c", "core.autocrlf=false", "fetch", "origin", "-f", ref)
	if err != nil {
		return wrapSSHAuthError("fetch", "origin/"+ref, output, err)
	}

	if output, err := g.commandRunner.RunInDir(repositoryPath, "git", "-c", "core.autocrlf=false", "checkout", ref); err != nil {
		return fmt.Errorf("failed to checkout %s: %v\n%s", ref, err, string(output))
	}

	// When the ref is a branch, hard-reset to origin so a stale cache never
	// renders an outdated template.
	if _, err := g.commandRunner.RunInDir(repositoryPath, "git", "rev-parse", "--verify", "--quiet", "refs/remotes/origin/"+ref); err == nil {
		if output, err := g.commandRunner.RunInDir(repositoryPath, "git", "-c", "core.autocrlf=false", "reset", "--hard", "origin/"+ref); err != nil {
			return fmt.Errorf("failed to reset to origin/%s: %v\n%s", ref, err, string(output))
		}
	}

	return nil
}
