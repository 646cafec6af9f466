package scm

import (
	"errors"
	"path/filepath"
	"testing"

	"phd/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestGit_Download_ClonesWhenMissing(t *testing.T) {
	commandRunner := new(testutil.MockCommandRunner)
	fileSystem := new(testutil.MockFileSystem)
	repositoryPath := filepath.Join(t.TempDir(), "templates", "phd-cluster-template")

	fileSystem.On("FileExists", filepath.Join(repositoryPath, ".git", "HEAD")).Return(false, nil)
	commandRunner.On("RunWithEnv", "git", sshBatchModeEnv,
		[]string{"clone", "-c", "core.autocrlf=false", "https://github.com/open-craft/phd-cluster-template.git", "--branch", "v1.0.0", repositoryPath}).
		Return([]byte(""), nil)

	sut := ProvideGit(commandRunner, fileSystem)

	err := sut.Download("https://github.com/open-craft/phd-cluster-template.git", "v1.0.0", repositoryPath)

	assert.NoError(t, err)
	commandRunner.AssertExpectations(t)
}

func TestGit_Download_SkipsRepeatedDownloads(t *testing.T) {
	commandRunner := new(testutil.MockCommandRunner)
	fileSystem := new(testutil.MockFileSystem)
	repositoryPath := filepath.Join(t.TempDir(), "templates", "phd-cluster-template")

	fileSystem.On("FileExists", filepath.Join(repositoryPath, ".git", "HEAD")).Return(false, nil)
	commandRunner.On("RunWithEnv", "git", sshBatchModeEnv,
		[]string{"clone", "-c", "core.autocrlf=false", "repo-url", "--branch", "main", repositoryPath}).
		Return([]byte(""), nil)

	sut := ProvideGit(commandRunner, fileSystem)

	assert.NoError(t, sut.Download("repo-url", "main", repositoryPath))
	assert.NoError(t, sut.Download("repo-url", "main", repositoryPath))

	commandRunner.AssertNumberOfCalls(t, "RunWithEnv", 1)
}

func TestGit_Download_SyncsExistingCheckout(t *testing.T) {
	commandRunner := new(testutil.MockCommandRunner)
	fileSystem := new(testutil.MockFileSystem)
	repositoryPath := filepath.Join(t.TempDir(), "templates", "phd-cluster-template")

	fileSystem.On("FileExists", filepath.Join(repositoryPath, ".git", "HEAD")).Return(true, nil)
	commandRunner.On("RunInDir", repositoryPath, "git",
		[]string{"remote", "set-url", "origin", "repo-url"}).Return([]byte(""), nil)
	commandRunner.On("RunWithEnvInDir", repositoryPath, sshBatchModeEnv, "git",
		[]string{"-c", "core.autocrlf=false", "fetch", "origin", "-f", "v1.0.0"}).Return([]byte(""), nil)
	commandRunner.On("RunInDir", repositoryPath, "git",
		[]string{"-c", "core.autocrlf=false", "checkout", "v1.0.0"}).Return([]byte(""), nil)
	// A tag ref is not a remote branch, so no hard reset happens.
	commandRunner.On("RunInDir", repositoryPath, "git",
		[]string{"rev-parse", "--verify", "--quiet", "refs/remotes/origin/v1.0.0"}).
		Return(nil, errors.New("not a branch"))

	sut := ProvideGit(commandRunner, fileSystem)

	err := sut.Download("repo-url", "v1.0.0", repositoryPath)

	assert.NoError(t, err)
	commandRunner.AssertExpectations(t)
}

func TestGit_Download_WrapsSSHAuthFailures(t *testing.T) {
	commandRunner := new(testutil.MockCommandRunner)
	fileSystem := new(testutil.MockFileSystem)
	repositoryPath := filepath.Join(t.TempDir(), "templates", "phd-cluster-template")

	fileSystem.On("FileExists", filepath.Join(repositoryPath, ".git", "HEAD")).Return(false, nil)
	commandRunner.On("RunWithEnv", "git", sshBatchModeEnv,
		[]string{"clone", "-c", "core.autocrlf=false", "git@github.com:org/repo.git", "--branch", "main", repositoryPath}).
		Return([]byte("git@github.com: Permission denied (publickey)."), errors.New("exit status 128"))

	sut := ProvideGit(commandRunner, fileSystem)

	err := sut.Download("git@github.com:org/repo.git", "main", repositoryPath)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ssh-add")
}
