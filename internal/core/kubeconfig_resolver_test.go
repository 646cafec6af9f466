package core

import (
	"errors"
	"path/filepath"
	"testing"

	"phd/internal/core/domain"
	"phd/internal/ports"
	"phd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const validKubeconfig = "apiVersion: v1\nkind: Config\nclusters: []\n"

func TestKubeconfigResolver_UsesTerraformOutput(t *testing.T) {
	workingDir := t.TempDir()
	t.Chdir(workingDir)
	infrastructureDir := filepath.Join(workingDir, "infrastructure")

	commandRunner := new(testutil.MockCommandRunner)
	commandRunner.On("LookPath", "tofu").Return("/usr/bin/tofu", nil)
	commandRunner.On("RunInDir", infrastructureDir, "tofu", []string{"output", "-raw", "kubeconfig_content"}).
		Return([]byte(validKubeconfig), nil)
	fileSystem := new(testutil.MockFileSystem)
	fileSystem.On("HomeDir").Return("/home/operator", nil)
	fileSystem.On("FileExists", infrastructureDir).Return(true, nil)
	fileSystem.On("WriteFileAtomic", "/home/operator/.kube/config", mock.Anything, ports.ReadWrite).Return(nil)
	sut := ProvideKubeconfigResolver(commandRunner, fileSystem)

	path, err := sut.Resolve()

	assert.Nil(t, err)
	assert.Equal(t, "/home/operator/.kube/config", path)
	fileSystem.AssertExpectations(t)
}

func TestKubeconfigResolver_FallsBackToTerraformBinary(t *testing.T) {
	workingDir := t.TempDir()
	t.Chdir(workingDir)
	infrastructureDir := filepath.Join(workingDir, "infrastructure")

	commandRunner := new(testutil.MockCommandRunner)
	commandRunner.On("LookPath", "tofu").Return("", errors.New("not found"))
	commandRunner.On("LookPath", "terraform").Return("/usr/bin/terraform", nil)
	commandRunner.On("RunInDir", infrastructureDir, "terraform", []string{"output", "-raw", "kubeconfig_content"}).
		Return([]byte(validKubeconfig), nil)
	fileSystem := new(testutil.MockFileSystem)
	fileSystem.On("HomeDir").Return("/home/operator", nil)
	fileSystem.On("FileExists", infrastructureDir).Return(true, nil)
	fileSystem.On("WriteFileAtomic", mock.Anything, mock.Anything, ports.ReadWrite).Return(nil)
	sut := ProvideKubeconfigResolver(commandRunner, fileSystem)

	_, err := sut.Resolve()

	assert.Nil(t, err)
	commandRunner.AssertExpectations(t)
}

func TestKubeconfigResolver_RejectsTerraformNoise(t *testing.T) {
	workingDir := t.TempDir()
	t.Chdir(workingDir)
	infrastructureDir := filepath.Join(workingDir, "infrastructure")

	commandRunner := new(testutil.MockCommandRunner)
	commandRunner.On("LookPath", "tofu").Return("/usr/bin/tofu", nil)
	commandRunner.On("RunInDir", infrastructureDir, "tofu", []string{"output", "-raw", "kubeconfig_content"}).
		Return([]byte("Warning: no outputs defined\napiVersion: v1\nkind: Config\n"), nil)
	fileSystem := new(testutil.MockFileSystem)
	fileSystem.On("HomeDir").Return("/home/operator", nil)
	fileSystem.On("FileExists", infrastructureDir).Return(true, nil)
	fileSystem.On("FileExists", "/home/operator/.kube/config").Return(true, nil)
	sut := ProvideKubeconfigResolver(commandRunner, fileSystem)

	path, err := sut.Resolve()

	assert.Nil(t, err)
	assert.Equal(t, "/home/operator/.kube/config", path)
	fileSystem.AssertNotCalled(t, "WriteFileAtomic")
}

func TestKubeconfigResolver_UsesEnvironmentContent(t *testing.T) {
	workingDir := t.TempDir()
	t.Chdir(workingDir)
	t.Setenv("KUBECONFIG_CONTENT", validKubeconfig)

	commandRunner := new(testutil.MockCommandRunner)
	commandRunner.On("LookPath", "tofu").Return("", errors.New("not found"))
	commandRunner.On("LookPath", "terraform").Return("", errors.New("not found"))
	fileSystem := new(testutil.MockFileSystem)
	fileSystem.On("HomeDir").Return("/home/operator", nil)
	var written []byte
	fileSystem.On("WriteFileAtomic", "/home/operator/.kube/config", mock.Anything, ports.ReadWrite).
		Run(func(args mock.Arguments) { written = args.Get(1).([]byte) }).Return(nil)
	sut := ProvideKubeconfigResolver(commandRunner, fileSystem)

	_, err := sut.Resolve()

	assert.Nil(t, err)
	assert.Contains(t, string(written), "kind: Config")
}

func TestKubeconfigResolver_DecodesBase64EnvironmentContent(t *testing.T) {
	workingDir := t.TempDir()
	t.Chdir(workingDir)
	t.Setenv("KUBECONFIG_CONTENT", "YXBpVmVyc2lvbjogdjEKa2luZDogQ29uZmlnCg==")

	commandRunner := new(testutil.MockCommandRunner)
	commandRunner.On("LookPath", mock.Anything).Return("", errors.New("not found"))
	fileSystem := new(testutil.MockFileSystem)
	fileSystem.On("HomeDir").Return("/home/operator", nil)
	var written []byte
	fileSystem.On("WriteFileAtomic", mock.Anything, mock.Anything, ports.ReadWrite).
		Run(func(args mock.Arguments) { written = args.Get(1).([]byte) }).Return(nil)
	sut := ProvideKubeconfigResolver(commandRunner, fileSystem)

	_, err := sut.Resolve()

	assert.Nil(t, err)
	assert.Equal(t, "apiVersion: v1\nkind: Config\n", string(written))
}

func TestKubeconfigResolver_NoSourceAvailable(t *testing.T) {
	workingDir := t.TempDir()
	t.Chdir(workingDir)

	commandRunner := new(testutil.MockCommandRunner)
	commandRunner.On("LookPath", mock.Anything).Return("", errors.New("not found"))
	fileSystem := new(testutil.MockFileSystem)
	fileSystem.On("HomeDir").Return("/home/operator", nil)
	fileSystem.On("FileExists", "/home/operator/.kube/config").Return(false, nil)
	sut := ProvideKubeconfigResolver(commandRunner, fileSystem)

	_, err := sut.Resolve()

	assert.NotNil(t, err)
	assert.IsType(t, &domain.ConfigurationError{}, err)
}
