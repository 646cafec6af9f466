package core

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"phd/internal/core/domain"
	"phd/internal/ports"
)

// KubeconfigResolver materializes a kubeconfig at ~/.kube/config before any
// cluster access. Sources are tried in order: the infrastructure directory's
// Terraform/OpenTofu output, the KUBECONFIG_CONTENT environment variable,
// then an existing kubeconfig file.
type KubeconfigResolver struct {
	commandRunner ports.CommandRunner
	fileSystem    ports.FileSystem
}

func ProvideKubeconfigResolver(commandRunner ports.CommandRunner, fileSystem ports.FileSystem) *KubeconfigResolver {
	return &KubeconfigResolver{
		commandRunner: commandRunner,
		fileSystem:    fileSystem,
	}
}

// Resolve writes the resolved kubeconfig to ~/.kube/config and returns its
// path. The file is written atomically with owner-only permissions.
func (r *KubeconfigResolver) Resolve() (string, error) {
	home, err := r.fileSystem.HomeDir()
	if err != nil {
		return "", err
	}
	kubeconfigPath := filepath.Join(home, ".kube", "config")

	content := r.fromTerraform()
	if content == "" {
		content = r.fromEnv()
	}

	if content == "" {
		exists, err := r.fileSystem.FileExists(kubeconfigPath)
		if err != nil {
			return "", err
		}
		if exists {
			return kubeconfigPath, nil
		}

		return "", domain.NewConfigurationError(
			"no kubeconfig available; ensure one of the following:\n" +
				"1. run this command from a directory with an infrastructure directory present\n" +
				"2. set the KUBECONFIG_CONTENT environment variable\n" +
				"3. have a valid kubeconfig at ~/.kube/config")
	}

	if err := r.fileSystem.WriteFileAtomic(kubeconfigPath, []byte(content), ports.ReadWrite); err != nil {
		return "", domain.NewConfigurationError("failed to write kubeconfig: %v", err)
	}
	return kubeconfigPath, nil
}

// fromTerraform asks tofu (preferred) or terraform for the
// kubeconfig_content output of ./infrastructure. Any failure means the
// source is unavailable, not an error.
func (r *KubeconfigResolver) fromTerraform() string {
	command := ""
	for _, candidate := range []string{"tofu", "terraform"} {
		if _, err := r.commandRunner.LookPath(candidate); err == nil {
			command = candidate
			break
		}
	}
	if command == "" {
		return ""
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	// Step out of the infrastructure directory if invoked from inside it.
	if filepath.Base(workingDir) == "infrastructure" {
		workingDir = filepath.Dir(workingDir)
	}

	infrastructureDir := filepath.Join(workingDir, "infrastructure")
	exists, err := r.fileSystem.FileExists(infrastructureDir)
	if err != nil || !exists {
		return ""
	}

	output, err := r.commandRunner.RunInDir(infrastructureDir, command, "output", "-raw", "kubeconfig_content")
	if err != nil {
		return ""
	}

	kubeconfig := strings.TrimSpace(string(output))
	if !isValidKubeconfig(kubeconfig) {
		return ""
	}
	return kubeconfig
}

// fromEnv reads KUBECONFIG_CONTENT, accepting base64-encoded or plain text.
func (r *KubeconfigResolver) fromEnv() string {
	content := strings.TrimSpace(os.Getenv("KUBECONFIG_CONTENT"))
	if content == "" {
		return ""
	}

	if decoded, err := base64.StdEncoding.Strict().DecodeString(content); err == nil {
		return string(decoded)
	}
	return content
}

// isValidKubeconfig filters out ANSI escapes and tool warnings that leak
// into terraform output streams.
func isValidKubeconfig(content string) bool {
	return content != "" &&
		strings.HasPrefix(content, "apiVersion:") &&
		strings.Contains(content, "kind: Config") &&
		!strings.Contains(content, "Warning:")
}
