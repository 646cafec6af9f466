package handler

import (
	"os"
	"path/filepath"
	"testing"

	"phd/internal/adapters/filesystem"
	"phd/internal/adapters/templater"
	"phd/internal/core"
	"phd/internal/core/domain"
	"phd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeClusterTemplateTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "cluster-template")
	projectDir := filepath.Join(root, "{{ cluster_name }}")
	require.NoError(t, os.MkdirAll(projectDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "template.json"),
		[]byte(`{"environment": "production", "cluster_name": "demo", "cluster_domain": "example.com", "short_description": "", "cloud_provider": "aws", "github_organization": "open-craft", "github_repository": "", "harmony_module_version": "", "opencraft_module_version": "", "picasso_version": "", "phd_cluster_template_version": ""}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "main.tf"),
		[]byte("domain = \"{{ cluster_domain }}\"\n"), 0644))
	return root
}

func provideTestClusterCreateHandler() ClusterCreateCommandHandler {
	fileSystem := filesystem.ProvideOsFileSystem()
	scaffolder := core.ProvideScaffolder(new(testutil.MockScm), templater.ProvideManifestTemplater(), fileSystem)
	return ProvideClusterCreateCommandHandler(scaffolder, fileSystem)
}

func TestClusterCreateCommandHandler_Handle_Success(t *testing.T) {
	t.Setenv("GITHUB_ENV", "")
	templateRoot := writeClusterTemplateTree(t)
	outputDir := t.TempDir()
	sut := provideTestClusterCreateHandler()

	err := sut.Handle(ClusterCreateRequest{
		Name:               "My Cluster",
		Domain:             "clusters.example.com",
		Environment:        "staging",
		GithubOrganization: "open-craft",
		TemplateRepository: templateRoot,
		OutputDir:          outputDir,
	})

	require.NoError(t, err)
	clusterDir := filepath.Join(outputDir, "my-cluster")

	rendered, err := os.ReadFile(filepath.Join(clusterDir, "main.tf"))
	require.NoError(t, err)
	assert.Equal(t, "domain = \"clusters.example.com\"\n", string(rendered))

	context, err := os.ReadFile(filepath.Join(clusterDir, "context.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cluster_domain": "clusters.example.com", "environment": "staging"}`, string(context))
}

func TestClusterCreateCommandHandler_Handle_ExportsClusterDir(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "github_env")
	require.NoError(t, os.WriteFile(envFile, []byte("EXISTING=1\n"), 0644))
	t.Setenv("GITHUB_ENV", envFile)
	templateRoot := writeClusterTemplateTree(t)
	outputDir := t.TempDir()
	sut := provideTestClusterCreateHandler()

	err := sut.Handle(ClusterCreateRequest{
		Name:               "demo",
		Domain:             "clusters.example.com",
		GithubOrganization: "open-craft",
		TemplateRepository: templateRoot,
		OutputDir:          outputDir,
	})

	require.NoError(t, err)
	content, err := os.ReadFile(envFile)
	require.NoError(t, err)
	assert.Equal(t, "EXISTING=1\nCLUSTER_DIR="+filepath.Join(outputDir, "demo")+"\n", string(content))
}

func TestClusterCreateCommandHandler_Handle_RejectsEmptyName(t *testing.T) {
	sut := provideTestClusterCreateHandler()

	err := sut.Handle(ClusterCreateRequest{Domain: "clusters.example.com"})

	assert.IsType(t, &domain.ValidationError{}, err)
}
