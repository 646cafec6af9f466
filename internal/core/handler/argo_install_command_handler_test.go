package handler

import (
	"testing"

	"phd/internal/core/domain"
	"phd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func provideInstallTestConfig() *domain.ClusterConfig {
	return &domain.ClusterConfig{
		ClusterDomain:        "phd.example.com",
		ArgoCDVersion:        "stable",
		ArgoWorkflowsVersion: "stable",
		ManifestsVersion:     "main",
	}
}

func TestArgoInstallCommandHandler_Handle_InstallsBoth(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	cluster := new(testutil.MockCluster)
	fetcher := new(testutil.MockManifestFetcher)
	commandRunner := new(testutil.MockCommandRunner)
	passwordHasher := new(testutil.MockPasswordHasher)
	keyring := new(testutil.MockKeyring)

	config := provideInstallTestConfig()
	config.ArgoAdminPassword = "hunter2"
	configRepository.On("LoadClusterConfig").Return(config, nil)
	passwordHasher.On("Hash", "hunter2").Return("hashed", nil)

	cluster.On("CreateNamespace", "argocd").Return(nil)
	cluster.On("CreateNamespace", "argo").Return(nil)
	fetcher.On("Fetch", mock.Anything).Return(applyTestManifest, nil)
	commandRunner.On("RunWithStdin", mock.Anything, "kubectl", []string{"apply", "-f", "-", "-n", "argocd"}).
		Return([]byte(""), nil)
	commandRunner.On("RunWithStdin", mock.Anything, "kubectl", []string{"apply", "-f", "-", "-n", "argo"}).
		Return([]byte(""), nil)

	sut := ProvideArgoInstallCommandHandler(
		configRepository, cluster,
		provideTestManifestApplier(fetcher, commandRunner),
		passwordHasher, keyring)

	err := sut.Handle(false, false)

	assert.NoError(t, err)
	cluster.AssertExpectations(t)
	fetcher.AssertCalled(t, "Fetch", "https://raw.githubusercontent.com/argoproj/argo-cd/stable/manifests/install.yaml")
	fetcher.AssertCalled(t, "Fetch", "https://raw.githubusercontent.com/argoproj/argo-workflows/stable/manifests/install.yaml")
	fetcher.AssertCalled(t, "Fetch", testManifestsURL+"/phd-mysql-provision-template.yml")
	fetcher.AssertCalled(t, "Fetch", testManifestsURL+"/phd-storage-deprovision-template.yml")
	keyring.AssertNotCalled(t, "HasKey", mock.Anything)
}

func TestArgoInstallCommandHandler_Handle_ArgoCDOnlyUsesKeyringPassword(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	cluster := new(testutil.MockCluster)
	fetcher := new(testutil.MockManifestFetcher)
	commandRunner := new(testutil.MockCommandRunner)
	passwordHasher := new(testutil.MockPasswordHasher)
	keyring := new(testutil.MockKeyring)

	configRepository.On("LoadClusterConfig").Return(provideInstallTestConfig(), nil)
	keyring.On("HasKey", adminPasswordKeyName).Return(true, nil)
	keyring.On("GetKey", adminPasswordKeyName).Return("stored-pass", nil)
	passwordHasher.On("Hash", "stored-pass").Return("hashed", nil)

	cluster.On("CreateNamespace", "argocd").Return(nil)
	fetcher.On("Fetch", mock.Anything).Return(applyTestManifest, nil)
	commandRunner.On("RunWithStdin", mock.Anything, "kubectl", []string{"apply", "-f", "-", "-n", "argocd"}).
		Return([]byte(""), nil)

	sut := ProvideArgoInstallCommandHandler(
		configRepository, cluster,
		provideTestManifestApplier(fetcher, commandRunner),
		passwordHasher, keyring)

	err := sut.Handle(true, false)

	assert.NoError(t, err)
	keyring.AssertExpectations(t)
	cluster.AssertNotCalled(t, "CreateNamespace", "argo")
	fetcher.AssertNotCalled(t, "Fetch", testManifestsURL+"/phd-mysql-provision-template.yml")
}

func TestArgoInstallCommandHandler_Handle_WorkflowsOnlyGeneratesPassword(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	cluster := new(testutil.MockCluster)
	fetcher := new(testutil.MockManifestFetcher)
	commandRunner := new(testutil.MockCommandRunner)
	passwordHasher := new(testutil.MockPasswordHasher)
	keyring := new(testutil.MockKeyring)

	configRepository.On("LoadClusterConfig").Return(provideInstallTestConfig(), nil)
	keyring.On("HasKey", adminPasswordKeyName).Return(false, nil)
	passwordHasher.On("Generate", generatedPasswordLength).Return("generated-pass", nil)
	keyring.On("SetKey", adminPasswordKeyName, "generated-pass").Return(nil)
	passwordHasher.On("Hash", "generated-pass").Return("hashed", nil)

	cluster.On("CreateNamespace", "argo").Return(nil)
	fetcher.On("Fetch", mock.Anything).Return(applyTestManifest, nil)
	commandRunner.On("RunWithStdin", mock.Anything, "kubectl", []string{"apply", "-f", "-", "-n", "argo"}).
		Return([]byte(""), nil)

	sut := ProvideArgoInstallCommandHandler(
		configRepository, cluster,
		provideTestManifestApplier(fetcher, commandRunner),
		passwordHasher, keyring)

	err := sut.Handle(false, true)

	assert.NoError(t, err)
	keyring.AssertExpectations(t)
	passwordHasher.AssertExpectations(t)
	cluster.AssertNotCalled(t, "CreateNamespace", "argocd")
}
