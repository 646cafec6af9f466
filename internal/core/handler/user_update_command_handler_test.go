package handler

import (
	"testing"

	"phd/internal/core"
	"phd/internal/core/domain"
	"phd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserUpdateCommandHandler_Handle_Success(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	cluster := new(testutil.MockCluster)
	fetcher := new(testutil.MockManifestFetcher)
	commandRunner := new(testutil.MockCommandRunner)

	configRepository.On("LoadClusterConfig").Return(&domain.ClusterConfig{ManifestsVersion: "main"}, nil)
	fetcher.On("Fetch", testManifestsURL+"/argo-user-admin-role.yml").Return(applyTestManifest, nil)
	fetcher.On("Fetch", testManifestsURL+"/argo-user-bindings.yml").Return(applyTestManifest, nil)
	commandRunner.On("RunWithStdin", mock.Anything, "kubectl", []string{"apply", "-f", "-", "-n", "argo"}).
		Return([]byte(""), nil)

	cluster.On("ReadConfigMap", "argo-server-rbac-config", "argo").
		Return(map[string]string{"policy.csv": "g, alice, role:developer"}, nil)
	cluster.On("PatchConfigMap", "argo-server-rbac-config", "argo", map[string]*string{
		"policy.csv": strPtr("g, alice, role:admin"),
	}).Return(nil)
	cluster.On("ReadConfigMap", "argocd-rbac-cm", "argocd").
		Return(map[string]string{"policy.csv": "g, bob, role:readonly\ng, alice, role:developer"}, nil)
	cluster.On("PatchConfigMap", "argocd-rbac-cm", "argocd", map[string]*string{
		"policy.csv": strPtr("g, bob, role:readonly\ng, alice, role:admin"),
	}).Return(nil)

	sut := ProvideUserUpdateCommandHandler(
		configRepository,
		provideTestManifestApplier(fetcher, commandRunner),
		core.ProvideRbacEditor(cluster))

	err := sut.Handle("alice", "admin")

	assert.NoError(t, err)
	cluster.AssertExpectations(t)
	fetcher.AssertExpectations(t)
}

func TestUserUpdateCommandHandler_Handle_RejectsInvalidRole(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)

	sut := ProvideUserUpdateCommandHandler(
		configRepository,
		provideTestManifestApplier(new(testutil.MockManifestFetcher), new(testutil.MockCommandRunner)),
		core.ProvideRbacEditor(new(testutil.MockCluster)))

	err := sut.Handle("alice", "root")

	assert.IsType(t, &domain.ValidationError{}, err)
	configRepository.AssertNotCalled(t, "LoadClusterConfig")
}
