package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClusterConfig_ManifestsURL(t *testing.T) {
	config := ClusterConfig{ManifestsVersion: "v1.2.3"}

	assert.Equal(
		t,
		"https://raw.githubusercontent.com/open-craft/phd-cluster-template/v1.2.3/manifests",
		config.ManifestsURL(),
	)
}

func TestClusterConfig_ArgoCDInstallURL(t *testing.T) {
	config := ClusterConfig{ArgoCDVersion: "stable"}

	assert.Equal(
		t,
		"https://raw.githubusercontent.com/argoproj/argo-cd/stable/manifests/install.yaml",
		config.ArgoCDInstallURL(),
	)
}

func TestClusterConfig_ArgoWorkflowsInstallURL(t *testing.T) {
	config := ClusterConfig{ArgoWorkflowsVersion: "v3.5.0"}

	assert.Equal(
		t,
		"https://raw.githubusercontent.com/argoproj/argo-workflows/v3.5.0/manifests/install.yaml",
		config.ArgoWorkflowsInstallURL(),
	)
}
