package domain

import "fmt"

// Namespaces used by the installed controllers.
const (
	ArgoNamespace   = "argo"
	ArgoCDNamespace = "argocd"
)

// ClusterConfig is the PHD_*-prefixed environment configuration layer.
// It is constructed once by the config repository and passed down
// explicitly; there is no process-wide singleton.
type ClusterConfig struct {
	// ClusterDomain is the base domain of the cluster (e.g. example.com).
	// Defaults to the cluster_domain field of ./context.json when unset.
	ClusterDomain string

	// Environment is the deployment environment (production, staging, ...).
	Environment string

	// ArgoCDVersion and ArgoWorkflowsVersion select the upstream install
	// manifests; "stable" tracks the latest released manifests.
	ArgoCDVersion        string
	ArgoWorkflowsVersion string

	// ManifestsVersion selects the ref of the platform manifests repository.
	ManifestsVersion string

	// InstancesDirectory is where generated instance configuration lives.
	InstancesDirectory string

	// ArgoAdminPassword is the plaintext admin password. When empty a
	// password is recalled from the keyring or freshly generated.
	ArgoAdminPassword string

	// Provision carries the credentials handed to provisioning workflows.
	Provision ProvisionConfig
}

// ProvisionConfig bundles the external-provider credentials consumed by the
// MySQL, MongoDB, and storage provisioning workflows.
type ProvisionConfig struct {
	MySQLRootUser     string
	MySQLRootPassword string

	MongoDBProvider   string
	MongoDBClusterID  string
	DigitalOceanToken string

	AtlasPublicKey   string
	AtlasPrivateKey  string
	AtlasProjectID   string
	AtlasClusterName string

	StorageAccessKeyID     string
	StorageSecretAccessKey string
	StorageMakePublic      string
}

// ManifestsURL is the base URL the platform manifests are fetched from,
// following the raw-GitHub convention {base}/{template}.yml.
func (c *ClusterConfig) ManifestsURL() string {
	return fmt.Sprintf(
		"https://raw.githubusercontent.com/open-craft/phd-cluster-template/%s/manifests",
		c.ManifestsVersion,
	)
}

// ArgoCDInstallURL is the upstream ArgoCD install manifest for the
// configured version.
func (c *ClusterConfig) ArgoCDInstallURL() string {
	return fmt.Sprintf(
		"https://raw.githubusercontent.com/argoproj/argo-cd/%s/manifests/install.yaml",
		c.ArgoCDVersion,
	)
}

// ArgoWorkflowsInstallURL is the upstream Argo Workflows install manifest
// for the configured version.
func (c *ClusterConfig) ArgoWorkflowsInstallURL() string {
	return fmt.Sprintf(
		"https://raw.githubusercontent.com/argoproj/argo-workflows/%s/manifests/install.yaml",
		c.ArgoWorkflowsVersion,
	)
}

// ClusterContext is the persisted ./context.json written when a cluster
// configuration is scaffolded.
type ClusterContext struct {
	ClusterDomain string `json:"cluster_domain"`
	Environment   string `json:"environment"`
}
