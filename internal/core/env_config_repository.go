package core

import (
	"encoding/json"
	"os"
	"strings"

	"phd/internal/core/domain"
	"phd/internal/ports"
)

const contextFilePath = "context.json"

// ConfigRepository loads the cluster-level configuration.
type ConfigRepository interface {
	LoadClusterConfig() (*domain.ClusterConfig, error)
}

// envKeys is the closed set of recognized PHD_* variables. Anything else
// with the prefix is rejected so typos surface instead of being ignored.
var envKeys = map[string]bool{
	"PHD_CLUSTER_DOMAIN":              true,
	"PHD_ENVIRONMENT":                 true,
	"PHD_ARGOCD_VERSION":              true,
	"PHD_ARGO_WORKFLOWS_VERSION":      true,
	"PHD_OPENCRAFT_MANIFESTS_VERSION": true,
	"PHD_INSTANCES_DIRECTORY":         true,
	"PHD_ARGO_ADMIN_PASSWORD":         true,
	"PHD_LOG_LEVEL":                   true,
	"PHD_LOG_FILE":                    true,
	"PHD_MYSQL_ROOT_USER":             true,
	"PHD_MYSQL_ROOT_PASSWORD":         true,
	"PHD_MONGODB_PROVIDER":            true,
	"PHD_MONGODB_CLUSTER_ID":          true,
	"PHD_DIGITALOCEAN_TOKEN":          true,
	"PHD_ATLAS_PUBLIC_KEY":            true,
	"PHD_ATLAS_PRIVATE_KEY":           true,
	"PHD_ATLAS_PROJECT_ID":            true,
	"PHD_ATLAS_CLUSTER_NAME":          true,
	"PHD_STORAGE_ACCESS_KEY_ID":       true,
	"PHD_STORAGE_SECRET_ACCESS_KEY":   true,
	"PHD_STORAGE_MAKE_PUBLIC":         true,
}

// EnvConfigRepository builds the cluster configuration from PHD_*-prefixed
// environment variables, defaulting the cluster domain from ./context.json
// when present.
type EnvConfigRepository struct {
	fileSystem ports.FileSystem
	config     *domain.ClusterConfig
}

func ProvideEnvConfigRepository(fileSystem ports.FileSystem) *EnvConfigRepository {
	return &EnvConfigRepository{fileSystem: fileSystem}
}

var _ ConfigRepository = (*EnvConfigRepository)(nil)

func (r *EnvConfigRepository) LoadClusterConfig() (*domain.ClusterConfig, error) {
	if r.config != nil {
		return r.config, nil
	}

	for _, entry := range os.Environ() {
		key, _, _ := strings.Cut(entry, "=")
		if strings.HasPrefix(key, "PHD_") && !strings.HasPrefix(key, "PHD_INSTANCE_") && !envKeys[key] {
			return nil, domain.NewConfigurationError("unknown configuration variable %s", key)
		}
	}

	config := &domain.ClusterConfig{
		ClusterDomain:        envOrDefault("PHD_CLUSTER_DOMAIN", r.loadClusterDomainFromContext()),
		Environment:          envOrDefault("PHD_ENVIRONMENT", "production"),
		ArgoCDVersion:        envOrDefault("PHD_ARGOCD_VERSION", "stable"),
		ArgoWorkflowsVersion: envOrDefault("PHD_ARGO_WORKFLOWS_VERSION", "stable"),
		ManifestsVersion:     envOrDefault("PHD_OPENCRAFT_MANIFESTS_VERSION", "main"),
		InstancesDirectory:   envOrDefault("PHD_INSTANCES_DIRECTORY", "instances"),
		ArgoAdminPassword:    os.Getenv("PHD_ARGO_ADMIN_PASSWORD"),
		Provision: domain.ProvisionConfig{
			MySQLRootUser:          envOrDefault("PHD_MYSQL_ROOT_USER", "root"),
			MySQLRootPassword:      os.Getenv("PHD_MYSQL_ROOT_PASSWORD"),
			MongoDBProvider:        os.Getenv("PHD_MONGODB_PROVIDER"),
			MongoDBClusterID:       os.Getenv("PHD_MONGODB_CLUSTER_ID"),
			DigitalOceanToken:      os.Getenv("PHD_DIGITALOCEAN_TOKEN"),
			AtlasPublicKey:         os.Getenv("PHD_ATLAS_PUBLIC_KEY"),
			AtlasPrivateKey:        os.Getenv("PHD_ATLAS_PRIVATE_KEY"),
			AtlasProjectID:         os.Getenv("PHD_ATLAS_PROJECT_ID"),
			AtlasClusterName:       os.Getenv("PHD_ATLAS_CLUSTER_NAME"),
			StorageAccessKeyID:     os.Getenv("PHD_STORAGE_ACCESS_KEY_ID"),
			StorageSecretAccessKey: os.Getenv("PHD_STORAGE_SECRET_ACCESS_KEY"),
			StorageMakePublic:      envOrDefault("PHD_STORAGE_MAKE_PUBLIC", "false"),
		},
	}

	r.config = config
	return config, nil
}

// loadClusterDomainFromContext reads the cluster_domain field of the
// context.json written by cluster scaffolding. A missing or malformed file
// just means no default.
func (r *EnvConfigRepository) loadClusterDomainFromContext() string {
	data, err := r.fileSystem.ReadFile(contextFilePath)
	if err != nil {
		return ""
	}

	var context domain.ClusterContext
	if err := json.Unmarshal(data, &context); err != nil {
		return ""
	}
	return context.ClusterDomain
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
