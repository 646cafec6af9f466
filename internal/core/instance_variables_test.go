package core

import (
	"testing"

	"phd/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildInstanceVariables_CombinesConfigAndInstanceData(t *testing.T) {
	config := &domain.ClusterConfig{
		Provision: domain.ProvisionConfig{
			MySQLRootUser:          "root",
			MySQLRootPassword:      "root-pass",
			MongoDBProvider:        "atlas",
			MongoDBClusterID:       "cluster-1",
			DigitalOceanToken:      "do-token",
			AtlasPublicKey:         "pub",
			AtlasPrivateKey:        "priv",
			AtlasProjectID:         "proj",
			AtlasClusterName:       "Cluster0",
			StorageAccessKeyID:     "access",
			StorageSecretAccessKey: "secret",
			StorageMakePublic:      "false",
		},
	}
	configData := map[string]interface{}{
		"MYSQL_DATABASE":      "lms_prod",
		"MYSQL_USERNAME":      "lms",
		"MYSQL_PASSWORD":      "db-pass",
		"MYSQL_HOST":          "db.example.com",
		"MYSQL_PORT":          3306,
		"MONGODB_DATABASE":    "lms_mongo",
		"STORAGE_BUCKET_NAME": "lms-bucket",
	}
	options := InstanceOptions{
		PlatformName:       "LMS Prod",
		PlatformRepository: "https://github.com/openedx/edx-platform.git",
		PlatformVersion:    "master",
		TutorVersion:       "v18.0.0",
	}

	variables := BuildInstanceVariables(config, "lms-prod", options, configData)

	assert.Equal(t, "lms-prod", variables["PHD_INSTANCE_NAME"])
	assert.Equal(t, "LMS Prod", variables["PHD_PLATFORM_NAME"])
	assert.Equal(t, "master", variables["PHD_EDX_PLATFORM_VERSION"])
	assert.Equal(t, "lms_prod", variables["PHD_INSTANCE_MYSQL_DATABASE"])
	assert.Equal(t, "3306", variables["PHD_INSTANCE_MYSQL_PORT"])
	assert.Equal(t, "root", variables["PHD_INSTANCE_MYSQL_ROOT_USER"])
	assert.Equal(t, "root-pass", variables["PHD_INSTANCE_MYSQL_ROOT_PASSWORD"])
	assert.Equal(t, "atlas", variables["PHD_INSTANCE_MONGODB_PROVIDER"])
	assert.Equal(t, "do-token", variables["PHD_INSTANCE_DIGITALOCEAN_TOKEN"])
	assert.Equal(t, "lms-bucket", variables["PHD_INSTANCE_STORAGE_BUCKET_NAME"])
	assert.Equal(t, "access", variables["PHD_INSTANCE_STORAGE_ACCESS_KEY_ID"])
	assert.Equal(t, "false", variables["PHD_INSTANCE_STORAGE_MAKE_PUBLIC"])
	// Keys without instance data render as empty strings, not missing keys.
	assert.Equal(t, "", variables["PHD_INSTANCE_STORAGE_ENDPOINT_URL"])
}

func TestBuildInstanceVariables_RootPasswordFallsBackToInstancePassword(t *testing.T) {
	config := &domain.ClusterConfig{}
	configData := map[string]interface{}{"MYSQL_PASSWORD": "db-pass"}

	variables := BuildInstanceVariables(config, "demo", InstanceOptions{}, configData)

	assert.Equal(t, "db-pass", variables["PHD_INSTANCE_MYSQL_ROOT_PASSWORD"])
	assert.Equal(t, "db-pass", variables["PHD_INSTANCE_MYSQL_PASSWORD"])
}
