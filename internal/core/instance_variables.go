package core

import (
	"fmt"

	"phd/internal/core/domain"
)

// InstanceOptions carries the per-instance settings supplied on the
// command line when creating an instance.
type InstanceOptions struct {
	PlatformName       string
	PlatformRepository string
	PlatformVersion    string
	TutorVersion       string
}

// BuildInstanceVariables assembles the PHD_INSTANCE_* variable set handed
// to the provisioning workflow templates. Database and storage settings
// come from the instance's rendered config.yml; provider credentials come
// from the cluster configuration.
func BuildInstanceVariables(
	config *domain.ClusterConfig,
	instanceName string,
	options InstanceOptions,
	configData map[string]interface{},
) map[string]string {
	str := func(key string) string {
		if value, ok := configData[key]; ok {
			return fmt.Sprintf("%v", value)
		}
		return ""
	}

	mysqlRootPassword := config.Provision.MySQLRootPassword
	if mysqlRootPassword == "" {
		mysqlRootPassword = str("MYSQL_PASSWORD")
	}

	return map[string]string{
		"PHD_INSTANCE_NAME":           instanceName,
		"PHD_PLATFORM_NAME":           options.PlatformName,
		"PHD_EDX_PLATFORM_REPOSITORY": options.PlatformRepository,
		"PHD_EDX_PLATFORM_VERSION":    options.PlatformVersion,
		"PHD_TUTOR_VERSION":           options.TutorVersion,

		"PHD_INSTANCE_MYSQL_DATABASE":      str("MYSQL_DATABASE"),
		"PHD_INSTANCE_MYSQL_USERNAME":      str("MYSQL_USERNAME"),
		"PHD_INSTANCE_MYSQL_PASSWORD":      str("MYSQL_PASSWORD"),
		"PHD_INSTANCE_MYSQL_HOST":          str("MYSQL_HOST"),
		"PHD_INSTANCE_MYSQL_PORT":          str("MYSQL_PORT"),
		"PHD_INSTANCE_MYSQL_ROOT_USER":     config.Provision.MySQLRootUser,
		"PHD_INSTANCE_MYSQL_ROOT_PASSWORD": mysqlRootPassword,

		"PHD_INSTANCE_MONGODB_DATABASE":   str("MONGODB_DATABASE"),
		"PHD_INSTANCE_MONGODB_USERNAME":   str("MONGODB_USERNAME"),
		"PHD_INSTANCE_MONGODB_PASSWORD":   str("MONGODB_PASSWORD"),
		"PHD_INSTANCE_MONGODB_PROVIDER":   config.Provision.MongoDBProvider,
		"PHD_INSTANCE_MONGODB_CLUSTER_ID": config.Provision.MongoDBClusterID,

		"PHD_INSTANCE_DIGITALOCEAN_TOKEN": config.Provision.DigitalOceanToken,
		"PHD_INSTANCE_ATLAS_PUBLIC_KEY":   config.Provision.AtlasPublicKey,
		"PHD_INSTANCE_ATLAS_PRIVATE_KEY":  config.Provision.AtlasPrivateKey,
		"PHD_INSTANCE_ATLAS_PROJECT_ID":   config.Provision.AtlasProjectID,
		"PHD_INSTANCE_ATLAS_CLUSTER_NAME": config.Provision.AtlasClusterName,

		"PHD_INSTANCE_STORAGE_BUCKET_NAME":       str("STORAGE_BUCKET_NAME"),
		"PHD_INSTANCE_STORAGE_TYPE":              str("STORAGE_TYPE"),
		"PHD_INSTANCE_STORAGE_REGION":            str("STORAGE_REGION"),
		"PHD_INSTANCE_STORAGE_ENDPOINT_URL":      str("STORAGE_ENDPOINT_URL"),
		"PHD_INSTANCE_STORAGE_ACCESS_KEY_ID":     config.Provision.StorageAccessKeyID,
		"PHD_INSTANCE_STORAGE_SECRET_ACCESS_KEY": config.Provision.StorageSecretAccessKey,
		"PHD_INSTANCE_STORAGE_MAKE_PUBLIC":       config.Provision.StorageMakePublic,
	}
}
