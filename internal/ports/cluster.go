package ports

// Cluster is the Kubernetes API surface the tool needs. Patch operations
// are last-writer-wins merge patches; a nil map value deletes the key.
// Delete operations tolerate missing resources.
type Cluster interface {
	CreateNamespace(name string) error

	ReadConfigMap(name, namespace string) (map[string]string, error)
	PatchConfigMap(name, namespace string, data map[string]*string) error

	ReadSecret(name, namespace string) (map[string][]byte, error)
	PatchSecret(name, namespace string, data map[string]*string) error
	PatchSecretString(name, namespace string, stringData map[string]string) error

	DeleteServiceAccount(name, namespace string) error
	DeleteSecret(name, namespace string) error
	DeleteRole(name, namespace string) error
	DeleteRoleBinding(name, namespace string) error
	DeleteClusterRole(name string) error
	DeleteClusterRoleBinding(name string) error
}
