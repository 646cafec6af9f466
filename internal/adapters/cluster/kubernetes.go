package cluster

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"phd/internal/core"
	"phd/internal/core/domain"
	"phd/internal/ports"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

var _ ports.Cluster = (*Kubernetes)(nil)

// Kubernetes talks to the cluster API server through client-go.
type Kubernetes struct {
	clientSet kubernetes.Interface
}

// ProvideKubernetes resolves a kubeconfig and builds a clientset from it.
func ProvideKubernetes(resolver *core.KubeconfigResolver) (*Kubernetes, error) {
	kubeConfigPath, err := resolver.Resolve()
	if err != nil {
		return nil, err
	}

	kubeConfig, err := clientcmd.BuildConfigFromFlags("", kubeConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes config: %v", err)
	}

	clientSet, err := kubernetes.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %v", err)
	}

	return &Kubernetes{clientSet: clientSet}, nil
}

func (k *Kubernetes) CreateNamespace(name string) error {
	namespace := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name}}
	_, err := k.clientSet.CoreV1().Namespaces().Create(context.Background(), namespace, metav1.CreateOptions{})
	if err != nil && !apierrors.IsAlreadyExists(err) {
		return domain.NewClusterError(err, "failed to create namespace %s", name)
	}
	return nil
}

func (k *Kubernetes) ReadConfigMap(name, namespace string) (map[string]string, error) {
	configMap, err := k.clientSet.CoreV1().ConfigMaps(namespace).Get(context.Background(), name, metav1.GetOptions{})
	if err != nil {
		return nil, domain.NewClusterError(err, "failed to read configmap %s/%s", namespace, name)
	}
	return configMap.Data, nil
}

// PatchConfigMap merge-patches the data section. A nil value deletes the key.
func (k *Kubernetes) PatchConfigMap(name, namespace string, data map[string]*string) error {
	patch, err := json.Marshal(map[string]interface{}{"data": data})
	if err != nil {
		return fmt.Errorf("failed to marshal configmap patch: %v", err)
	}

	_, err = k.clientSet.CoreV1().ConfigMaps(namespace).Patch(
		context.Background(), name, types.MergePatchType, patch, metav1.PatchOptions{})
	if err != nil {
		return domain.NewClusterError(err, "failed to patch configmap %s/%s", namespace, name)
	}
	return nil
}

func (k *Kubernetes) ReadSecret(name, namespace string) (map[string][]byte, error) {
	secret, err := k.clientSet.CoreV1().Secrets(namespace).Get(context.Background(), name, metav1.GetOptions{})
	if err != nil {
		return nil, domain.NewClusterError(err, "failed to read secret %s/%s", namespace, name)
	}
	return secret.Data, nil
}

// PatchSecret merge-patches the data section. Values are base64-encoded on
// the wire as the API requires; a nil value deletes the key.
func (k *Kubernetes) PatchSecret(name, namespace string, data map[string]*string) error {
	encoded := make(map[string]*string, len(data))
	for key, value := range data {
		if value == nil {
			encoded[key] = nil
			continue
		}
		b64 := base64.StdEncoding.EncodeToString([]byte(*value))
		encoded[key] = &b64
	}

	patch, err := json.Marshal(map[string]interface{}{"data": encoded})
	if err != nil {
		return fmt.Errorf("failed to marshal secret patch: %v", err)
	}

	_, err = k.clientSet.CoreV1().Secrets(namespace).Patch(
		context.Background(), name, types.MergePatchType, patch, metav1.PatchOptions{})
	if err != nil {
		return domain.NewClusterError(err, "failed to patch secret %s/%s", namespace, name)
	}
	return nil
}

func (k *Kubernetes) PatchSecretString(name, namespace string, stringData map[string]string) error {
	patch, err := json.Marshal(map[string]interface{}{"stringData": stringData})
	if err != nil {
		return fmt.Errorf("failed to marshal secret patch: %v", err)
	}

	_, err = k.clientSet.CoreV1().Secrets(namespace).Patch(
		context.Background(), name, types.MergePatchType, patch, metav1.PatchOptions{})
	if err != nil {
		return domain.NewClusterError(err, "failed to patch secret %s/%s", namespace, name)
	}
	return nil
}

func (k *Kubernetes) DeleteServiceAccount(name, namespace string) error {
	err := k.clientSet.CoreV1().ServiceAccounts(namespace).Delete(context.Background(), name, metav1.DeleteOptions{})
	return k.tolerateNotFound(err, "serviceaccount", namespace, name)
}

func (k *Kubernetes) DeleteSecret(name, namespace string) error {
	err := k.clientSet.CoreV1().Secrets(namespace).Delete(context.Background(), name, metav1.DeleteOptions{})
	return k.tolerateNotFound(err, "secret", namespace, name)
}

func (k *Kubernetes) DeleteRole(name, namespace string) error {
	err := k.clientSet.RbacV1().Roles(namespace).Delete(context.Background(), name, metav1.DeleteOptions{})
	return k.tolerateNotFound(err, "role", namespace, name)
}

func (k *Kubernetes) DeleteRoleBinding(name, namespace string) error {
	err := k.clientSet.RbacV1().RoleBindings(namespace).Delete(context.Background(), name, metav1.DeleteOptions{})
	return k.tolerateNotFound(err, "rolebinding", namespace, name)
}

func (k *Kubernetes) DeleteClusterRole(name string) error {
	err := k.clientSet.RbacV1().ClusterRoles().Delete(context.Background(), name, metav1.DeleteOptions{})
	return k.tolerateNotFound(err, "clusterrole", "", name)
}

func (k *Kubernetes) DeleteClusterRoleBinding(name string) error {
	err := k.clientSet.RbacV1().ClusterRoleBindings().Delete(context.Background(), name, metav1.DeleteOptions{})
	return k.tolerateNotFound(err, "clusterrolebinding", "", name)
}

func (k *Kubernetes) tolerateNotFound(err error, kind, namespace, name string) error {
	if err == nil || apierrors.IsNotFound(err) {
		return nil
	}
	if namespace == "" {
		return domain.NewClusterError(err, "failed to delete %s %s", kind, name)
	}
	return domain.NewClusterError(err, "failed to delete %s %s/%s", kind, namespace, name)
}
