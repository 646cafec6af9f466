package testutil

import (
	"phd/internal/ports"

	"github.com/stretchr/testify/mock"
)

// Compile-time interface compliance check
var _ ports.Cluster = (*MockCluster)(nil)

// MockCluster provides a testify mock for ports.Cluster
type MockCluster struct {
	mock.Mock
}

func (m *MockCluster) CreateNamespace(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockCluster) ReadConfigMap(name, namespace string) (map[string]string, error) {
	args := m.Called(name, namespace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCluster) PatchConfigMap(name, namespace string, data map[string]*string) error {
	args := m.Called(name, namespace, data)
	return args.Error(0)
}

func (m *MockCluster) ReadSecret(name, namespace string) (map[string][]byte, error) {
	args := m.Called(name, namespace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]byte), args.Error(1)
}

func (m *MockCluster) PatchSecret(name, namespace string, data map[string]*string) error {
	args := m.Called(name, namespace, data)
	return args.Error(0)
}

func (m *MockCluster) PatchSecretString(name, namespace string, data map[string]string) error {
	args := m.Called(name, namespace, data)
	return args.Error(0)
}

func (m *MockCluster) DeleteServiceAccount(name, namespace string) error {
	args := m.Called(name, namespace)
	return args.Error(0)
}

func (m *MockCluster) DeleteSecret(name, namespace string) error {
	args := m.Called(name, namespace)
	return args.Error(0)
}

func (m *MockCluster) DeleteRole(name, namespace string) error {
	args := m.Called(name, namespace)
	return args.Error(0)
}

func (m *MockCluster) DeleteRoleBinding(name, namespace string) error {
	args := m.Called(name, namespace)
	return args.Error(0)
}

func (m *MockCluster) DeleteClusterRole(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockCluster) DeleteClusterRoleBinding(name string) error {
	args := m.Called(name)
	return args.Error(0)
}
