package testutil

import (
	"phd/internal/ports"

	"github.com/stretchr/testify/mock"
)

// Compile-time interface compliance check
var _ ports.Scm = (*MockScm)(nil)

// MockScm provides a testify mock for ports.Scm
type MockScm struct {
	mock.Mock
}

func (m *MockScm) Download(repositoryUrl string, ref string, repositoryPath string) error {
	args := m.Called(repositoryUrl, ref, repositoryPath)
	return args.Error(0)
}
