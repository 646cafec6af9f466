package testutil

import (
	"github.com/stretchr/testify/mock"
)

// MockManifestFetcher provides a testify mock for ports.ManifestFetcher
type MockManifestFetcher struct {
	mock.Mock
}

func (m *MockManifestFetcher) Fetch(url string) (string, error) {
	args := m.Called(url)
	return args.String(0), args.Error(1)
}
