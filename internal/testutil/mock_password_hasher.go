package testutil

import (
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher provides a testify mock for ports.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Generate(length int) (string, error) {
	args := m.Called(length)
	return args.String(0), args.Error(1)
}
