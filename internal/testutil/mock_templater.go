package testutil

import (
	"github.com/stretchr/testify/mock"
)

type MockTemplater struct {
	mock.Mock
}

func (m *MockTemplater) Render(text string, variables map[string]string) string {
	args := m.Called(text, variables)
	return args.String(0)
}
