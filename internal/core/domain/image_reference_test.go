package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeFullImage_AppendsTag(t *testing.T) {
	result, err := ComputeFullImage("overhangio/openedx", "18.0.0")

	assert.Nil(t, err)
	assert.Equal(t, "overhangio/openedx:18.0.0", result)
}

func TestComputeFullImage_RegistryPortIsNotATag(t *testing.T) {
	result, err := ComputeFullImage("registry:5000/app", "v1")

	assert.Nil(t, err)
	assert.Equal(t, "registry:5000/app:v1", result)
}

func TestComputeFullImage_ExistingTagWins(t *testing.T) {
	result, err := ComputeFullImage("overhangio/openedx:17.0.0", "18.0.0")

	assert.Nil(t, err)
	assert.Equal(t, "overhangio/openedx:17.0.0", result)
}

func TestComputeFullImage_DigestWins(t *testing.T) {
	pinned := "ghcr.io/org/app@sha256:0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

	result, err := ComputeFullImage(pinned, "v2")

	assert.Nil(t, err)
	assert.Equal(t, pinned, result)
}

func TestComputeFullImage_UntaggedWithoutTagFails(t *testing.T) {
	_, err := ComputeFullImage("overhangio/openedx", "")

	assert.NotNil(t, err)
	assert.IsType(t, &ConfigurationError{}, err)
}

func TestStripTagOrDigest(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tag stripped", "ghcr.io/org/app:v1", "ghcr.io/org/app"},
		{"digest stripped", "ghcr.io/org/app@sha256:abc", "ghcr.io/org/app"},
		{"registry port preserved", "registry:5000/app:v1", "registry:5000/app"},
		{"untagged unchanged", "overhangio/openedx", "overhangio/openedx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripTagOrDigest(tt.input))
		})
	}
}

func TestValidateImageReference(t *testing.T) {
	assert.Nil(t, ValidateImageReference("overhangio/openedx:18.0.0"))
	assert.Nil(t, ValidateImageReference("registry:5000/app:v1"))

	err := ValidateImageReference("UPPERCASE/not valid::")
	assert.NotNil(t, err)
	assert.IsType(t, &ValidationError{}, err)
}
