package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpsertSubjectRole_AppendsNewSubject(t *testing.T) {
	policy := "g, alice, role:admin"

	result := UpsertSubjectRole(policy, "bob", "developer")

	assert.Equal(t, "g, alice, role:admin\ng, bob, role:developer", result)
}

func TestUpsertSubjectRole_ReplacesExistingAssignment(t *testing.T) {
	policy := "g, alice, role:admin\ng, bob, role:developer"

	result := UpsertSubjectRole(policy, "alice", "readonly")

	assert.Equal(t, "g, bob, role:developer\ng, alice, role:readonly", result)
}

func TestUpsertSubjectRole_Idempotent(t *testing.T) {
	once := UpsertSubjectRole("", "alice", "admin")
	twice := UpsertSubjectRole(once, "alice", "admin")

	assert.Equal(t, once, UpsertSubjectRole(twice, "alice", "admin"))
}

func TestUpsertSubjectRole_DoesNotMatchPrefixedSubjects(t *testing.T) {
	policy := "g, alice-smith, role:admin"

	result := UpsertSubjectRole(policy, "alice", "developer")

	assert.Equal(t, "g, alice-smith, role:admin\ng, alice, role:developer", result)
}

func TestRemoveSubject(t *testing.T) {
	policy := "g, alice, role:admin\ng, bob, role:developer"

	result := RemoveSubject(policy, "alice")

	assert.Equal(t, "g, bob, role:developer", result)
}

func TestRemoveSubject_UnknownSubjectLeavesPolicyUntouched(t *testing.T) {
	policy := "g, alice, role:admin"

	assert.Equal(t, policy, RemoveSubject(policy, "carol"))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("admin"))
	assert.True(t, IsValidRole("developer"))
	assert.True(t, IsValidRole("readonly"))
	assert.False(t, IsValidRole("root"))
	assert.False(t, IsValidRole(""))
}

func TestSanitizeUsername(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"email address", "User@Example.com", "user-example.com"},
		{"already clean", "alice", "alice"},
		{"spaces and underscores", "alice smith_jones", "alice-smith-jones"},
		{"runs collapsed", "a---b...c", "a-b.c"},
		{"trimmed edges", "-.alice.-", "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SanitizeUsername(tt.input)
			assert.Nil(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSanitizeUsername_EmptyResultFails(t *testing.T) {
	_, err := SanitizeUsername("@@@@")

	assert.NotNil(t, err)
	assert.IsType(t, &ValidationError{}, err)
}
