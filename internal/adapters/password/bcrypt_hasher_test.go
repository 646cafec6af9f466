package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash_ProducesVerifiableHash(t *testing.T) {
	sut := ProvideBcryptHasher()

	hashed, err := sut.Hash("s3cret")

	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("s3cret")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("wrong")))

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestBcryptHasher_Generate_RespectsLengthAndAlphabet(t *testing.T) {
	sut := ProvideBcryptHasher()

	generated, err := sut.Generate(24)

	require.NoError(t, err)
	assert.Len(t, generated, 24)
	for _, c := range generated {
		assert.True(t, strings.ContainsRune(passwordAlphabet, c))
	}
}

func TestBcryptHasher_Generate_ProducesDistinctPasswords(t *testing.T) {
	sut := ProvideBcryptHasher()

	first, err := sut.Generate(24)
	require.NoError(t, err)
	second, err := sut.Generate(24)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
