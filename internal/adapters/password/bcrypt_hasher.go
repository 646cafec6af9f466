package password

import (
	"crypto/rand"
	"math/big"

	"phd/internal/core/domain"
	"phd/internal/ports"

	"golang.org/x/crypto/bcrypt"
)

var _ ports.PasswordHasher = (*BcryptHasher)(nil)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// BcryptHasher hashes passwords with bcrypt at the cost the GitOps
// controller expects for its local account secrets.
type BcryptHasher struct{}

func ProvideBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), 10)
	if err != nil {
		return "", domain.NewPasswordError(err, "failed to hash password")
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Generate(length int) (string, error) {
	result := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", domain.NewPasswordError(err, "failed to generate password")
		}
		result[i] = passwordAlphabet[n.Int64()]
	}
	return string(result), nil
}
