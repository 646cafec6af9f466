package ports

// PasswordHasher hashes plaintext passwords for controller account secrets.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Generate(length int) (string, error)
}
