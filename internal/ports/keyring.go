package ports

// Keyring stores small secrets, such as the generated Argo admin password,
// in the operating system credential store.
type Keyring interface {
	GetKey(keyName string) (string, error)
	SetKey(keyName string, keyValue string) error
	HasKey(keyName string) (bool, error)
}
