package ports

type AccessMode int

const (
	ReadWrite AccessMode = iota
	ReadWriteExecute
	ReadAllWriteOwner
)

type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, content []byte, accessMode AccessMode) error
	// WriteFileAtomic writes content to a temporary file in the target
	// directory and renames it into place, so readers never observe a
	// partial file.
	WriteFileAtomic(path string, content []byte, accessMode AccessMode) error
	EnsureDirExists(path string) error
	FileExists(path string) (bool, error)
	RemoveAll(path string) error
	HomeDir() (string, error)
}
