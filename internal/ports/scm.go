package ports

// Scm downloads a repository ref into a local directory, reusing an
// existing checkout when present.
type Scm interface {
	Download(repositoryUrl string, ref string, repositoryPath string) error
}
