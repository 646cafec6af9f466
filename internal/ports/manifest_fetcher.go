package ports

// ManifestFetcher retrieves manifest text from a remote source.
type ManifestFetcher interface {
	Fetch(url string) (string, error)
}
