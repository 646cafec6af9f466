package manifest_fetcher

import (
	"io"
	"net/http"
	"time"

	"phd/internal/core/domain"
	"phd/internal/ports"
)

var _ ports.ManifestFetcher = (*HttpFetcher)(nil)

// HttpFetcher retrieves manifest text over HTTP(S).
type HttpFetcher struct {
	client *http.Client
}

func ProvideHttpFetcher() *HttpFetcher {
	return &HttpFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *HttpFetcher) Fetch(url string) (string, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return "", domain.NewManifestError(err, "failed to fetch manifest from %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", domain.NewManifestError(nil, "failed to fetch manifest from %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewManifestError(err, "failed to read manifest body from %s", url)
	}
	return string(body), nil
}
