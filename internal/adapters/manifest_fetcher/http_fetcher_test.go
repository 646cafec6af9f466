package manifest_fetcher

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"phd/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHttpFetcher_Fetch_ReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/manifests/argo-user-bindings.yml", r.URL.Path)
		_, _ = w.Write([]byte("kind: RoleBinding\n"))
	}))
	defer server.Close()
	sut := ProvideHttpFetcher()

	manifest, err := sut.Fetch(server.URL + "/manifests/argo-user-bindings.yml")

	require.NoError(t, err)
	assert.Equal(t, "kind: RoleBinding\n", manifest)
}

func TestHttpFetcher_Fetch_NonSuccessStatusFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()
	sut := ProvideHttpFetcher()

	_, err := sut.Fetch(server.URL + "/missing.yml")

	assert.IsType(t, &domain.ManifestError{}, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHttpFetcher_Fetch_ConnectionErrorFails(t *testing.T) {
	sut := ProvideHttpFetcher()

	_, err := sut.Fetch("http://127.0.0.1:1/manifest.yml")

	assert.IsType(t, &domain.ManifestError{}, err)
}
