package domain

import (
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
)

// ComputeFullImage ensures an image reference carries a tag or digest.
//
// A name containing '@' is digest-pinned and returned unchanged. A ':' in the
// last path segment means a tag is already present; colons in earlier
// segments belong to a registry port (registry:5000/app) and are ignored.
// Otherwise the supplied tag is appended, and must be non-empty.
func ComputeFullImage(imageName, imageTag string) (string, error) {
	if strings.Contains(imageName, "@") {
		return imageName, nil
	}

	segments := strings.Split(imageName, "/")
	if strings.Contains(segments[len(segments)-1], ":") {
		return imageName, nil
	}

	if imageTag == "" {
		return "", NewConfigurationError("image tag must be provided when image name %q has no tag", imageName)
	}

	return imageName + ":" + imageTag, nil
}

// StripTagOrDigest removes a trailing digest or tag from the last segment of
// an image reference, leaving the registry (including any port) and path
// intact.
func StripTagOrDigest(imageName string) string {
	if base, _, found := strings.Cut(imageName, "@"); found {
		return base
	}

	segments := strings.Split(imageName, "/")
	last := segments[len(segments)-1]
	if repo, _, found := strings.Cut(last, ":"); found {
		segments[len(segments)-1] = repo
	}
	return strings.Join(segments, "/")
}

// ValidateImageReference checks that a full image reference parses as a
// container image name. The default registry is left empty so bare
// repository paths are accepted without docker.io normalization.
func ValidateImageReference(ref string) error {
	if _, err := name.ParseReference(ref, name.WithDefaultRegistry("")); err != nil {
		return NewValidationError("invalid image reference %q: %v", ref, err)
	}
	return nil
}
