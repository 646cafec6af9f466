package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"phd/internal/cli/output"
	"phd/internal/core/domain"
	"phd/internal/ports"

	"gopkg.in/yaml.v3"
)

// ManifestApplier renders and applies multi-document YAML manifests.
// Documents are applied independently with kubectl, so a failure in one
// document leaves the previously applied ones in place.
type ManifestApplier struct {
	fetcher       ports.ManifestFetcher
	templater     ports.Templater
	commandRunner ports.CommandRunner
}

func ProvideManifestApplier(
	fetcher ports.ManifestFetcher,
	templater ports.Templater,
	commandRunner ports.CommandRunner,
) *ManifestApplier {
	return &ManifestApplier{
		fetcher:       fetcher,
		templater:     templater,
		commandRunner: commandRunner,
	}
}

// Apply renders the manifest when variables are given, forces every
// document into the target namespace, and applies each one. A document
// that already exists counts as applied.
func (a *ManifestApplier) Apply(manifest, namespace string, variables map[string]string) error {
	if len(variables) > 0 {
		manifest = a.templater.Render(manifest, variables)
	}

	decoder := yaml.NewDecoder(strings.NewReader(manifest))
	for {
		var doc map[string]interface{}
		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return domain.NewManifestError(err, "failed to parse manifest")
		}
		if len(doc) == 0 {
			continue
		}

		if err := a.applyDocument(doc, namespace); err != nil {
			return err
		}
	}
}

// ApplyFromURL fetches a manifest and applies it. Fetch failures surface
// before anything is applied.
func (a *ManifestApplier) ApplyFromURL(url, namespace string, variables map[string]string) error {
	manifest, err := a.fetcher.Fetch(url)
	if err != nil {
		return err
	}
	return a.Apply(manifest, namespace, variables)
}

func (a *ManifestApplier) applyDocument(doc map[string]interface{}, namespace string) error {
	metadata, ok := doc["metadata"].(map[string]interface{})
	if !ok {
		metadata = map[string]interface{}{}
		doc["metadata"] = metadata
	}
	metadata["namespace"] = namespace

	kind, _ := doc["kind"].(string)
	name, _ := metadata["name"].(string)

	rendered, err := yaml.Marshal(doc)
	if err != nil {
		return domain.NewManifestError(err, "failed to serialize %s %q", kind, name)
	}

	out, err := a.commandRunner.RunWithStdin(
		bytes.NewReader(rendered), "kubectl", "apply", "-f", "-", "-n", namespace)
	if err != nil {
		if strings.Contains(string(out), "already exists") || strings.Contains(string(out), "409") {
			output.PrintWarning(fmt.Sprintf("%s %q already exists, skipping", kind, name))
			return nil
		}
		return domain.NewClusterError(err, "failed to apply %s %q: %s", kind, name, string(out))
	}
	return nil
}
