package core

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"phd/internal/core/domain"
	"phd/internal/ports"

	"gopkg.in/yaml.v3"
)

// serviceConfigKeys maps a service name to the configuration key holding
// its container image reference.
var serviceConfigKeys = map[string]string{
	"openedx": "DOCKER_IMAGE_OPENEDX",
	"mfe":     "MFE_DOCKER_IMAGE",
}

// ConfigPatcher edits instance configuration files in place: deep-merging
// override values, pinning image references, and patching rendered
// environment directories.
type ConfigPatcher struct {
	fileSystem ports.FileSystem
}

func ProvideConfigPatcher(fileSystem ports.FileSystem) *ConfigPatcher {
	return &ConfigPatcher{fileSystem: fileSystem}
}

// PatchConfigFile deep-merges a JSON object into a YAML config file,
// preserving the existing key order. Values in the override win; nested
// mappings merge recursively; anything else overwrites.
func (p *ConfigPatcher) PatchConfigFile(configPath, overrideJSON string) error {
	var override map[string]interface{}
	if err := json.Unmarshal([]byte(overrideJSON), &override); err != nil {
		return domain.NewValidationError("invalid override JSON: %v", err)
	}

	root, err := p.loadConfigMapping(configPath)
	if err != nil {
		return err
	}

	overrideNode := &yaml.Node{}
	if err := overrideNode.Encode(override); err != nil {
		return fmt.Errorf("failed to encode override: %v", err)
	}

	mergeMappingNodes(root, overrideNode)
	return p.saveConfigMapping(configPath, root)
}

// SetConfigImage pins the image reference of a known service in a YAML
// config file.
func (p *ConfigPatcher) SetConfigImage(configPath, service, imageName, imageTag string) error {
	key, ok := serviceConfigKeys[service]
	if !ok {
		supported := make([]string, 0, len(serviceConfigKeys))
		for name := range serviceConfigKeys {
			supported = append(supported, name)
		}
		sort.Strings(supported)
		return domain.NewValidationError("unsupported service %q, supported: %s", service, strings.Join(supported, ", "))
	}

	fullImage, err := domain.ComputeFullImage(imageName, imageTag)
	if err != nil {
		return err
	}
	if err := domain.ValidateImageReference(fullImage); err != nil {
		return err
	}

	root, err := p.loadConfigMapping(configPath)
	if err != nil {
		return err
	}

	setMappingValue(root, key, fullImage)
	return p.saveConfigMapping(configPath, root)
}

// PatchEnvImages rewrites image lines referencing the base of imageName in
// every YAML file under envDir, preserving indentation and trailing
// comments. It reports how many files changed and their paths relative to
// envDir.
func (p *ConfigPatcher) PatchEnvImages(envDir, imageName, imageTag string) (int, []string, error) {
	exists, err := p.fileSystem.FileExists(envDir)
	if err != nil {
		return 0, nil, err
	}
	if !exists {
		return 0, nil, domain.NewValidationError("env directory not found: %s", envDir)
	}

	fullImage, err := domain.ComputeFullImage(imageName, imageTag)
	if err != nil {
		return 0, nil, err
	}
	if err := domain.ValidateImageReference(fullImage); err != nil {
		return 0, nil, err
	}
	baseImage := domain.StripTagOrDigest(fullImage)

	// Match: [indent]image: <base>[:tag|@digest][  # comment]
	pattern := regexp.MustCompile(
		`^(\s*image:\s*)(` + regexp.QuoteMeta(baseImage) + `(?:[:@][^\s#]+)?)(\s*(#.*)?)$`)

	files, err := listYamlFiles(envDir)
	if err != nil {
		return 0, nil, err
	}

	var changed []string
	for _, path := range files {
		modified, err := p.patchFile(path, pattern, fullImage)
		if err != nil {
			return len(changed), changed, err
		}
		if modified {
			rel, err := filepath.Rel(envDir, path)
			if err != nil {
				rel = path
			}
			changed = append(changed, rel)
		}
	}

	return len(changed), changed, nil
}

func (p *ConfigPatcher) patchFile(path string, pattern *regexp.Regexp, fullImage string) (bool, error) {
	content, err := p.fileSystem.ReadFile(path)
	if err != nil {
		return false, err
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	modified := false
	for i, line := range lines {
		match := pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		lines[i] = match[1] + fullImage + match[3]
		modified = true
	}

	if !modified {
		return false, nil
	}

	updated := strings.Join(lines, "\n") + "\n"
	if err := p.fileSystem.WriteFile(path, []byte(updated), ports.ReadAllWriteOwner); err != nil {
		return false, err
	}
	return true, nil
}

// loadConfigMapping parses a YAML file into its root mapping node. A
// missing file yields an empty mapping; a non-mapping root is rejected.
func (p *ConfigPatcher) loadConfigMapping(path string) (*yaml.Node, error) {
	exists, err := p.fileSystem.FileExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}, nil
	}

	data, err := p.fileSystem.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, domain.NewConfigurationError("failed to parse %s: %v", path, err)
	}

	if len(document.Content) == 0 {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}, nil
	}

	root := document.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, domain.NewConfigurationError("root of %s must be a mapping", path)
	}
	return root, nil
}

func (p *ConfigPatcher) saveConfigMapping(path string, root *yaml.Node) error {
	data, err := yaml.Marshal(root)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}
	return p.fileSystem.WriteFile(path, data, ports.ReadAllWriteOwner)
}

// mergeMappingNodes merges src into dst. Keys present in both with mapping
// values merge recursively; any other collision takes the src value.
// Existing key order in dst is preserved and new keys append at the end.
func mergeMappingNodes(dst, src *yaml.Node) {
	for i := 0; i+1 < len(src.Content); i += 2 {
		srcKey := src.Content[i]
		srcValue := src.Content[i+1]

		dstValue := findMappingValue(dst, srcKey.Value)
		if dstValue != nil && dstValue.Kind == yaml.MappingNode && srcValue.Kind == yaml.MappingNode {
			mergeMappingNodes(dstValue, srcValue)
			continue
		}
		if dstValue != nil {
			*dstValue = *srcValue
			continue
		}

		dst.Content = append(dst.Content, srcKey, srcValue)
	}
}

func findMappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func setMappingValue(mapping *yaml.Node, key, value string) {
	if existing := findMappingValue(mapping, key); existing != nil {
		*existing = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
		return
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}

// listYamlFiles walks envDir and returns every .yml and .yaml file sorted
// by path.
func listYamlFiles(envDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(envDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yml", ".yaml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
