package handler

import (
	"fmt"
	"strings"

	"phd/internal/cli/output"
	"phd/internal/core"
)

type ConfigCommandHandler struct {
	configPatcher *core.ConfigPatcher
}

func ProvideConfigCommandHandler(configPatcher *core.ConfigPatcher) ConfigCommandHandler {
	return ConfigCommandHandler{configPatcher: configPatcher}
}

// HandlePatch merges a JSON override into a YAML configuration file.
func (h *ConfigCommandHandler) HandlePatch(configFile, newConfigJSON string) error {
	if err := h.configPatcher.PatchConfigFile(configFile, newConfigJSON); err != nil {
		return err
	}
	output.PrintSuccess(fmt.Sprintf("Patched %s", configFile))
	return nil
}

// HandleSetImage points a service's image key at a new image reference.
func (h *ConfigCommandHandler) HandleSetImage(configFile, service, imageName, imageTag string) error {
	if err := h.configPatcher.SetConfigImage(configFile, service, imageName, imageTag); err != nil {
		return err
	}
	output.PrintSuccess(fmt.Sprintf("Updated %s image in %s", service, configFile))
	return nil
}

// HandlePatchEnvImages rewrites image lines across an env directory to a
// new tag of the same base image.
func (h *ConfigCommandHandler) HandlePatchEnvImages(envDir, imageName, imageTag string) error {
	count, files, err := h.configPatcher.PatchEnvImages(envDir, imageName, imageTag)
	if err != nil {
		return err
	}
	if count == 0 {
		output.PrintWarning(fmt.Sprintf("No image references matching %s found under %s", imageName, envDir))
		return nil
	}
	output.PrintSuccess(fmt.Sprintf("Updated %d %s: %s", count, output.Plural(count, "file", "files"), strings.Join(files, ", ")))
	return nil
}
