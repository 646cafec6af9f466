package cmd

import (
	"phd/cmd/cli/app"

	"github.com/spf13/cobra"
)

var (
	configPatchFile       string
	configPatchNewConfig  string
	configSetImageFile    string
	configSetImageService string
	configImageName       string
	configImageTag        string
)

func init() {
	configPatchCmd.Flags().StringVar(&configPatchFile, "config-file", "config.yml", "configuration file to patch")
	configPatchCmd.Flags().StringVar(&configPatchNewConfig, "new-config", "", "JSON object to merge into the configuration")
	_ = configPatchCmd.MarkFlagRequired("new-config")
	configSetImageCmd.Flags().StringVar(&configSetImageFile, "config-file", "config.yml", "configuration file to update")
	configSetImageCmd.Flags().StringVar(&configSetImageService, "service", "", "service whose image to set (openedx, mfe)")
	configSetImageCmd.Flags().StringVar(&configImageName, "image-name", "", "image name, optionally tagged or digest-pinned")
	configSetImageCmd.Flags().StringVar(&configImageTag, "image-tag", "", "image tag when the name carries none")
	_ = configSetImageCmd.MarkFlagRequired("service")
	_ = configSetImageCmd.MarkFlagRequired("image-name")
	configCmd.AddCommand(configPatchCmd)
	configCmd.AddCommand(configSetImageCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Patch instance configuration files",
	Long:  `Commands for patching instance configuration files from CI pipelines`,
}

var configPatchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Deep-merges a JSON override into a configuration file",
	Long: `Merges the given JSON object into the YAML configuration file, overwriting
leaf values and preserving the existing key order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectConfigCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandlePatch(configPatchFile, configPatchNewConfig)
	},
}

var configSetImageCmd = &cobra.Command{
	Use:   "set-image",
	Short: "Sets a service's container image in a configuration file",
	Long: `Points the service's image key at the given image reference. A digest-pinned
image name wins over the tag; an untagged name requires --image-tag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectConfigCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleSetImage(configSetImageFile, configSetImageService, configImageName, configImageTag)
	},
}
