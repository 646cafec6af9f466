package cmd

import (
	"phd/cmd/cli/app"

	"github.com/spf13/cobra"
)

var (
	envPatchImagesDir  string
	envPatchImagesName string
	envPatchImagesTag  string
)

func init() {
	envPatchImagesCmd.Flags().StringVar(&envPatchImagesDir, "env-dir", "env", "directory of environment manifests to patch")
	envPatchImagesCmd.Flags().StringVar(&envPatchImagesName, "image-name", "", "image name, optionally tagged or digest-pinned")
	envPatchImagesCmd.Flags().StringVar(&envPatchImagesTag, "image-tag", "", "image tag when the name carries none")
	_ = envPatchImagesCmd.MarkFlagRequired("image-name")
	envCmd.AddCommand(envPatchImagesCmd)
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Patch environment manifest directories",
	Long:  `Commands for rewriting environment manifests from CI pipelines`,
}

var envPatchImagesCmd = &cobra.Command{
	Use:   "patch-images",
	Short: "Rewrites image references across an environment directory",
	Long: `Rewrites every image line matching the base image in the directory's YAML
files to the new tag, preserving indentation and trailing comments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectConfigCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandlePatchEnvImages(envPatchImagesDir, envPatchImagesName, envPatchImagesTag)
	},
}
