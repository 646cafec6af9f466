package cmd

import (
	"phd/cmd/cli/app"
	"phd/internal/core/handler"

	"github.com/spf13/cobra"
)

var (
	instanceCreateRequest handler.InstanceCreateRequest
	instanceDeleteForce   bool
)

func init() {
	flags := instanceCreateCmd.Flags()
	flags.StringVar(&instanceCreateRequest.PlatformName, "platform-name", "", "display name of the platform")
	flags.StringVar(&instanceCreateRequest.PlatformRepository, "platform-repository", "https://github.com/openedx/edx-platform.git", "edx-platform repository URL")
	flags.StringVar(&instanceCreateRequest.PlatformVersion, "platform-version", "master", "edx-platform git ref")
	flags.StringVar(&instanceCreateRequest.TutorVersion, "tutor-version", "", "Tutor version to deploy with")
	flags.StringVar(&instanceCreateRequest.TemplateRepository, "template-repository", "", "instance template repository URL or local path")
	flags.StringVar(&instanceCreateRequest.TemplateVersion, "template-version", "", "instance template git ref")
	instanceDeleteCmd.Flags().BoolVar(&instanceDeleteForce, "force", false, "delete without confirmation")
	instanceCmd.AddCommand(instanceCreateCmd)
	instanceCmd.AddCommand(instanceDeleteCmd)
	rootCmd.AddCommand(instanceCmd)
}

var instanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Manage platform instances",
	Long:  `Commands for provisioning and deleting platform instances`,
}

var instanceCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Provisions a new platform instance",
	Long: `Scaffolds the instance configuration, provisions its MySQL, MongoDB, and
storage backing services through Argo Workflows, and deploys the instance
application through ArgoCD.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectInstanceCreateCommandHandler()
		if err != nil {
			return err
		}

		instanceCreateRequest.Name = args[0]
		return handler.Handle(instanceCreateRequest)
	},
}

var instanceDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Deletes a platform instance",
	Long: `Deprovisions the instance's backing services, removes its application and
namespace, and deletes the local instance configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectInstanceDeleteCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(args[0], instanceDeleteForce)
	},
}
