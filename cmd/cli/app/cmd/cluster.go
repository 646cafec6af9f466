package cmd

import (
	"phd/cmd/cli/app"
	"phd/internal/core/handler"

	"github.com/spf13/cobra"
)

var clusterCreateRequest handler.ClusterCreateRequest

func init() {
	flags := clusterCreateCmd.Flags()
	flags.StringVar(&clusterCreateRequest.Environment, "environment", "production", "deployment environment")
	flags.StringVar(&clusterCreateRequest.ShortDescription, "short-description", "", "short description of the cluster")
	flags.StringVar(&clusterCreateRequest.CloudProvider, "cloud-provider", "digitalocean", "cloud provider for the cluster infrastructure")
	flags.StringVar(&clusterCreateRequest.GithubOrganization, "github-organization", "open-craft", "GitHub organization owning the cluster repository")
	flags.StringVar(&clusterCreateRequest.GithubRepository, "github-repository", "", "cluster repository URL (derived from the organization and name when omitted)")
	flags.StringVar(&clusterCreateRequest.TemplateRepository, "template-repository", "", "cluster template repository URL or local path")
	flags.StringVar(&clusterCreateRequest.TemplateVersion, "template-version", "", "cluster template git ref")
	flags.StringVar(&clusterCreateRequest.OutputDir, "output-dir", ".", "directory to generate the cluster configuration in")
	flags.StringVar(&clusterCreateRequest.HarmonyModuleVersion, "harmony-module-version", "", "Harmony Terraform module version")
	flags.StringVar(&clusterCreateRequest.OpencraftModuleVersion, "opencraft-module-version", "", "OpenCraft Terraform module version")
	flags.StringVar(&clusterCreateRequest.PicassoVersion, "picasso-version", "", "Picasso build pipeline version")
	clusterCmd.AddCommand(clusterCreateCmd)
	rootCmd.AddCommand(clusterCmd)
}

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Manage cluster configuration repositories",
	Long:  `Commands for scaffolding cluster configuration from the cluster template`,
}

var clusterCreateCmd = &cobra.Command{
	Use:   "create <name> <domain>",
	Short: "Scaffolds a cluster configuration repository",
	Long: `Renders the cluster template into a new configuration directory, writes the
cluster context file, and exports CLUSTER_DIR for CI pipelines.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectClusterCreateCommandHandler()
		if err != nil {
			return err
		}

		clusterCreateRequest.Name = args[0]
		clusterCreateRequest.Domain = args[1]
		return handler.Handle(clusterCreateRequest)
	},
}
