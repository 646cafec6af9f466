package cmd

import (
	"phd/cmd/cli/app"

	"github.com/spf13/cobra"
)

var (
	argoInstallArgoCDOnly    bool
	argoInstallWorkflowsOnly bool
)

func init() {
	argoInstallCmd.Flags().BoolVar(&argoInstallArgoCDOnly, "argocd-only", false, "install only ArgoCD")
	argoInstallCmd.Flags().BoolVar(&argoInstallWorkflowsOnly, "workflows-only", false, "install only Argo Workflows")
	argoInstallCmd.MarkFlagsMutuallyExclusive("argocd-only", "workflows-only")
	argoCmd.AddCommand(argoInstallCmd)
	rootCmd.AddCommand(argoCmd)
}

var argoCmd = &cobra.Command{
	Use:   "argo",
	Short: "Manage the ArgoCD and Argo Workflows controllers",
	Long:  `Commands for installing and administering the GitOps and workflow controllers`,
}

var argoInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Installs ArgoCD and Argo Workflows into the cluster",
	Long: `Installs ArgoCD and Argo Workflows, configures their ingresses and admin
credentials, and registers the provisioning workflow templates. The install
is idempotent; resources that already exist are left in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectArgoInstallCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(argoInstallArgoCDOnly, argoInstallWorkflowsOnly)
	},
}
