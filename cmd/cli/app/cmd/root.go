package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"phd/internal/cli/output"
)

var rootCmd = &cobra.Command{
	Use:   "phd",
	Short: "Operator tooling for Kubernetes-hosted Open edX platforms",
	Long: `PHD provisions and operates multi-tenant Open edX platform clusters.

It scaffolds cluster and instance configuration from templates, installs the
GitOps and workflow controllers (ArgoCD, Argo Workflows), manages per-user
access across both, and drives instance provisioning workflows.

Configuration is read from PHD_*-prefixed environment variables; the cluster
domain defaults to the cluster_domain field of ./context.json.

Common workflows:
  phd cluster create <name> <domain>   Scaffold a cluster configuration repo
  phd argo install                     Install ArgoCD and Argo Workflows
  phd argo user create <username>      Create an operator user in both systems
  phd instance create <name>           Provision a platform instance`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure. Errors are
// printed here rather than by cobra so they carry the CLI error styling.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.PrintError(err.Error())
		os.Exit(1)
	}
}
