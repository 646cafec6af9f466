package cmd

import (
	"phd/cmd/cli/app"
	"phd/internal/core/domain"

	"github.com/spf13/cobra"
)

var (
	userCreateRole     string
	userCreatePassword string
	userUpdateRole     string
	userDeleteForce    bool
)

func init() {
	userCreateCmd.Flags().StringVar(&userCreateRole, "role", domain.DefaultRole, "role to grant (admin, developer, readonly)")
	userCreateCmd.Flags().StringVar(&userCreatePassword, "password", "", "password for the user (prompted when omitted)")
	userUpdateCmd.Flags().StringVar(&userUpdateRole, "role", domain.DefaultRole, "role to grant (admin, developer, readonly)")
	userDeleteCmd.Flags().BoolVar(&userDeleteForce, "force", false, "delete without confirmation")
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userUpdateCmd)
	argoCmd.AddCommand(userCmd)
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage operator users across ArgoCD and Argo Workflows",
	Long:  `Commands for creating, updating, and deleting users in both controllers`,
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Creates a user in ArgoCD and Argo Workflows",
	Long: `Creates a user account in both controllers, grants the requested role, and
provisions a service account with an API token for Argo Workflows access.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectUserCreateCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(args[0], userCreateRole, userCreatePassword)
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Deletes a user from ArgoCD and Argo Workflows",
	Long:  `Removes the user's accounts, RBAC policies, and Kubernetes resources`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectUserDeleteCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(args[0], userDeleteForce)
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <username>",
	Short: "Updates a user's role in ArgoCD and Argo Workflows",
	Long:  `Re-applies the role manifests and updates the RBAC policies of both controllers`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectUserUpdateCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(args[0], userUpdateRole)
	},
}
