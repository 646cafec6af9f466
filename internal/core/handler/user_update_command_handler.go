package handler

import (
	"fmt"
	"strings"

	"phd/internal/cli/output"
	"phd/internal/core"
	"phd/internal/core/domain"
)

type UserUpdateCommandHandler struct {
	configRepository core.ConfigRepository
	manifestApplier  *core.ManifestApplier
	rbacEditor       *core.RbacEditor
}

func ProvideUserUpdateCommandHandler(
	configRepository core.ConfigRepository,
	manifestApplier *core.ManifestApplier,
	rbacEditor *core.RbacEditor,
) UserUpdateCommandHandler {
	return UserUpdateCommandHandler{
		configRepository: configRepository,
		manifestApplier:  manifestApplier,
		rbacEditor:       rbacEditor,
	}
}

// Handle re-applies the role manifests and updates the RBAC policies of
// both controllers for an existing user.
func (h *UserUpdateCommandHandler) Handle(username, role string) error {
	if !domain.IsValidRole(role) {
		return domain.NewValidationError("invalid role %q, must be one of: %s", role, strings.Join(domain.ValidRoles, ", "))
	}

	config, err := h.configRepository.LoadClusterConfig()
	if err != nil {
		return err
	}

	output.PrintHeader(fmt.Sprintf("Updating permissions for user '%s' with role '%s'", username, role))

	manifestsURL := config.ManifestsURL()
	variables := map[string]string{
		"PHD_ARGO_USERNAME": username,
		"PHD_ARGO_ROLE":     role,
	}

	output.PrintStep(fmt.Sprintf("update %s role for user '%s'", role, username))
	roleManifest := fmt.Sprintf("%s/argo-user-%s-role.yml", manifestsURL, role)
	if err := h.manifestApplier.ApplyFromURL(roleManifest, domain.ArgoNamespace, variables); err != nil {
		return err
	}

	output.PrintStep(fmt.Sprintf("update role bindings for user '%s'", username))
	if err := h.manifestApplier.ApplyFromURL(manifestsURL+"/argo-user-bindings.yml", domain.ArgoNamespace, variables); err != nil {
		return err
	}

	output.PrintStep("update Argo Workflows RBAC policy")
	if err := h.rbacEditor.UpsertPolicy(workflowsRbacConfigMap, domain.ArgoNamespace, username, role); err != nil {
		return err
	}

	output.PrintStep("update ArgoCD RBAC policy")
	if err := h.rbacEditor.UpsertPolicy(argoCDRbacConfigMap, domain.ArgoCDNamespace, username, role); err != nil {
		return err
	}

	output.PrintSuccess(fmt.Sprintf("Permissions updated for user '%s' with role '%s'", username, role))
	output.PrintWarning("The user may need to log out and log back in for changes to take effect")

	return nil
}
