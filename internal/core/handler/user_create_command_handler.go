package handler

import (
	"fmt"
	"strings"

	"phd/internal/cli/output"
	"phd/internal/core"
	"phd/internal/core/domain"
	"phd/internal/ports"
)

const (
	workflowsSSOSecretName = "argo-server-sso"
	workflowsRbacConfigMap = "argo-server-rbac-config"
	argoCDConfigMapName    = "argocd-cm"
	argoCDSecretName       = "argocd-secret"
	argoCDRbacConfigMap    = "argocd-rbac-cm"
)

type UserCreateCommandHandler struct {
	configRepository core.ConfigRepository
	cluster          ports.Cluster
	manifestApplier  *core.ManifestApplier
	rbacEditor       *core.RbacEditor
	tokenWaiter      *core.TokenWaiter
	passwordHasher   ports.PasswordHasher
	terminalInput    ports.TerminalInput
}

func ProvideUserCreateCommandHandler(
	configRepository core.ConfigRepository,
	cluster ports.Cluster,
	manifestApplier *core.ManifestApplier,
	rbacEditor *core.RbacEditor,
	tokenWaiter *core.TokenWaiter,
	passwordHasher ports.PasswordHasher,
	terminalInput ports.TerminalInput,
) UserCreateCommandHandler {
	return UserCreateCommandHandler{
		configRepository: configRepository,
		cluster:          cluster,
		manifestApplier:  manifestApplier,
		rbacEditor:       rbacEditor,
		tokenWaiter:      tokenWaiter,
		passwordHasher:   passwordHasher,
		terminalInput:    terminalInput,
	}
}

func (h *UserCreateCommandHandler) Handle(username, role, password string) error {
	if !domain.IsValidRole(role) {
		return domain.NewValidationError("invalid role %q, must be one of: %s", role, strings.Join(domain.ValidRoles, ", "))
	}

	if password == "" {
		prompted, err := h.promptForPassword(username)
		if err != nil {
			return err
		}
		password = prompted
	}

	sanitized, err := domain.SanitizeUsername(username)
	if err != nil {
		return err
	}

	config, err := h.configRepository.LoadClusterConfig()
	if err != nil {
		return err
	}

	passwordHash, err := h.passwordHasher.Hash(password)
	if err != nil {
		return err
	}

	output.PrintHeader(fmt.Sprintf("Creating user '%s' with role '%s'", username, role))

	if err := h.configureWorkflowsUser(sanitized, role, passwordHash); err != nil {
		return err
	}

	if err := h.configureArgoCDUser(sanitized, role, passwordHash); err != nil {
		return err
	}

	token, err := h.createServiceAccountAndToken(config, sanitized, role)
	if err != nil {
		return err
	}

	output.PrintSuccess(fmt.Sprintf("User '%s' created with role '%s'", username, role))
	output.PrintWarning(fmt.Sprintf("Argo Workflows API and UI token for user '%s':", username))
	output.PrintStep(token)
	fmt.Println()
	output.PrintInfo("This token can be used with:")
	output.PrintStep(fmt.Sprintf(`curl -H "Authorization: Bearer $TOKEN" https://workflows.%s/api/v1/workflows/argo`, config.ClusterDomain))
	output.PrintStep(fmt.Sprintf("argo --server=https://workflows.%s --token=$TOKEN list", config.ClusterDomain))
	fmt.Println()
	output.PrintWarning("Restart the servers to apply login changes:")
	output.PrintStep("kubectl delete pod -n argo -l app=argo-server")
	output.PrintStep("kubectl delete pod -n argocd -l app.kubernetes.io/name=argocd-server")

	return nil
}

func (h *UserCreateCommandHandler) promptForPassword(username string) (string, error) {
	if !h.terminalInput.IsTerminal() {
		return "", domain.NewValidationError("cannot prompt for password: no terminal available, use --password")
	}

	output.PrintInfo(fmt.Sprintf("Enter a password for %s", username))
	password, err := h.terminalInput.ReadPassword("Password: ")
	if err != nil {
		return "", err
	}
	confirmation, err := h.terminalInput.ReadPassword("Confirm password: ")
	if err != nil {
		return "", err
	}

	if password != confirmation {
		return "", domain.NewValidationError("passwords do not match")
	}
	if password == "" {
		return "", domain.NewValidationError("password cannot be empty")
	}
	return password, nil
}

// configureWorkflowsUser enables the account in the workflow server's SSO
// secret and grants the role in its RBAC policy.
func (h *UserCreateCommandHandler) configureWorkflowsUser(username, role, passwordHash string) error {
	enabled := "true"
	tokens := ""

	output.PrintStep(fmt.Sprintf("update Argo Workflows SSO secret for user '%s'", username))
	err := h.cluster.PatchSecret(workflowsSSOSecretName, domain.ArgoNamespace, map[string]*string{
		"accounts." + username + ".enabled":  &enabled,
		"accounts." + username + ".password": &passwordHash,
		"accounts." + username + ".tokens":   &tokens,
	})
	if err != nil {
		return err
	}

	output.PrintStep(fmt.Sprintf("update Argo Workflows RBAC policy for user '%s'", username))
	return h.rbacEditor.UpsertPolicy(workflowsRbacConfigMap, domain.ArgoNamespace, username, role)
}

// configureArgoCDUser registers a login account, sets its password, and
// grants the role in the GitOps controller's RBAC policy.
func (h *UserCreateCommandHandler) configureArgoCDUser(username, role, passwordHash string) error {
	login := "login"

	output.PrintStep(fmt.Sprintf("register ArgoCD account for user '%s'", username))
	err := h.cluster.PatchConfigMap(argoCDConfigMapName, domain.ArgoCDNamespace, map[string]*string{
		"accounts." + username: &login,
	})
	if err != nil {
		return err
	}

	output.PrintStep(fmt.Sprintf("update ArgoCD secret for user '%s'", username))
	err = h.cluster.PatchSecret(argoCDSecretName, domain.ArgoCDNamespace, map[string]*string{
		"accounts." + username + ".password": &passwordHash,
	})
	if err != nil {
		return err
	}

	output.PrintStep(fmt.Sprintf("update ArgoCD RBAC policy for user '%s'", username))
	return h.rbacEditor.UpsertPolicy(argoCDRbacConfigMap, domain.ArgoCDNamespace, username, role)
}

// createServiceAccountAndToken provisions the service account, role, and
// bindings for API access, waits for the control plane to mint the token,
// and wires the token into the SSO secret for UI access.
func (h *UserCreateCommandHandler) createServiceAccountAndToken(config *domain.ClusterConfig, username, role string) (string, error) {
	manifestsURL := config.ManifestsURL()
	variables := map[string]string{
		"PHD_ARGO_USERNAME": username,
		"PHD_ARGO_ROLE":     role,
	}

	serviceAccountManifest := fmt.Sprintf(
		"apiVersion: v1\nkind: ServiceAccount\nmetadata:\n  name: %s\n  namespace: %s\n",
		username, domain.ArgoNamespace)

	output.PrintStep(fmt.Sprintf("create service account for user '%s'", username))
	if err := h.manifestApplier.Apply(serviceAccountManifest, domain.ArgoNamespace, nil); err != nil {
		return "", err
	}

	output.PrintStep(fmt.Sprintf("create %s role for user '%s'", role, username))
	roleManifest := fmt.Sprintf("%s/argo-user-%s-role.yml", manifestsURL, role)
	if err := h.manifestApplier.ApplyFromURL(roleManifest, domain.ArgoNamespace, variables); err != nil {
		return "", err
	}

	output.PrintStep(fmt.Sprintf("create role bindings for user '%s'", username))
	if err := h.manifestApplier.ApplyFromURL(manifestsURL+"/argo-user-bindings.yml", domain.ArgoNamespace, variables); err != nil {
		return "", err
	}

	output.PrintStep(fmt.Sprintf("create token secret for user '%s'", username))
	if err := h.manifestApplier.ApplyFromURL(manifestsURL+"/argo-user-token-secret.yml", domain.ArgoNamespace, variables); err != nil {
		return "", err
	}

	output.PrintStep("wait for token to be generated")
	token, err := h.tokenWaiter.WaitForToken(username)
	if err != nil {
		return "", err
	}

	output.PrintStep(fmt.Sprintf("configure token for UI access for user '%s'", username))
	err = h.cluster.PatchSecretString(workflowsSSOSecretName, domain.ArgoNamespace, map[string]string{
		"accounts." + username + ".tokens": token,
	})
	if err != nil {
		return "", err
	}

	return token, nil
}
