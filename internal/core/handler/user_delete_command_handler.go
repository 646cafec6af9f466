package handler

import (
	"fmt"
	"strings"

	"phd/internal/cli/output"
	"phd/internal/core"
	"phd/internal/core/domain"
	"phd/internal/ports"
)

type UserDeleteCommandHandler struct {
	cluster       ports.Cluster
	rbacEditor    *core.RbacEditor
	terminalInput ports.TerminalInput
}

func ProvideUserDeleteCommandHandler(
	cluster ports.Cluster,
	rbacEditor *core.RbacEditor,
	terminalInput ports.TerminalInput,
) UserDeleteCommandHandler {
	return UserDeleteCommandHandler{
		cluster:       cluster,
		rbacEditor:    rbacEditor,
		terminalInput: terminalInput,
	}
}

// Handle removes a user from both controllers and deletes the Kubernetes
// resources created for API access. Every step is best-effort; outcomes
// are collected and reported together at the end.
func (h *UserDeleteCommandHandler) Handle(username string, force bool) error {
	output.PrintWarning("This will permanently remove the user and all their permissions")

	if !force {
		confirmed, err := h.confirm(username)
		if err != nil {
			return err
		}
		if !confirmed {
			output.PrintInfo("User deletion cancelled")
			return nil
		}
	}

	report := &core.CleanupReport{}

	h.removeArgoCDUser(report, username)
	h.removeWorkflowsUser(report, username)
	h.removeKubernetesResources(report, username)

	report.Print()
	output.PrintSuccess(fmt.Sprintf("User '%s' deletion process completed", username))
	output.PrintWarning("Restart the servers to apply all changes:")
	output.PrintStep("ArgoCD: kubectl delete pod -n argocd -l app.kubernetes.io/name=argocd-server")
	output.PrintStep("Argo Workflows: kubectl delete pod -n argo -l app=argo-server")

	return nil
}

func (h *UserDeleteCommandHandler) confirm(username string) (bool, error) {
	answer, err := h.terminalInput.ReadLine(fmt.Sprintf("Are you sure you want to delete user '%s'? (y/N): ", username))
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func (h *UserDeleteCommandHandler) removeArgoCDUser(report *core.CleanupReport, username string) {
	output.PrintStep(fmt.Sprintf("remove ArgoCD user '%s'", username))

	data, err := h.cluster.ReadConfigMap(argoCDConfigMapName, domain.ArgoCDNamespace)
	if err == nil {
		if _, exists := data["accounts."+username]; exists {
			err = h.cluster.PatchConfigMap(argoCDConfigMapName, domain.ArgoCDNamespace, map[string]*string{
				"accounts." + username: nil,
			})
		}
	}
	report.Record("remove account from "+argoCDConfigMapName, err)

	report.Record("remove password from "+argoCDSecretName, h.cluster.PatchSecret(
		argoCDSecretName, domain.ArgoCDNamespace, map[string]*string{
			"accounts." + username + ".password": nil,
		}))

	report.Record("remove "+argoCDRbacConfigMap+" policy",
		h.rbacEditor.RemovePolicy(argoCDRbacConfigMap, domain.ArgoCDNamespace, username))
}

func (h *UserDeleteCommandHandler) removeWorkflowsUser(report *core.CleanupReport, username string) {
	output.PrintStep(fmt.Sprintf("remove Argo Workflows user '%s'", username))

	report.Record("remove account from "+workflowsSSOSecretName, h.cluster.PatchSecret(
		workflowsSSOSecretName, domain.ArgoNamespace, map[string]*string{
			"accounts." + username + ".enabled":  nil,
			"accounts." + username + ".password": nil,
			"accounts." + username + ".tokens":   nil,
		}))

	report.Record("remove "+workflowsRbacConfigMap+" policy",
		h.rbacEditor.RemovePolicy(workflowsRbacConfigMap, domain.ArgoNamespace, username))
}

func (h *UserDeleteCommandHandler) removeKubernetesResources(report *core.CleanupReport, username string) {
	output.PrintStep(fmt.Sprintf("remove Kubernetes resources for user '%s'", username))

	report.Record("delete service account", h.cluster.DeleteServiceAccount(username, domain.ArgoNamespace))
	report.Record("delete token secret", h.cluster.DeleteSecret(username+"-token", domain.ArgoNamespace))
	report.Record("delete role", h.cluster.DeleteRole(username+"-workflows", domain.ArgoNamespace))
	report.Record("delete role binding", h.cluster.DeleteRoleBinding(username+"-binding", domain.ArgoNamespace))
	report.Record("delete cluster role", h.cluster.DeleteClusterRole(username+"-cluster-workflows"))
	report.Record("delete cluster role binding", h.cluster.DeleteClusterRoleBinding(username+"-cluster-binding"))
}
