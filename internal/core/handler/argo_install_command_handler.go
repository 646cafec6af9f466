package handler

import (
	"fmt"
	"time"

	"phd/internal/cli/output"
	"phd/internal/core"
	"phd/internal/core/domain"
	"phd/internal/ports"
)

const adminPasswordKeyName = "argo-admin-password"
const generatedPasswordLength = 24

const workflowExecutorTokenManifest = `apiVersion: v1
kind: Secret
metadata:
  name: workflow-executor-token
  namespace: argo
  annotations:
    kubernetes.io/service-account.name: workflow-executor
type: kubernetes.io/service-account-token`

// workflowTemplateManifests are the provisioning and deprovisioning
// WorkflowTemplates installed alongside the workflow engine.
var workflowTemplateManifests = []string{
	"phd-mysql-provision-template.yml",
	"phd-mongodb-provision-template.yml",
	"phd-storage-provision-template.yml",
	"phd-mysql-deprovision-template.yml",
	"phd-mongodb-deprovision-template.yml",
	"phd-storage-deprovision-template.yml",
}

type ArgoInstallCommandHandler struct {
	configRepository core.ConfigRepository
	cluster          ports.Cluster
	manifestApplier  *core.ManifestApplier
	passwordHasher   ports.PasswordHasher
	keyring          ports.Keyring
}

func ProvideArgoInstallCommandHandler(
	configRepository core.ConfigRepository,
	cluster ports.Cluster,
	manifestApplier *core.ManifestApplier,
	passwordHasher ports.PasswordHasher,
	keyring ports.Keyring,
) ArgoInstallCommandHandler {
	return ArgoInstallCommandHandler{
		configRepository: configRepository,
		cluster:          cluster,
		manifestApplier:  manifestApplier,
		passwordHasher:   passwordHasher,
		keyring:          keyring,
	}
}

func (h *ArgoInstallCommandHandler) Handle(argocdOnly, workflowsOnly bool) error {
	config, err := h.configRepository.LoadClusterConfig()
	if err != nil {
		return err
	}

	plaintext, generated, err := h.resolveAdminPassword(config)
	if err != nil {
		return err
	}

	installBoth := !argocdOnly && !workflowsOnly

	if installBoth || argocdOnly {
		output.PrintHeader("Installing ArgoCD")
		if err := h.installArgoCD(config, plaintext); err != nil {
			return err
		}
		output.PrintSuccess("ArgoCD installed successfully")
	}

	if installBoth || workflowsOnly {
		output.PrintHeader("Installing Argo Workflows")
		if err := h.InstallArgoWorkflows(config, plaintext); err != nil {
			return err
		}
		output.PrintSuccess("Argo Workflows installed successfully")
	}

	if generated {
		output.PrintWarning(fmt.Sprintf("Generated Argo admin password (stored in the system keyring): %s", plaintext))
	}

	return nil
}

// resolveAdminPassword returns the configured admin password, falling back
// to the keyring, and generating a fresh one when neither exists. Generated
// passwords are stored in the keyring so repeated installs stay idempotent.
func (h *ArgoInstallCommandHandler) resolveAdminPassword(config *domain.ClusterConfig) (string, bool, error) {
	if config.ArgoAdminPassword != "" {
		return config.ArgoAdminPassword, false, nil
	}

	hasKey, err := h.keyring.HasKey(adminPasswordKeyName)
	if err == nil && hasKey {
		stored, err := h.keyring.GetKey(adminPasswordKeyName)
		if err == nil && stored != "" {
			return stored, false, nil
		}
	}

	generatedPassword, err := h.passwordHasher.Generate(generatedPasswordLength)
	if err != nil {
		return "", false, err
	}
	if err := h.keyring.SetKey(adminPasswordKeyName, generatedPassword); err != nil {
		output.PrintWarning(fmt.Sprintf("Failed to store generated password in keyring: %v", err))
	}
	return generatedPassword, true, nil
}

func (h *ArgoInstallCommandHandler) installArgoCD(config *domain.ClusterConfig, plaintext string) error {
	passwordHash, err := h.passwordHasher.Hash(plaintext)
	if err != nil {
		return err
	}

	output.PrintStep("create ArgoCD namespace")
	if err := h.cluster.CreateNamespace(domain.ArgoCDNamespace); err != nil {
		return err
	}

	manifestsURL := config.ManifestsURL()

	output.PrintStep("install ArgoCD core components")
	if err := h.manifestApplier.ApplyFromURL(config.ArgoCDInstallURL(), domain.ArgoCDNamespace, nil); err != nil {
		return err
	}

	output.PrintStep("ensure base ArgoCD configmap")
	if err := h.manifestApplier.ApplyFromURL(manifestsURL+"/argocd-base-config.yml", domain.ArgoCDNamespace, nil); err != nil {
		return err
	}

	output.PrintStep("configure ArgoCD ingress")
	err = h.manifestApplier.ApplyFromURL(manifestsURL+"/argocd-ingress.yml", domain.ArgoCDNamespace, map[string]string{
		"PHD_CLUSTER_DOMAIN": config.ClusterDomain,
	})
	if err != nil {
		return err
	}

	output.PrintStep("configure ArgoCD admin password")
	return h.manifestApplier.ApplyFromURL(manifestsURL+"/argocd-admin-password.yml", domain.ArgoCDNamespace, map[string]string{
		"PHD_CLUSTER_DOMAIN":              config.ClusterDomain,
		"PHD_ARGO_ADMIN_PASSWORD_BCRYPT":  passwordHash,
		"PHD_ARGOCD_ADMIN_PASSWORD_MTIME": time.Now().UTC().Format(time.RFC3339),
	})
}

// InstallArgoWorkflows installs the workflow engine, its ingress and
// admin auth, the executor token, and the provisioning WorkflowTemplates.
// Every step is idempotent so the install can be re-run to converge.
func (h *ArgoInstallCommandHandler) InstallArgoWorkflows(config *domain.ClusterConfig, plaintext string) error {
	passwordHash, err := h.passwordHasher.Hash(plaintext)
	if err != nil {
		return err
	}

	output.PrintStep("create Argo Workflows namespace")
	if err := h.cluster.CreateNamespace(domain.ArgoNamespace); err != nil {
		return err
	}

	manifestsURL := config.ManifestsURL()

	output.PrintStep("install Argo Workflows core components")
	if err := h.manifestApplier.ApplyFromURL(config.ArgoWorkflowsInstallURL(), domain.ArgoNamespace, nil); err != nil {
		return err
	}

	output.PrintStep("configure Argo Workflows ingress")
	err = h.manifestApplier.ApplyFromURL(manifestsURL+"/argo-workflows-ingress.yml", domain.ArgoNamespace, map[string]string{
		"PHD_CLUSTER_DOMAIN": config.ClusterDomain,
	})
	if err != nil {
		return err
	}

	output.PrintStep("configure Argo Server admin auth")
	err = h.manifestApplier.ApplyFromURL(manifestsURL+"/argo-server-auth.yml", domain.ArgoNamespace, map[string]string{
		"PHD_CLUSTER_DOMAIN":             config.ClusterDomain,
		"PHD_ARGO_ADMIN_PASSWORD_BCRYPT": passwordHash,
	})
	if err != nil {
		return err
	}

	output.PrintStep("create workflow-executor token")
	if err := h.manifestApplier.Apply(workflowExecutorTokenManifest, domain.ArgoNamespace, nil); err != nil {
		return err
	}

	for _, template := range workflowTemplateManifests {
		output.PrintStep(fmt.Sprintf("install %s", template))
		if err := h.manifestApplier.ApplyFromURL(manifestsURL+"/"+template, domain.ArgoNamespace, nil); err != nil {
			return err
		}
	}

	return nil
}

// EnsureWorkflowsInstalled re-runs the workflow engine install so instance
// provisioning never depends on a separate manual install step.
func (h *ArgoInstallCommandHandler) EnsureWorkflowsInstalled(config *domain.ClusterConfig) error {
	plaintext, _, err := h.resolveAdminPassword(config)
	if err != nil {
		return err
	}
	return h.InstallArgoWorkflows(config, plaintext)
}
