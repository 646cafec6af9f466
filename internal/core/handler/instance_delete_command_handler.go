package handler

import (
	"fmt"
	"path/filepath"
	"strings"

	"phd/internal/cli/output"
	"phd/internal/core"
	"phd/internal/core/domain"
	"phd/internal/ports"

	"gopkg.in/yaml.v3"
)

const namespaceDeleteTimeout = "300s"

type InstanceDeleteCommandHandler struct {
	configRepository   core.ConfigRepository
	kubeconfigResolver *core.KubeconfigResolver
	manifestApplier    *core.ManifestApplier
	workflowWaiter     *core.WorkflowWaiter
	fileSystem         ports.FileSystem
	commandRunner      ports.CommandRunner
	terminalInput      ports.TerminalInput
}

func ProvideInstanceDeleteCommandHandler(
	configRepository core.ConfigRepository,
	kubeconfigResolver *core.KubeconfigResolver,
	manifestApplier *core.ManifestApplier,
	workflowWaiter *core.WorkflowWaiter,
	fileSystem ports.FileSystem,
	commandRunner ports.CommandRunner,
	terminalInput ports.TerminalInput,
) InstanceDeleteCommandHandler {
	return InstanceDeleteCommandHandler{
		configRepository:   configRepository,
		kubeconfigResolver: kubeconfigResolver,
		manifestApplier:    manifestApplier,
		workflowWaiter:     workflowWaiter,
		fileSystem:         fileSystem,
		commandRunner:      commandRunner,
		terminalInput:      terminalInput,
	}
}

// Handle deprovisions the instance's backing services, removes its GitOps
// application and RBAC, deletes its namespace, and finally removes the
// local instance directory. Cleanup steps before the namespace deletion
// are best-effort so a partially provisioned instance can still be torn
// down.
func (h *InstanceDeleteCommandHandler) Handle(instanceName string, force bool) error {
	output.PrintWarning(fmt.Sprintf("This will permanently delete instance '%s' and all its data", instanceName))

	if !force {
		confirmed, err := h.confirm(instanceName)
		if err != nil {
			return err
		}
		if !confirmed {
			output.PrintInfo("Instance deletion cancelled")
			return nil
		}
	}

	if _, err := h.commandRunner.LookPath("kubectl"); err != nil {
		return &domain.CommandNotFoundError{Command: "kubectl"}
	}

	// Every cleanup step below goes through kubectl, so the kubeconfig has
	// to be in place first.
	if _, err := h.kubeconfigResolver.Resolve(); err != nil {
		return err
	}

	config, err := h.configRepository.LoadClusterConfig()
	if err != nil {
		return err
	}

	output.PrintHeader(fmt.Sprintf("Deleting instance '%s'", instanceName))

	instanceDir := filepath.Join(config.InstancesDirectory, instanceName)

	if out, err := h.commandRunner.Run("kubectl", "get", "namespace", instanceName); err != nil {
		output.PrintWarning(fmt.Sprintf("namespace '%s' not found, skipping cluster cleanup: %s", instanceName, strings.TrimSpace(string(out))))
	} else {
		h.runDeprovisioningWorkflows(config, instanceDir, instanceName)
		h.deleteApplication(instanceDir)
		h.deleteInstanceRbac(instanceName)

		if err := h.deleteNamespace(instanceName); err != nil {
			return err
		}
	}

	output.PrintStep(fmt.Sprintf("remove instance directory %s", instanceDir))
	if err := h.fileSystem.RemoveAll(instanceDir); err != nil {
		return err
	}

	output.PrintSuccess(fmt.Sprintf("Instance '%s' deleted", instanceName))
	return nil
}

func (h *InstanceDeleteCommandHandler) confirm(instanceName string) (bool, error) {
	answer, err := h.terminalInput.ReadLine(fmt.Sprintf("Are you sure you want to delete instance '%s'? (y/N): ", instanceName))
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// runDeprovisioningWorkflows removes any leftover provisioning workflows
// and submits the deprovisioning ones. Failures are reported but do not
// abort the deletion.
func (h *InstanceDeleteCommandHandler) runDeprovisioningWorkflows(config *domain.ClusterConfig, instanceDir, instanceName string) {
	variables := h.loadInstanceVariables(config, instanceDir, instanceName)
	manifestsURL := config.ManifestsURL()

	for _, service := range provisioningServices {
		h.workflowWaiter.Delete(instanceName, fmt.Sprintf("%s-provision-%s", service, instanceName))
	}

	for _, service := range provisioningServices {
		output.PrintStep(fmt.Sprintf("submit %s deprovisioning workflow", service))
		url := fmt.Sprintf("%s/phd-%s-deprovision-workflow.yml", manifestsURL, service)
		if err := h.manifestApplier.ApplyFromURL(url, instanceName, variables); err != nil {
			output.PrintWarning(fmt.Sprintf("failed to submit %s deprovisioning workflow: %v", service, err))
		}
	}

	workflowNames := make([]string, 0, len(provisioningServices))
	for _, service := range provisioningServices {
		workflowNames = append(workflowNames, fmt.Sprintf("%s-deprovision-%s", service, instanceName))
	}

	allSucceeded := h.workflowWaiter.WaitAll(instanceName, workflowNames, "Deprovisioning")
	h.workflowWaiter.PrintSnapshot(instanceName)

	if !allSucceeded {
		output.PrintWarning("one or more deprovisioning workflows may have failed, continuing with deletion")
		return
	}

	for _, service := range provisioningServices {
		h.workflowWaiter.Delete(instanceName, fmt.Sprintf("%s-deprovision-%s", service, instanceName))
	}
}

// loadInstanceVariables rebuilds the workflow variable set from the stored
// instance configuration. A missing or unreadable config.yml degrades to
// credentials-only variables.
func (h *InstanceDeleteCommandHandler) loadInstanceVariables(config *domain.ClusterConfig, instanceDir, instanceName string) map[string]string {
	configData := map[string]interface{}{}

	data, err := h.fileSystem.ReadFile(filepath.Join(instanceDir, "config.yml"))
	if err == nil {
		if err := yaml.Unmarshal(data, &configData); err != nil {
			output.PrintWarning(fmt.Sprintf("failed to parse instance configuration: %v", err))
		}
	} else {
		output.PrintWarning(fmt.Sprintf("instance configuration not found, deprovisioning with cluster credentials only: %v", err))
	}

	return core.BuildInstanceVariables(config, instanceName, core.InstanceOptions{}, configData)
}

// deleteApplication removes the ArgoCD application referenced by the
// stored application.yml, when one exists.
func (h *InstanceDeleteCommandHandler) deleteApplication(instanceDir string) {
	applicationPath := filepath.Join(instanceDir, "application.yml")
	data, err := h.fileSystem.ReadFile(applicationPath)
	if err != nil {
		output.PrintWarning(fmt.Sprintf("instance application manifest not found, skipping: %v", err))
		return
	}

	var application struct {
		Metadata struct {
			Name      string `yaml:"name"`
			Namespace string `yaml:"namespace"`
		} `yaml:"metadata"`
	}
	if err := yaml.Unmarshal(data, &application); err != nil || application.Metadata.Name == "" {
		output.PrintWarning("instance application manifest is malformed, skipping application deletion")
		return
	}

	namespace := application.Metadata.Namespace
	if namespace == "" {
		namespace = domain.ArgoCDNamespace
	}

	output.PrintStep(fmt.Sprintf("delete application '%s'", application.Metadata.Name))
	if out, err := h.commandRunner.Run("kubectl", "delete", "application", application.Metadata.Name, "-n", namespace); err != nil {
		output.PrintWarning(fmt.Sprintf("failed to delete application: %s", strings.TrimSpace(string(out))))
	}
}

func (h *InstanceDeleteCommandHandler) deleteInstanceRbac(instanceName string) {
	output.PrintStep("remove instance RBAC")
	if out, err := h.commandRunner.Run("kubectl", "delete", "clusterrole", instanceName+"-workflows"); err != nil {
		output.PrintWarning(fmt.Sprintf("failed to delete cluster role: %s", strings.TrimSpace(string(out))))
	}
	if out, err := h.commandRunner.Run("kubectl", "delete", "clusterrolebinding", instanceName+"-binding"); err != nil {
		output.PrintWarning(fmt.Sprintf("failed to delete cluster role binding: %s", strings.TrimSpace(string(out))))
	}
}

func (h *InstanceDeleteCommandHandler) deleteNamespace(instanceName string) error {
	output.PrintStep(fmt.Sprintf("delete namespace '%s'", instanceName))
	out, err := h.commandRunner.Run("kubectl", "delete", "namespace", instanceName, "--timeout="+namespaceDeleteTimeout)
	if err != nil {
		return domain.NewClusterError(err, "failed to delete namespace '%s': %s", instanceName, string(out))
	}

	if _, err := h.commandRunner.Run("kubectl", "get", "namespace", instanceName); err == nil {
		return domain.NewClusterError(nil, "namespace '%s' was not fully deleted", instanceName)
	}
	return nil
}
