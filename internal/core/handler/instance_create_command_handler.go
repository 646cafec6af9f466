package handler

import (
	"fmt"
	"path/filepath"

	"phd/internal/cli/output"
	"phd/internal/core"
	"phd/internal/core/domain"
	"phd/internal/ports"

	"gopkg.in/yaml.v3"
)

const instanceTemplateRepository = "https://github.com/open-craft/phd-cluster-template.git"

// provisioningServices are the backing services a new instance needs, in
// the order their workflows are submitted.
var provisioningServices = []string{"mysql", "mongodb", "storage"}

// InstanceCreateRequest carries the command-line inputs for provisioning a
// platform instance.
type InstanceCreateRequest struct {
	Name               string
	PlatformName       string
	PlatformRepository string
	PlatformVersion    string
	TutorVersion       string
	TemplateRepository string
	TemplateVersion    string
}

type InstanceCreateCommandHandler struct {
	configRepository core.ConfigRepository
	cluster          ports.Cluster
	manifestApplier  *core.ManifestApplier
	scaffolder       *core.Scaffolder
	installHandler   ArgoInstallCommandHandler
	workflowWaiter   *core.WorkflowWaiter
	fileSystem       ports.FileSystem
	commandRunner    ports.CommandRunner
}

func ProvideInstanceCreateCommandHandler(
	configRepository core.ConfigRepository,
	cluster ports.Cluster,
	manifestApplier *core.ManifestApplier,
	scaffolder *core.Scaffolder,
	installHandler ArgoInstallCommandHandler,
	workflowWaiter *core.WorkflowWaiter,
	fileSystem ports.FileSystem,
	commandRunner ports.CommandRunner,
) InstanceCreateCommandHandler {
	return InstanceCreateCommandHandler{
		configRepository: configRepository,
		cluster:          cluster,
		manifestApplier:  manifestApplier,
		scaffolder:       scaffolder,
		installHandler:   installHandler,
		workflowWaiter:   workflowWaiter,
		fileSystem:       fileSystem,
		commandRunner:    commandRunner,
	}
}

func (h *InstanceCreateCommandHandler) Handle(request InstanceCreateRequest) error {
	if request.Name == "" {
		return domain.NewValidationError("instance name cannot be empty")
	}

	config, err := h.configRepository.LoadClusterConfig()
	if err != nil {
		return err
	}

	output.PrintHeader(fmt.Sprintf("Creating instance '%s'", request.Name))

	instanceDir, err := h.scaffoldInstance(config, request)
	if err != nil {
		return err
	}

	output.PrintStep(fmt.Sprintf("create namespace '%s'", request.Name))
	if err := h.cluster.CreateNamespace(request.Name); err != nil {
		return err
	}

	output.PrintStep("apply instance RBAC")
	err = h.manifestApplier.ApplyFromURL(
		config.ManifestsURL()+"/openedx-instance-rbac.yml",
		request.Name,
		map[string]string{"PHD_INSTANCE_NAME": request.Name},
	)
	if err != nil {
		return err
	}

	if err := h.installHandler.EnsureWorkflowsInstalled(config); err != nil {
		return err
	}

	variables, err := h.loadInstanceVariables(config, instanceDir, request)
	if err != nil {
		return err
	}

	if err := h.runProvisioningWorkflows(config, request.Name, variables); err != nil {
		return err
	}

	output.PrintStep("deploy instance application")
	if err := h.applyInstanceApplication(instanceDir); err != nil {
		return err
	}

	output.PrintSuccess(fmt.Sprintf("Instance '%s' created", request.Name))
	return nil
}

func (h *InstanceCreateCommandHandler) scaffoldInstance(config *domain.ClusterConfig, request InstanceCreateRequest) (string, error) {
	templateRepository := request.TemplateRepository
	if templateRepository == "" {
		templateRepository = instanceTemplateRepository
	}
	templateVersion := request.TemplateVersion
	if templateVersion == "" {
		templateVersion = config.ManifestsVersion
	}

	output.PrintStep("render instance template")
	return h.scaffolder.Scaffold(core.ScaffoldRequest{
		TemplateRepository: templateRepository,
		TemplateVersion:    templateVersion,
		TemplateDirectory:  "instance-template",
		OutputDir:          config.InstancesDirectory,
		Context: map[string]string{
			"instance_name":           request.Name,
			"platform_name":           request.PlatformName,
			"edx_platform_repository": request.PlatformRepository,
			"edx_platform_version":    request.PlatformVersion,
			"tutor_version":           request.TutorVersion,
			"cluster_domain":          config.ClusterDomain,
			"environment":             config.Environment,
		},
	})
}

// loadInstanceVariables reads the generated config.yml and combines it with
// the cluster provisioning credentials into the workflow variable set.
func (h *InstanceCreateCommandHandler) loadInstanceVariables(
	config *domain.ClusterConfig,
	instanceDir string,
	request InstanceCreateRequest,
) (map[string]string, error) {
	configPath := filepath.Join(instanceDir, "config.yml")
	data, err := h.fileSystem.ReadFile(configPath)
	if err != nil {
		return nil, domain.NewManifestError(err, "failed to read instance configuration %s", configPath)
	}

	var configData map[string]interface{}
	if err := yaml.Unmarshal(data, &configData); err != nil {
		return nil, domain.NewManifestError(err, "failed to parse instance configuration %s", configPath)
	}

	options := core.InstanceOptions{
		PlatformName:       request.PlatformName,
		PlatformRepository: request.PlatformRepository,
		PlatformVersion:    request.PlatformVersion,
		TutorVersion:       request.TutorVersion,
	}
	return core.BuildInstanceVariables(config, request.Name, options, configData), nil
}

// runProvisioningWorkflows submits the MySQL, MongoDB, and storage
// provisioning workflows and waits for all of them to succeed. Workflows
// run in the instance's own namespace, where the instance RBAC grants
// their service account its permissions. Finished workflow resources are
// removed only when all of them succeeded, so failures stay inspectable.
func (h *InstanceCreateCommandHandler) runProvisioningWorkflows(
	config *domain.ClusterConfig,
	instanceName string,
	variables map[string]string,
) error {
	manifestsURL := config.ManifestsURL()

	for _, service := range provisioningServices {
		output.PrintStep(fmt.Sprintf("submit %s provisioning workflow", service))
		url := fmt.Sprintf("%s/phd-%s-provision-workflow.yml", manifestsURL, service)
		if err := h.manifestApplier.ApplyFromURL(url, instanceName, variables); err != nil {
			return err
		}
	}

	workflowNames := make([]string, 0, len(provisioningServices))
	for _, service := range provisioningServices {
		workflowNames = append(workflowNames, fmt.Sprintf("%s-provision-%s", service, instanceName))
	}

	allSucceeded := h.workflowWaiter.WaitAll(instanceName, workflowNames, "Provisioning")
	h.workflowWaiter.PrintSnapshot(instanceName)

	if !allSucceeded {
		return domain.NewClusterError(nil, "one or more provisioning workflows may have failed for instance '%s'", instanceName)
	}

	for _, service := range provisioningServices {
		h.workflowWaiter.Delete(instanceName, fmt.Sprintf("%s-provision-%s", service, instanceName))
	}
	return nil
}

// applyInstanceApplication applies the generated ArgoCD application so the
// GitOps controller takes over instance deployment.
func (h *InstanceCreateCommandHandler) applyInstanceApplication(instanceDir string) error {
	applicationPath := filepath.Join(instanceDir, "application.yml")
	exists, err := h.fileSystem.FileExists(applicationPath)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewManifestError(nil, "instance application manifest %s does not exist", applicationPath)
	}

	out, err := h.commandRunner.Run("kubectl", "apply", "-f", applicationPath)
	if err != nil {
		return domain.NewClusterError(err, "failed to apply %s: %s", applicationPath, string(out))
	}
	return nil
}
