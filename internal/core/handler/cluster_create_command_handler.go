package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"phd/internal/cli/output"
	"phd/internal/core"
	"phd/internal/core/domain"
	"phd/internal/ports"
)

const clusterTemplateRepository = "https://github.com/open-craft/phd-cluster-template.git"

// ClusterCreateRequest carries the command-line inputs for scaffolding a
// cluster configuration repository.
type ClusterCreateRequest struct {
	Name                   string
	Domain                 string
	Environment            string
	ShortDescription       string
	CloudProvider          string
	GithubOrganization     string
	GithubRepository       string
	TemplateRepository     string
	TemplateVersion        string
	OutputDir              string
	HarmonyModuleVersion   string
	OpencraftModuleVersion string
	PicassoVersion         string
}

type ClusterCreateCommandHandler struct {
	scaffolder *core.Scaffolder
	fileSystem ports.FileSystem
}

func ProvideClusterCreateCommandHandler(scaffolder *core.Scaffolder, fileSystem ports.FileSystem) ClusterCreateCommandHandler {
	return ClusterCreateCommandHandler{
		scaffolder: scaffolder,
		fileSystem: fileSystem,
	}
}

func (h *ClusterCreateCommandHandler) Handle(request ClusterCreateRequest) error {
	if request.Name == "" {
		return domain.NewValidationError("cluster name cannot be empty")
	}

	slug := clusterSlug(request.Name)

	templateRepository := request.TemplateRepository
	if templateRepository == "" {
		templateRepository = clusterTemplateRepository
	}

	githubRepository := request.GithubRepository
	if githubRepository == "" {
		githubRepository = fmt.Sprintf("https://github.com/%s/phd-%s.git", request.GithubOrganization, slug)
	}

	outputDir := request.OutputDir
	if outputDir == "" {
		outputDir = "."
	}

	output.PrintHeader(fmt.Sprintf("Creating cluster configuration '%s'", slug))
	output.PrintStep("render cluster template")

	clusterDir, err := h.scaffolder.Scaffold(core.ScaffoldRequest{
		TemplateRepository: templateRepository,
		TemplateVersion:    request.TemplateVersion,
		TemplateDirectory:  "cluster-template",
		OutputDir:          outputDir,
		Context: map[string]string{
			"environment":                  request.Environment,
			"cluster_name":                 slug,
			"cluster_domain":               request.Domain,
			"short_description":            request.ShortDescription,
			"cloud_provider":               request.CloudProvider,
			"harmony_module_version":       request.HarmonyModuleVersion,
			"opencraft_module_version":     request.OpencraftModuleVersion,
			"picasso_version":              request.PicassoVersion,
			"phd_cluster_template_version": request.TemplateVersion,
			"github_organization":          request.GithubOrganization,
			"github_repository":            githubRepository,
		},
	})
	if err != nil {
		return err
	}

	output.PrintStep("write cluster context")
	if err := h.writeClusterContext(clusterDir, request.Domain, request.Environment); err != nil {
		return err
	}

	if err := h.exportClusterDir(clusterDir); err != nil {
		return err
	}

	output.PrintSuccess(fmt.Sprintf("Cluster configuration created at %s", clusterDir))
	return nil
}

func (h *ClusterCreateCommandHandler) writeClusterContext(clusterDir, clusterDomain, environment string) error {
	content := fmt.Sprintf("{\n  \"cluster_domain\": %q,\n  \"environment\": %q\n}\n", clusterDomain, environment)
	return h.fileSystem.WriteFile(filepath.Join(clusterDir, "context.json"), []byte(content), ports.ReadAllWriteOwner)
}

// exportClusterDir appends CLUSTER_DIR to the GitHub Actions environment
// file when running inside a workflow, so later steps can cd into the
// generated directory.
func (h *ClusterCreateCommandHandler) exportClusterDir(clusterDir string) error {
	envFile := os.Getenv("GITHUB_ENV")
	if envFile == "" {
		return nil
	}

	existing := []byte{}
	if exists, err := h.fileSystem.FileExists(envFile); err == nil && exists {
		existing, err = h.fileSystem.ReadFile(envFile)
		if err != nil {
			return err
		}
	}

	updated := append(existing, []byte(fmt.Sprintf("CLUSTER_DIR=%s\n", clusterDir))...)
	return h.fileSystem.WriteFile(envFile, updated, ports.ReadAllWriteOwner)
}

// clusterSlug lowercases the name and normalizes separators so the slug is
// usable as a directory and repository name.
func clusterSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")
	return slug
}
