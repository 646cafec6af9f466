package core

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"phd/internal/core/domain"
	"phd/internal/ports"
)

const templateManifestName = "template.json"

// ScaffoldRequest describes a project to generate from a template tree.
type ScaffoldRequest struct {
	// TemplateRepository is a git URL or a local path to the template
	// repository.
	TemplateRepository string
	// TemplateVersion is the git ref to use; empty means the default branch.
	TemplateVersion string
	// TemplateDirectory is the template subdirectory within the repository,
	// e.g. "cluster-template" or "instance-template".
	TemplateDirectory string
	// OutputDir is where the generated project directory is placed.
	OutputDir string
	// Context supplies template variables, overriding the defaults declared
	// in the template's template.json.
	Context map[string]string
}

// Scaffolder generates project directories from template trees. A template
// directory carries a template.json with default variables and a single
// top-level directory whose name and contents hold {{ VAR }} placeholders.
type Scaffolder struct {
	scm        ports.Scm
	templater  ports.Templater
	fileSystem ports.FileSystem
}

func ProvideScaffolder(scm ports.Scm, templater ports.Templater, fileSystem ports.FileSystem) *Scaffolder {
	return &Scaffolder{
		scm:        scm,
		templater:  templater,
		fileSystem: fileSystem,
	}
}

// Scaffold renders the template into OutputDir and returns the generated
// project path. An existing project directory is refused rather than
// overwritten.
func (s *Scaffolder) Scaffold(request ScaffoldRequest) (string, error) {
	templateRoot, err := s.resolveTemplateRoot(request)
	if err != nil {
		return "", err
	}

	variables, err := s.loadTemplateVariables(templateRoot, request.Context)
	if err != nil {
		return "", err
	}

	projectDir, err := findProjectTemplateDir(templateRoot)
	if err != nil {
		return "", err
	}

	outputName := s.templater.Render(filepath.Base(projectDir), variables)
	if outputName == "" || strings.ContainsAny(outputName, "/\\") {
		return "", domain.NewValidationError("template renders an invalid project directory name %q", outputName)
	}

	outputPath := filepath.Join(request.OutputDir, outputName)
	if exists, err := s.fileSystem.FileExists(outputPath); err != nil {
		return "", err
	} else if exists {
		return "", domain.NewValidationError("output directory %s already exists", outputPath)
	}

	if err := s.renderTree(projectDir, outputPath, variables); err != nil {
		return "", err
	}
	return outputPath, nil
}

// resolveTemplateRoot locates the template directory: a local checkout when
// one is present (explicit path or detected by walking up from the working
// directory), otherwise a cached git clone.
func (s *Scaffolder) resolveTemplateRoot(request ScaffoldRequest) (string, error) {
	if strings.HasPrefix(request.TemplateRepository, ".") || strings.HasPrefix(request.TemplateRepository, "/") {
		path, err := filepath.Abs(request.TemplateRepository)
		if err != nil {
			return "", err
		}
		for _, candidate := range []string{path, filepath.Join(path, request.TemplateDirectory)} {
			if isTemplateDir(candidate) {
				return candidate, nil
			}
		}
		return "", domain.NewValidationError("no %s found under %s", templateManifestName, path)
	}

	if local := s.detectLocalTemplate(request.TemplateDirectory); local != "" {
		return local, nil
	}

	home, err := s.fileSystem.HomeDir()
	if err != nil {
		return "", err
	}

	ref := request.TemplateVersion
	if ref == "" {
		ref = "main"
	}

	cacheDir := filepath.Join(home, ".phd", "templates", repositorySlug(request.TemplateRepository))
	if err := s.scm.Download(request.TemplateRepository, ref, cacheDir); err != nil {
		return "", err
	}

	templateRoot := filepath.Join(cacheDir, request.TemplateDirectory)
	if !isTemplateDir(templateRoot) {
		return "", domain.NewValidationError("repository %s has no %s/%s", request.TemplateRepository, request.TemplateDirectory, templateManifestName)
	}
	return templateRoot, nil
}

// detectLocalTemplate walks up from the working directory looking for the
// template directory, so a checkout of the template repository is used
// without cloning.
func (s *Scaffolder) detectLocalTemplate(templateDirectory string) string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, templateDirectory)
		if isTemplateDir(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadTemplateVariables merges the request context over the defaults from
// template.json. Default values may reference other variables and are
// rendered against the final set.
func (s *Scaffolder) loadTemplateVariables(templateRoot string, context map[string]string) (map[string]string, error) {
	data, err := s.fileSystem.ReadFile(filepath.Join(templateRoot, templateManifestName))
	if err != nil {
		return nil, domain.NewValidationError("failed to read %s: %v", templateManifestName, err)
	}

	var defaults map[string]string
	if err := json.Unmarshal(data, &defaults); err != nil {
		return nil, domain.NewValidationError("invalid %s: %v", templateManifestName, err)
	}

	variables := make(map[string]string, len(defaults)+len(context))
	for key, value := range defaults {
		variables[key] = value
	}
	for key, value := range context {
		if value != "" {
			variables[key] = value
		}
	}
	for key, value := range variables {
		if strings.Contains(value, "{{") {
			variables[key] = s.templater.Render(value, variables)
		}
	}
	return variables, nil
}

func (s *Scaffolder) renderTree(projectDir, outputPath string, variables map[string]string) error {
	return filepath.WalkDir(projectDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relative, err := filepath.Rel(projectDir, path)
		if err != nil {
			return err
		}
		rendered := s.templater.Render(relative, variables)
		target := filepath.Join(outputPath, rendered)

		if entry.IsDir() {
			// WriteFile creates parent directories, so directory entries
			// only need handling to keep empty directories.
			return s.fileSystem.EnsureDirExists(filepath.Join(target, templateManifestName))
		}

		content, err := s.fileSystem.ReadFile(path)
		if err != nil {
			return err
		}
		return s.fileSystem.WriteFile(target, []byte(s.templater.Render(string(content), variables)), ports.ReadAllWriteOwner)
	})
}

func findProjectTemplateDir(templateRoot string) (string, error) {
	entries, err := os.ReadDir(templateRoot)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.IsDir() && strings.Contains(entry.Name(), "{{") {
			return filepath.Join(templateRoot, entry.Name()), nil
		}
	}
	return "", domain.NewValidationError("no project directory with placeholders found in %s", templateRoot)
}

func isTemplateDir(path string) bool {
	info, err := os.Stat(filepath.Join(path, templateManifestName))
	return err == nil && info.Mode().IsRegular()
}

var repositorySlugInvalid = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func repositorySlug(repositoryUrl string) string {
	base := strings.TrimSuffix(filepath.Base(repositoryUrl), ".git")
	slug := repositorySlugInvalid.ReplaceAllString(base, "-")
	if slug == "" {
		return "template"
	}
	return slug
}
