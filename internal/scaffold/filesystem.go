// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package scaffold

import (
	"context"
	"fmt"
	"path/filepath"

	"swarmforge/pkg/types"
)

// fileSpec is one entry in a project's generated directory structure.
type fileSpec struct {
	path    string
	content string
	dir     bool
}

// FilesystemScaffolder creates a project's base directory layout: the
// common docs/tests/CI skeleton plus language-specific scaffolding for
// the python and node stacks.
type FilesystemScaffolder struct {
	runner shellRunner
}

// NewFilesystemScaffolder builds a FilesystemScaffolder. Pass a nil
// sandbox to run directly on the host, or a live *Sandbox to isolate
// every command inside a disposable container.
func NewFilesystemScaffolder(sandbox *Sandbox) *FilesystemScaffolder {
	return &FilesystemScaffolder{runner: runnerFor(sandbox)}
}

// ID returns the agent's identifier.
func (a *FilesystemScaffolder) ID() string { return "filesystem_scaffolder" }

// Execute lays out the project directory tree under
// input.Context["project_path"].
func (a *FilesystemScaffolder) Execute(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
	projectPath := stringOr(input.Context, "project_path", ".")
	projectType := stringOr(input.Context, "project_type", "web-app")
	languageStack := stringOr(input.Context, "language_stack", "python")

	if _, err := a.runner.Run(ctx, mkdirCommand(projectPath)); err != nil {
		return types.NewFailureOutput([]string{fmt.Sprintf("creating project directory: %v", err)}), nil
	}

	var createdFiles []string
	for _, item := range directoryStructure(projectType, languageStack) {
		full := filepath.Join(projectPath, item.path)

		if item.dir {
			if _, err := a.runner.Run(ctx, mkdirCommand(full)); err != nil {
				return types.NewFailureOutput([]string{fmt.Sprintf("creating %s: %v", full, err)}), nil
			}
			continue
		}

		if _, err := a.runner.Run(ctx, mkdirCommand(filepath.Dir(full))); err != nil {
			return types.NewFailureOutput([]string{fmt.Sprintf("creating parent of %s: %v", full, err)}), nil
		}
		if _, err := a.runner.Run(ctx, writeFileCommand(full, item.content)); err != nil {
			return types.NewFailureOutput([]string{fmt.Sprintf("writing %s: %v", full, err)}), nil
		}
		createdFiles = append(createdFiles, full)
	}

	return types.NewSuccessOutput(
		map[string]any{
			"project_path":  projectPath,
			"created_files": createdFiles,
		},
		[]map[string]any{{"type": "directory", "path": projectPath}},
		[]string{fmt.Sprintf("created project structure at %s", projectPath)},
	), nil
}

// directoryStructure mirrors the original scaffolder's common + per-
// stack layout: docs/tests/CI directories plus a stack-specific
// manifest and entrypoint.
func directoryStructure(_ string, languageStack string) []fileSpec {
	common := []fileSpec{
		{path: "docs", dir: true},
		{path: "tests", dir: true},
		{path: ".github/workflows", dir: true},
		{path: "README.md", content: "# Project\n"},
		{path: ".gitignore", content: gitignoreFor(languageStack)},
	}

	switch languageStack {
	case "node":
		return append(common,
			fileSpec{path: "src", dir: true},
			fileSpec{path: "package.json", content: "{}\n"},
		)
	default:
		return append(common,
			fileSpec{path: "src", dir: true},
			fileSpec{path: "src/__init__.py"},
			fileSpec{path: "pyproject.toml", content: pyprojectTemplate},
			fileSpec{path: "requirements.txt"},
		)
	}
}

func gitignoreFor(languageStack string) string {
	const common = `# IDE
.idea/
.vscode/
*.swp

# Environment
.env
.env.local

# OS
.DS_Store
Thumbs.db
`
	switch languageStack {
	case "node":
		return common + `
# Node
node_modules/
npm-debug.log
yarn-error.log
.next/
dist/
build/
`
	default:
		return common + `
# Python
__pycache__/
*.py[cod]
.Python
venv/
.venv/
*.egg-info/
dist/
build/
.pytest_cache/
.mypy_cache/
`
	}
}

const pyprojectTemplate = `[project]
name = "my-project"
version = "0.1.0"
requires-python = ">=3.11"
dependencies = []

[project.optional-dependencies]
dev = ["pytest", "ruff", "mypy"]
`
