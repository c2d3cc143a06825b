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

// WorkflowGenerator writes a CI workflow file over the git-initialized
// project tree. It runs concurrently with jira_provisioner in the
// scaffolding phase's dependency graph, both depending only on
// git_provisioner.
type WorkflowGenerator struct {
	runner shellRunner
}

// NewWorkflowGenerator builds a WorkflowGenerator. Pass a nil sandbox to
// run directly on the host, or a live *Sandbox to isolate every command.
func NewWorkflowGenerator(sandbox *Sandbox) *WorkflowGenerator {
	return &WorkflowGenerator{runner: runnerFor(sandbox)}
}

// ID returns the agent's identifier.
func (a *WorkflowGenerator) ID() string { return "workflow_generator" }

// Execute writes .github/workflows/ci.yml for the project's language
// stack.
func (a *WorkflowGenerator) Execute(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
	projectPath := stringOr(input.Context, "project_path", ".")
	languageStack := stringOr(input.Context, "language_stack", "python")

	ciPath := filepath.Join(projectPath, ".github/workflows/ci.yml")

	if _, err := a.runner.Run(ctx, mkdirCommand(filepath.Dir(ciPath))); err != nil {
		return types.NewFailureOutput([]string{fmt.Sprintf("creating workflow directory: %v", err)}), nil
	}
	if _, err := a.runner.Run(ctx, writeFileCommand(ciPath, ciWorkflowTemplate(languageStack))); err != nil {
		return types.NewFailureOutput([]string{fmt.Sprintf("writing ci workflow: %v", err)}), nil
	}

	return types.NewSuccessOutput(
		map[string]any{"workflow_path": ciPath},
		[]map[string]any{{"type": "ci_workflow", "path": ciPath}},
		[]string{fmt.Sprintf("generated CI workflow at %s", ciPath)},
	), nil
}

func ciWorkflowTemplate(languageStack string) string {
	switch languageStack {
	case "node":
		return `name: CI
on: [push, pull_request]
jobs:
  test:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-node@v4
        with:
          node-version: "20"
      - run: npm install
      - run: npm test
`
	default:
		return `name: CI
on: [push, pull_request]
jobs:
  test:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-python@v5
        with:
          python-version: "3.11"
      - run: pip install -r requirements.txt
      - run: pytest
`
	}
}
