// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package scaffold

import (
	"context"
	"fmt"

	"swarmforge/pkg/types"
)

// GitProvisioner initializes a git repository over the directory
// filesystem_scaffolder just created and commits the initial tree. The
// dependency_graph's static edge table (pkg/phase's scaffoldDependencies)
// guarantees filesystem_scaffolder has already run by the time this
// agent executes.
type GitProvisioner struct {
	runner shellRunner
}

// NewGitProvisioner builds a GitProvisioner. Pass a nil sandbox to run
// directly on the host, or a live *Sandbox to isolate every command.
func NewGitProvisioner(sandbox *Sandbox) *GitProvisioner {
	return &GitProvisioner{runner: runnerFor(sandbox)}
}

// ID returns the agent's identifier.
func (a *GitProvisioner) ID() string { return "git_provisioner" }

// Execute runs git init/add/commit against the project path.
func (a *GitProvisioner) Execute(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
	projectPath := stringOr(input.Context, "project_path", ".")

	commands := []string{
		fmt.Sprintf("git -C %s init", shellQuote(projectPath)),
		fmt.Sprintf("git -C %s add -A", shellQuote(projectPath)),
		fmt.Sprintf(
			"git -C %s -c user.email=scaffold@swarmforge.dev -c user.name=swarmforge commit -m %s --allow-empty",
			shellQuote(projectPath), shellQuote("initial project scaffold"),
		),
	}

	for _, cmd := range commands {
		if _, err := a.runner.Run(ctx, cmd); err != nil {
			return types.NewFailureOutput([]string{fmt.Sprintf("git provisioning: %v", err)}), nil
		}
	}

	return types.NewSuccessOutput(
		map[string]any{"project_path": projectPath, "initialized": true},
		[]map[string]any{{"type": "git_repo", "path": projectPath}},
		[]string{"initialized git repository with initial commit"},
	), nil
}
