// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package scaffold

import "swarmforge/pkg/agent"

// RegisterAll wires the four scaffolding agents into reg under their
// canonical ids. Pass a nil sandbox to run every agent directly on the
// host; pass a live *Sandbox to isolate filesystem_scaffolder,
// git_provisioner, and workflow_generator's shell commands inside it.
// jira_provisioner never touches a filesystem or shell, so it ignores
// sandbox entirely.
func RegisterAll(reg *agent.Registry, sandbox *Sandbox) {
	reg.RegisterFactory("filesystem_scaffolder", func(*agent.Definition) agent.Agent {
		return NewFilesystemScaffolder(sandbox)
	})
	reg.RegisterFactory("git_provisioner", func(*agent.Definition) agent.Agent {
		return NewGitProvisioner(sandbox)
	})
	reg.RegisterFactory("workflow_generator", func(*agent.Definition) agent.Agent {
		return NewWorkflowGenerator(sandbox)
	})
	reg.RegisterFactory("jira_provisioner", func(*agent.Definition) agent.Agent {
		return NewJiraProvisioner()
	})
}
