// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package workflow holds the two built-in WorkflowDefinitions: the
// 8-phase Discovery workflow (AI-driven design from a project
// overview) and the 4-phase Direct workflow (minimal-AI quick
// scaffolding from an exact spec).
package workflow

import "swarmforge/pkg/types"

// Discovery returns the 8-phase AI Discovery workflow definition.
func Discovery() types.WorkflowDefinition {
	return types.WorkflowDefinition{
		Name: "AI Discovery Workflow",
		Mode: types.ModeDiscovery,
		Phases: []types.Phase{
			{
				Name:           "input",
				DisplayName:    "Input",
				Description:    "Receive and validate project overview",
				ExecutionModel: types.ExecutionSequential,
				Agents:         []string{"input_validator"},
			},
			{
				Name:             "product_design",
				DisplayName:      "Product Design",
				Description:      "Generate product design from overview",
				RequiresApproval: true,
				ExecutionModel:   types.ExecutionSequential,
				Agents:           []string{"po_agent"},
			},
			{
				Name:           "requirements",
				DisplayName:    "Requirements",
				Description:    "Generate detailed requirements, epics, and user stories",
				ExecutionModel: types.ExecutionParallel,
				Agents:         []string{"requirement_agent"},
			},
			{
				Name:             "architecture_design",
				DisplayName:      "Architecture Design",
				Description:      "Design system architecture",
				RequiresApproval: true,
				ExecutionModel:   types.ExecutionParallel,
				Agents: []string{
					"fullstack_architect",
					"backend_architect",
					"frontend_architect",
					"database_architect",
					"infrastructure_architect",
					"security_architect",
					"ml_architect",
					"ai_architect",
				},
				ActivationRules: &types.ActivationRules{UseActivationMatrix: true},
			},
			{
				Name:           "code_generation",
				DisplayName:    "Code Generation",
				Description:    "Generate code from architecture",
				ExecutionModel: types.ExecutionParallel,
				Agents: []string{
					"fullstack_developer",
					"backend_developer",
					"frontend_developer",
					"aiml_developer",
				},
				ActivationRules: &types.ActivationRules{UseActivationMatrix: true},
			},
			{
				Name:           "quality",
				DisplayName:    "Quality & DevOps",
				Description:    "Generate tests, CI/CD, and documentation",
				ExecutionModel: types.ExecutionParallel,
				Agents:         []string{"testing_agent", "cicd_agent", "documentation_agent"},
			},
			{
				Name:           "scaffolding",
				DisplayName:    "Scaffolding",
				Description:    "Create project files and setup integrations",
				ExecutionModel: types.ExecutionDependencyGraph,
				Agents:         []string{"filesystem_scaffolder", "git_provisioner", "workflow_generator", "jira_provisioner"},
			},
			{
				Name:           "summary",
				DisplayName:    "Summary",
				Description:    "Generate final summary and next steps",
				ExecutionModel: types.ExecutionSequential,
				Agents:         []string{"summary_reporter"},
			},
		},
	}
}

// Direct returns the 4-phase Direct Scaffolding workflow definition.
func Direct() types.WorkflowDefinition {
	return types.WorkflowDefinition{
		Name: "Direct Scaffolding Workflow",
		Mode: types.ModeDirect,
		Phases: []types.Phase{
			{
				Name:           "input",
				DisplayName:    "Input",
				Description:    "Receive and validate project specification",
				ExecutionModel: types.ExecutionSequential,
				Agents:         []string{"spec_validator"},
			},
			{
				Name:           "architecture_design",
				DisplayName:    "Architecture",
				Description:    "Quick architecture setup",
				ExecutionModel: types.ExecutionParallel,
				Agents:         []string{"infrastructure_architect", "security_architect"},
			},
			{
				Name:           "scaffolding",
				DisplayName:    "Scaffolding",
				Description:    "Create project files and setup integrations",
				ExecutionModel: types.ExecutionDependencyGraph,
				Agents:         []string{"filesystem_scaffolder", "git_provisioner", "workflow_generator", "jira_provisioner"},
			},
			{
				Name:           "summary",
				DisplayName:    "Summary",
				Description:    "Generate final summary",
				ExecutionModel: types.ExecutionSequential,
				Agents:         []string{"summary_reporter"},
			},
		},
	}
}

// ByMode returns the built-in definition for mode.
func ByMode(mode types.Mode) (types.WorkflowDefinition, bool) {
	switch mode {
	case types.ModeDiscovery:
		return Discovery(), true
	case types.ModeDirect:
		return Direct(), true
	default:
		return types.WorkflowDefinition{}, false
	}
}
