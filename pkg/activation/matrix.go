// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package activation implements the project-type x phase-name
// activation matrix: which architecture/development agents are
// eligible for a phase, narrowed by the kind of project being
// bootstrapped.
package activation

// ProjectType is the input_data.project_type / project_type_hint value
// driving which row of the matrix applies.
type ProjectType string

const (
	ProjectWebApp       ProjectType = "web-app"
	ProjectAPI          ProjectType = "api"
	ProjectMLProject    ProjectType = "ml-project"
	ProjectAIApp        ProjectType = "ai-app"
	ProjectFullPlatform ProjectType = "full-platform"
)

// DefaultProjectType is used when input_data names no project type, or
// an unrecognized one.
const DefaultProjectType = ProjectWebApp

// matrix is the static project-type x phase-name activation table,
// ported verbatim from agent-orchestration-v2.yml's ACTIVATION_MATRIX.
var matrix = map[ProjectType]map[string][]string{
	ProjectWebApp: {
		"architecture_design": {"fullstack_architect", "backend_architect", "frontend_architect", "database_architect", "infrastructure_architect", "security_architect"},
		"code_generation":     {"fullstack_developer", "backend_developer", "frontend_developer"},
	},
	ProjectAPI: {
		"architecture_design": {"backend_architect", "database_architect", "infrastructure_architect", "security_architect"},
		"code_generation":     {"backend_developer"},
	},
	ProjectMLProject: {
		"architecture_design": {"fullstack_architect", "backend_architect", "database_architect", "infrastructure_architect", "ml_architect"},
		"code_generation":     {"backend_developer", "aiml_developer"},
	},
	ProjectAIApp: {
		"architecture_design": {"fullstack_architect", "backend_architect", "frontend_architect", "database_architect", "infrastructure_architect", "security_architect", "ai_architect"},
		"code_generation":     {"fullstack_developer", "aiml_developer"},
	},
	ProjectFullPlatform: {
		"architecture_design": {"fullstack_architect", "backend_architect", "frontend_architect", "database_architect", "infrastructure_architect", "security_architect", "ml_architect", "ai_architect"},
		"code_generation":     {"fullstack_developer", "backend_developer", "frontend_developer", "aiml_developer"},
	},
}

// Filter narrows agents to the subset the activation matrix allows for
// (projectType, phaseName). An unrecognized projectType falls back to
// DefaultProjectType. A phaseName absent from that project type's row
// activates no agents, matching the original's empty-list default.
func Filter(agents []string, projectType ProjectType, phaseName string) []string {
	row, ok := matrix[projectType]
	if !ok {
		row = matrix[DefaultProjectType]
	}
	activated := row[phaseName]
	if len(activated) == 0 {
		return nil
	}

	allowed := make(map[string]bool, len(activated))
	for _, a := range activated {
		allowed[a] = true
	}

	var filtered []string
	for _, a := range agents {
		if allowed[a] {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
