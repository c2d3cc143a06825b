// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package agent implements the Agent Registry (C1): it loads agent
// definitions from markdown-with-frontmatter files, pairs them with
// either a native Go implementation or an LLM-backed adapter, and
// hands out cached instances by agent id.
package agent

import (
	"context"

	"swarmforge/pkg/types"
)

// Category buckets agents for activation-matrix and registry queries.
type Category string

const (
	CategoryArchitecture  Category = "architecture"
	CategoryDevelopment   Category = "development"
	CategorySupport       Category = "support"
	CategoryDesign        Category = "design"
	CategoryDomainExpert  Category = "domain_expert"
	CategoryScaffolding   Category = "scaffolding"
)

// Agent is the common contract every registered agent implements,
// whether it is backed by a Go function or an LLM prompt.
type Agent interface {
	// ID is the stable identifier used in WorkflowDefinition.Phase.Agents
	// and as the activation matrix key.
	ID() string

	// Execute runs the agent's logic and returns its result. Execute
	// itself never panics on business failure: a failed agent returns a
	// types.AgentOutput with Status == types.AgentFailure rather than an
	// error, matching the contract Run enforces.
	Execute(ctx context.Context, input types.AgentInput) (types.AgentOutput, error)
}

// ValidateInput mirrors the registry's base-agent precondition: an
// input is runnable only if it names a project.
func ValidateInput(input types.AgentInput) bool {
	return input.ProjectID != ""
}

// ValidateOutput mirrors the registry's base-agent postcondition: an
// output must land in one of the three terminal statuses.
func ValidateOutput(output types.AgentOutput) bool {
	switch output.Status {
	case types.AgentSuccess, types.AgentFailure, types.AgentNeedsInput:
		return true
	default:
		return false
	}
}
