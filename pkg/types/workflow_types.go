// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package types provides shared workflow types used across Swarmforge.
//
// This package contains core workflow types that are shared between
// different packages to break circular dependencies. Types here should be:
// - Pure data structures (no behavior)
// - Serializable for Temporal workflows
// - Stable and version-controlled
//
// Design principles:
// - Domain-centric: Types represent workflow domain concepts
// - Dependency-free: No imports from internal packages
// - Composable: Types can be combined and extended
package types

import "time"

// ============================================================================
// WORKFLOW / PHASE DEFINITION TYPES
// ============================================================================

// ExecutionModel selects how a Phase's agents are dispatched.
type ExecutionModel string

const (
	ExecutionSequential      ExecutionModel = "sequential"
	ExecutionParallel        ExecutionModel = "parallel"
	ExecutionDependencyGraph ExecutionModel = "dependency_graph"
)

// Mode selects which built-in workflow definition a project runs under.
type Mode string

const (
	ModeDiscovery Mode = "discovery"
	ModeDirect    Mode = "direct"
)

// ActivationRules controls how a Phase narrows its eligible agent set.
type ActivationRules struct {
	// UseActivationMatrix, when true, filters Phase.Agents through the
	// project-type x phase-name activation matrix.
	UseActivationMatrix bool
}

// Phase is one ordered unit of a WorkflowDefinition.
type Phase struct {
	Name             string
	DisplayName      string
	Description      string
	RequiresApproval bool
	ExecutionModel   ExecutionModel
	Agents           []string
	ActivationRules  *ActivationRules
}

// WorkflowDefinition is a static ordered list of Phases.
type WorkflowDefinition struct {
	Name   string
	Mode   Mode
	Phases []Phase
}

// GetPhase returns the named phase, or false if it does not exist.
func (w WorkflowDefinition) GetPhase(name string) (Phase, bool) {
	for _, p := range w.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return Phase{}, false
}

// ============================================================================
// AGENT INVOCATION I/O
// ============================================================================

// AgentStatus is the terminal outcome of one agent invocation.
type AgentStatus string

const (
	AgentSuccess    AgentStatus = "success"
	AgentFailure    AgentStatus = "failure"
	AgentNeedsInput AgentStatus = "needs_input"
)

// TokenUsage records LLM token accounting for one agent call, when known.
type TokenUsage struct {
	Input  int
	Output int
}

// AgentInput is passed to a single agent invocation.
type AgentInput struct {
	ProjectID    string
	Context      map[string]any
	Dependencies map[string]AgentOutput
}

// GetDependency returns a prior agent's output, if present.
func (a AgentInput) GetDependency(agentID string) (AgentOutput, bool) {
	out, ok := a.Dependencies[agentID]
	return out, ok
}

// AgentOutput is returned by a single agent invocation.
type AgentOutput struct {
	Status     AgentStatus
	Output     map[string]any
	Artifacts  []map[string]any
	Messages   []string
	Errors     []string
	DurationMs int64
	TokenUsage *TokenUsage
}

// NewSuccessOutput builds a success AgentOutput.
func NewSuccessOutput(output map[string]any, artifacts []map[string]any, messages []string) AgentOutput {
	return AgentOutput{
		Status:    AgentSuccess,
		Output:    output,
		Artifacts: artifacts,
		Messages:  messages,
	}
}

// NewFailureOutput builds a failure AgentOutput.
func NewFailureOutput(errs []string) AgentOutput {
	return AgentOutput{
		Status: AgentFailure,
		Output: map[string]any{},
		Errors: errs,
	}
}

// ============================================================================
// PROJECT / EXECUTION CONTEXT
// ============================================================================

// Status is the lifecycle state of a project's workflow run.
type Status string

const (
	StatusPending          Status = "pending"
	StatusRunning          Status = "running"
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusCompleted        Status = "completed"
	StatusFailed           Status = "failed"
	StatusCancelled        Status = "cancelled"
)

// ActivatedExpert is one domain match produced by the domain detector.
type ActivatedExpert struct {
	Domain     string
	Confidence float64
}

// PhaseResult is the aggregated outcome of one executed phase.
type PhaseResult struct {
	Status       string
	AgentResults map[string]AgentOutput
	Errors       []string
	Reason       string
}

// ExecutionContext is the persisted, mutable state of one workflow run.
type ExecutionContext struct {
	ProjectID          string
	Mode               Mode
	WorkflowDefinition WorkflowDefinition
	InputData          map[string]any
	Status             Status
	CurrentPhase       string
	CompletedPhases    []string
	PhaseResults       map[string]PhaseResult
	ActivatedExperts   []ActivatedExpert
	StartedAt          time.Time
	CompletedAt        *time.Time
	Error              string
}

// IsPhaseCompleted reports whether the named phase is in CompletedPhases.
func (c ExecutionContext) IsPhaseCompleted(name string) bool {
	for _, p := range c.CompletedPhases {
		if p == name {
			return true
		}
	}
	return false
}

// ============================================================================
// APPROVAL GATE
// ============================================================================

// GateStatus is the lifecycle state of an ApprovalGate.
type GateStatus string

const (
	GatePending  GateStatus = "pending"
	GateApproved GateStatus = "approved"
	GateRejected GateStatus = "rejected"
)

// ApprovalGate suspends a workflow between two phases pending external
// resolution.
type ApprovalGate struct {
	GateID     string
	ProjectID  string
	Phase      string
	Artifact   PhaseResult
	Status     GateStatus
	Feedback   string
	CreatedAt  time.Time
	ResolvedAt *time.Time
}
