// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package orcherr defines the orchestrator's error taxonomy.
//
// Each kind is a distinct Go type so callers can distinguish them with
// errors.As instead of string matching, while still reading naturally
// through fmt.Errorf("...: %w", err) wrapping.
package orcherr

import "fmt"

// ValidationError is bad input at the Engine or Runner boundary.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}

// NewValidationError builds a ValidationError.
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// NotFoundError is an unknown project_id passed to the Engine's
// ResumeWorkflow or CancelProject. GetProgress does not return it: it
// reports an unknown project as (nil, nil).
type NotFoundError struct {
	ProjectID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("project not found: %s", e.ProjectID)
}

// NewNotFoundError builds a NotFoundError.
func NewNotFoundError(projectID string) error {
	return &NotFoundError{ProjectID: projectID}
}

// CycleError means the dependency graph restricted to the activated set
// contains a cycle.
type CycleError struct {
	Detail string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected in dependency graph: %s", e.Detail)
}

// NewCycleError builds a CycleError.
func NewCycleError(detail string) error {
	return &CycleError{Detail: detail}
}

// PhaseStructuralError is an unknown execution model or missing required
// phase metadata. It is fatal to the workflow, unlike a per-agent
// AgentFailure.
type PhaseStructuralError struct {
	Phase  string
	Reason string
}

func (e *PhaseStructuralError) Error() string {
	return fmt.Sprintf("phase %q structural error: %s", e.Phase, e.Reason)
}

// NewPhaseStructuralError builds a PhaseStructuralError.
func NewPhaseStructuralError(phase, reason string) error {
	return &PhaseStructuralError{Phase: phase, Reason: reason}
}
