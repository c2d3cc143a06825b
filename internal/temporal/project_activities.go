// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package temporal

import (
	"context"

	"swarmforge/pkg/phase"
	"swarmforge/pkg/types"
)

// ProjectActivities exposes the Phase Executor as a Temporal activity so
// ProjectWorkflow can drive it through durable activity history instead
// of an in-process function call. The zero value is only ever used as a
// method-expression reference from workflow code (see
// workflow.ExecuteActivity in project_workflow.go); the worker process
// registers a ProjectActivities built by NewProjectActivities, which
// carries the real, live Phase Executor.
type ProjectActivities struct {
	Phases *phase.Executor
}

// NewProjectActivities binds a ProjectActivities to a live Phase
// Executor for worker-side registration.
func NewProjectActivities(phases *phase.Executor) *ProjectActivities {
	return &ProjectActivities{Phases: phases}
}

// ExecutePhase runs one phase against a snapshot of the execution
// context and returns its aggregated result, mirroring
// phase.Executor.Execute's own contract: only a structural error (never
// a per-agent failure) surfaces here, which Temporal's retry policy then
// governs the same way it governs any other activity failure.
func (a *ProjectActivities) ExecutePhase(ctx context.Context, p types.Phase, execCtx types.ExecutionContext) (types.PhaseResult, error) {
	return a.Phases.Execute(ctx, p, &execCtx)
}
