// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package temporal

import (
	"fmt"
	"time"

	sdktemporal "go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	wfdef "swarmforge/pkg/workflow"

	"swarmforge/pkg/types"
)

// ProjectTaskQueue is the task queue ProjectWorkflow and its activities
// are registered on.
const ProjectTaskQueue = "swarmforge-project-task-queue"

// ApprovalSignalName is the signal channel ProjectWorkflow blocks on at
// every requires_approval phase.
const ApprovalSignalName = "approval"

// ProgressQueryName is the query handler ProjectWorkflow exposes for
// external progress snapshots.
const ProgressQueryName = "progress"

// ApprovalSignal is sent on ApprovalSignalName to resolve the pending
// gate ProjectWorkflow is blocked on.
type ApprovalSignal struct {
	Approved bool
	Feedback string
}

// ProjectWorkflowInput starts a ProjectWorkflow execution.
type ProjectWorkflowInput struct {
	ProjectID string
	Mode      types.Mode
	InputData map[string]any
}

// ProjectWorkflow is the durable, restart-surviving counterpart to
// pkg/engine.Engine's in-process phase loop. Instead of checkpointing to
// a Store after every phase, it relies on Temporal's own event history:
// a crashed worker simply replays the workflow from history when a new
// worker picks it back up, which is why this package has no equivalent
// of pkg/engine.RecoverInterrupted — an open workflow execution already
// is the durable record of "running", the same thing
// StateManager.list_by_status("running") exists to answer for the
// in-process Engine.
func ProjectWorkflow(ctx workflow.Context, input ProjectWorkflowInput) (types.ExecutionContext, error) {
	logger := workflow.GetLogger(ctx)

	def, ok := wfdef.ByMode(input.Mode)
	if !ok {
		return types.ExecutionContext{}, fmt.Errorf("unknown workflow mode %q", input.Mode)
	}

	execCtx := types.ExecutionContext{
		ProjectID:          input.ProjectID,
		Mode:               input.Mode,
		WorkflowDefinition: def,
		InputData:          input.InputData,
		Status:             types.StatusRunning,
		PhaseResults:       make(map[string]types.PhaseResult),
	}

	if err := workflow.SetQueryHandler(ctx, ProgressQueryName, func() (types.ExecutionContext, error) {
		return execCtx, nil
	}); err != nil {
		return execCtx, fmt.Errorf("setting progress query handler: %w", err)
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &sdktemporal.RetryPolicy{
			InitialInterval:    1 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	for _, p := range def.Phases {
		if execCtx.IsPhaseCompleted(p.Name) {
			continue
		}

		execCtx.CurrentPhase = p.Name
		logger.Info("executing phase", "project_id", execCtx.ProjectID, "phase", p.Name)

		var result types.PhaseResult
		if err := workflow.ExecuteActivity(ctx, (&ProjectActivities{}).ExecutePhase, p, execCtx).Get(ctx, &result); err != nil {
			execCtx.Status = types.StatusFailed
			execCtx.Error = err.Error()
			return execCtx, fmt.Errorf("phase %s: %w", p.Name, err)
		}

		execCtx.PhaseResults[p.Name] = result
		execCtx.CompletedPhases = append(execCtx.CompletedPhases, p.Name)

		if p.RequiresApproval {
			execCtx.Status = types.StatusAwaitingApproval
			logger.Info("awaiting approval signal", "project_id", execCtx.ProjectID, "phase", p.Name)

			// A rejection leaves status at awaiting_approval rather than
			// failing the workflow: the rejection feedback is recorded
			// in execCtx.Error and this phase waits on the same signal
			// channel again until an approval arrives, mirroring the in-process Engine's
			// resume-after-reject contract.
			for {
				var signal ApprovalSignal
				workflow.GetSignalChannel(ctx, ApprovalSignalName).Receive(ctx, &signal)

				if !signal.Approved {
					execCtx.Error = fmt.Sprintf("phase %s rejected: %s", p.Name, signal.Feedback)
					logger.Info("phase rejected, awaiting a fresh approval signal", "project_id", execCtx.ProjectID, "phase", p.Name, "feedback", signal.Feedback)
					continue
				}

				logger.Info("phase approved", "project_id", execCtx.ProjectID, "phase", p.Name)
				execCtx.Error = ""
				break
			}

			execCtx.Status = types.StatusRunning
		}
	}

	execCtx.Status = types.StatusCompleted
	now := workflow.Now(ctx)
	execCtx.CompletedAt = &now
	logger.Info("workflow completed", "project_id", execCtx.ProjectID)
	return execCtx, nil
}
