// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package engine implements the in-process Orchestration Engine (C9):
// it owns the per-project phase loop, suspends at approval gates,
// resumes past completed phases, and recovers interrupted workflows at
// startup.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"swarmforge/internal/orcherr"
	"swarmforge/pkg/approval"
	"swarmforge/pkg/domain"
	"swarmforge/pkg/phase"
	"swarmforge/pkg/state"
	"swarmforge/pkg/types"
	"swarmforge/pkg/workflow"
)

// Engine coordinates the phase loop for every project, checkpointing
// through store and suspending through approvals at phase boundaries
// marked requires_approval.
type Engine struct {
	store     state.Store
	approvals *approval.Manager
	phases    *phase.Executor
	detector  *domain.Detector

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// New builds an Engine over its collaborators.
func New(store state.Store, approvals *approval.Manager, phases *phase.Executor, detector *domain.Detector) *Engine {
	return &Engine{
		store:     store,
		approvals: approvals,
		phases:    phases,
		detector:  detector,
		cancels:   make(map[string]context.CancelFunc),
	}
}

// StartWorkflow instantiates the built-in definition for mode, runs the
// Domain Detector for discovery-mode input, checkpoints the fresh
// context, and spawns the phase loop as an independent goroutine. It
// returns immediately; the caller observes progress through Load or
// GetProgress.
func (e *Engine) StartWorkflow(ctx context.Context, projectID string, mode types.Mode, inputData map[string]any) (*types.ExecutionContext, error) {
	def, ok := workflow.ByMode(mode)
	if !ok {
		return nil, orcherr.NewValidationError(fmt.Sprintf("unknown workflow mode %q", mode))
	}

	var experts []types.ActivatedExpert
	if mode == types.ModeDiscovery {
		overview, _ := inputData["project_overview"].(string)
		features, _ := inputData["key_features"].(string)
		constraints, _ := inputData["constraints"].(string)
		for _, ex := range e.detector.Detect(overview, features, constraints) {
			experts = append(experts, types.ActivatedExpert{Domain: ex.Domain, Confidence: ex.Confidence})
		}
		slog.Info("domain experts detected", "project_id", projectID, "count", len(experts))
	}

	execCtx := types.ExecutionContext{
		ProjectID:          projectID,
		Mode:               mode,
		WorkflowDefinition: def,
		InputData:          inputData,
		Status:             types.StatusRunning,
		ActivatedExperts:   experts,
		PhaseResults:       make(map[string]types.PhaseResult),
		StartedAt:          time.Now(),
	}

	if err := e.store.Save(ctx, execCtx); err != nil {
		return nil, fmt.Errorf("checkpointing new workflow: %w", err)
	}

	e.spawn(projectID, &execCtx)

	return &execCtx, nil
}

// ResumeWorkflow reloads projectID's context and, unless it is already
// completed, spawns the phase loop, which skips every completed_phases
// entry and continues from the next phase. The Engine does not inspect
// or verify approval gate status — resolving the gate before resuming
// is the caller's responsibility.
func (e *Engine) ResumeWorkflow(ctx context.Context, projectID string) (*types.ExecutionContext, error) {
	execCtx, err := e.store.Load(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading context: %w", err)
	}
	if execCtx == nil {
		return nil, orcherr.NewNotFoundError(projectID)
	}

	if execCtx.Status == types.StatusCompleted {
		return execCtx, nil
	}

	execCtx.Status = types.StatusRunning
	if err := e.store.Save(ctx, *execCtx); err != nil {
		return nil, fmt.Errorf("checkpointing resume: %w", err)
	}

	e.spawn(projectID, execCtx)

	return execCtx, nil
}

// GetProgress returns a snapshot of projectID's context, or (nil, nil)
// if no such project has been started.
func (e *Engine) GetProgress(ctx context.Context, projectID string) (*types.ExecutionContext, error) {
	return e.store.Load(ctx, projectID)
}

// Approvals exposes the Approval Manager so a caller can resolve a
// pending gate (Approve/Reject) before calling ResumeWorkflow. The
// Engine deliberately keeps gate resolution and workflow resumption as
// two separate steps rather than merging them into one method.
func (e *Engine) Approvals() *approval.Manager {
	return e.approvals
}

// CancelProject transitions projectID to cancelled at the next
// phase-loop observation point. Any agent attempt already in flight
// completes on its own; only the phase loop's between-phase checkpoint
// observes the cancellation.
func (e *Engine) CancelProject(ctx context.Context, projectID string) (bool, error) {
	execCtx, err := e.store.Load(ctx, projectID)
	if err != nil {
		return false, fmt.Errorf("loading context: %w", err)
	}
	if execCtx == nil {
		return false, orcherr.NewNotFoundError(projectID)
	}
	if isTerminal(execCtx.Status) {
		return false, nil
	}

	e.mu.Lock()
	if cancel, ok := e.cancels[projectID]; ok {
		cancel()
		delete(e.cancels, projectID)
	}
	e.mu.Unlock()

	execCtx.Status = types.StatusCancelled
	if err := e.store.Save(ctx, *execCtx); err != nil {
		return false, fmt.Errorf("checkpointing cancellation: %w", err)
	}
	return true, nil
}

func isTerminal(status types.Status) bool {
	switch status {
	case types.StatusCompleted, types.StatusFailed, types.StatusCancelled:
		return true
	default:
		return false
	}
}

// spawn starts the phase loop for execCtx under a cancellable
// background context keyed by projectID, replacing any loop already
// registered for it.
func (e *Engine) spawn(projectID string, execCtx *types.ExecutionContext) {
	loopCtx, cancel := context.WithCancel(context.Background())

	e.mu.Lock()
	e.cancels[projectID] = cancel
	e.mu.Unlock()

	go e.runPhaseLoop(loopCtx, execCtx)
}

// runPhaseLoop executes every not-yet-completed phase in order,
// checkpointing before each phase starts and after it settles.
// Per-agent failures never reach here as Go errors — only a
// structural error from the Phase Executor does, and that fails the
// whole workflow, mirroring the source's unhandled-exception path.
func (e *Engine) runPhaseLoop(loopCtx context.Context, execCtx *types.ExecutionContext) {
	defer func() {
		e.mu.Lock()
		delete(e.cancels, execCtx.ProjectID)
		e.mu.Unlock()

		if r := recover(); r != nil {
			execCtx.Status = types.StatusFailed
			execCtx.Error = fmt.Sprintf("panic: %v", r)
			if err := e.store.Save(context.Background(), *execCtx); err != nil {
				slog.Error("checkpoint after panic failed", "project_id", execCtx.ProjectID, "error", err)
			}
			slog.Error("workflow failed", "project_id", execCtx.ProjectID, "panic", r)
		}
	}()

	saveCtx := context.Background()

	for _, p := range execCtx.WorkflowDefinition.Phases {
		select {
		case <-loopCtx.Done():
			execCtx.Status = types.StatusCancelled
			_ = e.store.Save(saveCtx, *execCtx)
			return
		default:
		}

		if execCtx.IsPhaseCompleted(p.Name) {
			continue
		}

		execCtx.CurrentPhase = p.Name
		if err := e.store.Save(saveCtx, *execCtx); err != nil {
			slog.Error("checkpoint before phase failed", "project_id", execCtx.ProjectID, "phase", p.Name, "error", err)
			return
		}

		slog.Info("executing phase", "project_id", execCtx.ProjectID, "phase", p.Name)

		result, err := e.phases.Execute(saveCtx, p, execCtx)
		if err != nil {
			execCtx.Status = types.StatusFailed
			execCtx.Error = err.Error()
			if saveErr := e.store.Save(saveCtx, *execCtx); saveErr != nil {
				slog.Error("checkpoint after failure failed", "project_id", execCtx.ProjectID, "error", saveErr)
			}
			slog.Error("workflow failed", "project_id", execCtx.ProjectID, "phase", p.Name, "error", err)
			return
		}

		if execCtx.PhaseResults == nil {
			execCtx.PhaseResults = make(map[string]types.PhaseResult)
		}
		execCtx.PhaseResults[p.Name] = result
		execCtx.CompletedPhases = append(execCtx.CompletedPhases, p.Name)
		if err := e.store.Save(saveCtx, *execCtx); err != nil {
			slog.Error("checkpoint after phase failed", "project_id", execCtx.ProjectID, "phase", p.Name, "error", err)
			return
		}

		if p.RequiresApproval {
			slog.Info("approval required", "project_id", execCtx.ProjectID, "phase", p.Name)

			if _, err := e.approvals.CreateGate(saveCtx, execCtx.ProjectID, p.Name, result); err != nil {
				execCtx.Status = types.StatusFailed
				execCtx.Error = err.Error()
				_ = e.store.Save(saveCtx, *execCtx)
				return
			}

			execCtx.Status = types.StatusAwaitingApproval
			_ = e.store.Save(saveCtx, *execCtx)
			return
		}
	}

	execCtx.Status = types.StatusCompleted
	now := time.Now()
	execCtx.CompletedAt = &now
	if err := e.store.Save(saveCtx, *execCtx); err != nil {
		slog.Error("checkpoint on completion failed", "project_id", execCtx.ProjectID, "error", err)
		return
	}

	slog.Info("workflow completed", "project_id", execCtx.ProjectID, "duration", now.Sub(execCtx.StartedAt))
}
