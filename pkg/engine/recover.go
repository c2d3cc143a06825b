// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package engine

import (
	"context"
	"fmt"
	"log/slog"

	"swarmforge/pkg/types"
)

// RecoverInterrupted enumerates every context left in status=running by
// a prior crash and rolls each back to the most recent safe
// resumption point. It never re-executes a phase automatically: it
// only restores a state — awaiting_approval or pending — from which a
// human or external caller can deliberately resume. It returns the
// project ids it touched.
func (e *Engine) RecoverInterrupted(ctx context.Context) ([]string, error) {
	interrupted, err := e.store.ListByStatus(ctx, types.StatusRunning)
	if err != nil {
		return nil, fmt.Errorf("listing running contexts: %w", err)
	}

	recovered := make([]string, 0, len(interrupted))
	for _, execCtx := range interrupted {
		ec := execCtx
		e.recoverOne(ctx, &ec)
		recovered = append(recovered, ec.ProjectID)
	}
	return recovered, nil
}

// recoverOne applies the three-way rollback rule: before any
// artifact exists, reset to the initial input; between an artifact
// and its approval (or past it, mid a later phase), re-enter
// awaiting_approval at the most recent completed approval-required
// phase; with no such phase, reset to initial.
func (e *Engine) recoverOne(ctx context.Context, execCtx *types.ExecutionContext) {
	lastGate, ok := lastApprovalCheckpoint(execCtx)
	if !ok {
		execCtx.CurrentPhase = ""
		execCtx.CompletedPhases = nil
		execCtx.PhaseResults = make(map[string]types.PhaseResult)
		execCtx.Status = types.StatusPending
		if err := e.store.Save(ctx, *execCtx); err != nil {
			slog.Error("recovery checkpoint failed", "project_id", execCtx.ProjectID, "error", err)
		}
		return
	}

	result := execCtx.PhaseResults[lastGate.Name]
	if _, err := e.approvals.CreateGate(ctx, execCtx.ProjectID, lastGate.Name, result); err != nil {
		slog.Error("recovery gate re-creation failed", "project_id", execCtx.ProjectID, "phase", lastGate.Name, "error", err)
		return
	}

	execCtx.CurrentPhase = lastGate.Name
	execCtx.Status = types.StatusAwaitingApproval
	if err := e.store.Save(ctx, *execCtx); err != nil {
		slog.Error("recovery checkpoint failed", "project_id", execCtx.ProjectID, "error", err)
	}
}

// lastApprovalCheckpoint returns the latest phase, in definition
// order, that is both marked requires_approval and has a recorded
// result — the most recent point a human gate was meant to guard.
func lastApprovalCheckpoint(execCtx *types.ExecutionContext) (types.Phase, bool) {
	var found types.Phase
	ok := false

	for _, p := range execCtx.WorkflowDefinition.Phases {
		if !p.RequiresApproval {
			continue
		}
		if !execCtx.IsPhaseCompleted(p.Name) {
			continue
		}
		if _, hasResult := execCtx.PhaseResults[p.Name]; !hasResult {
			continue
		}
		found = p
		ok = true
	}

	return found, ok
}
