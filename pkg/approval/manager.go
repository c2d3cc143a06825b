// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package approval implements the Approval Manager (C8): it creates,
// resolves, and queries the single pending approval gate tied to a
// project at a time.
package approval

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"swarmforge/internal/orcherr"
	"swarmforge/pkg/types"
)

// Manager creates and resolves ApprovalGates, serializing
// create_gate/resolve per project the way spec.md §5's shared-resource
// policy requires.
type Manager struct {
	mu      sync.Mutex
	gates   map[string]*types.ApprovalGate // gate_id -> gate
	pending map[string]string              // project_id -> pending gate_id
}

// New builds an empty Manager.
func New() *Manager {
	return &Manager{
		gates:   make(map[string]*types.ApprovalGate),
		pending: make(map[string]string),
	}
}

// CreateGate opens a pending gate for projectID at phase, carrying
// artifact as the result awaiting review. It fails if projectID
// already has a pending gate.
func (m *Manager) CreateGate(_ context.Context, projectID, phase string, artifact types.PhaseResult) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.pending[projectID]; ok {
		return "", orcherr.NewValidationError(fmt.Sprintf("project %s already has a pending approval gate", projectID))
	}

	gateID := uuid.NewString()
	m.gates[gateID] = &types.ApprovalGate{
		GateID:    gateID,
		ProjectID: projectID,
		Phase:     phase,
		Artifact:  artifact,
		Status:    types.GatePending,
		CreatedAt: time.Now(),
	}
	m.pending[projectID] = gateID

	return gateID, nil
}

// Approve resolves projectID's pending gate to approved. It returns
// false, with no error, if no gate is pending.
func (m *Manager) Approve(_ context.Context, projectID string, feedback string) (bool, error) {
	return m.resolve(projectID, types.GateApproved, feedback)
}

// Reject resolves projectID's pending gate to rejected. feedback is
// mandatory here; the minimum-length requirement from spec.md §6 is
// left to the caller (cmd/orchestrator checks it before calling Reject).
func (m *Manager) Reject(_ context.Context, projectID string, feedback string) (bool, error) {
	if feedback == "" {
		return false, orcherr.NewValidationError("rejection feedback is mandatory")
	}
	return m.resolve(projectID, types.GateRejected, feedback)
}

func (m *Manager) resolve(projectID string, status types.GateStatus, feedback string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gateID, ok := m.pending[projectID]
	if !ok {
		return false, nil
	}

	gate := m.gates[gateID]
	gate.Status = status
	gate.Feedback = feedback
	now := time.Now()
	gate.ResolvedAt = &now

	delete(m.pending, projectID)
	return true, nil
}

// GetPending returns projectID's pending gate, or (nil, false) if none
// exists.
func (m *Manager) GetPending(_ context.Context, projectID string) (*types.ApprovalGate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gateID, ok := m.pending[projectID]
	if !ok {
		return nil, false
	}

	gate := *m.gates[gateID]
	return &gate, true
}

// Preview trims gate's artifact down to a small summary for a
// notification surface: the gated phase, its status, and up to five
// key points pulled from its agents' output messages, capped the same
// way approval_manager.py's _create_preview caps key_points.
func (m *Manager) Preview(gate *types.ApprovalGate) map[string]any {
	const maxKeyPoints = 5

	agentIDs := make([]string, 0, len(gate.Artifact.AgentResults))
	for agentID := range gate.Artifact.AgentResults {
		agentIDs = append(agentIDs, agentID)
	}
	sort.Strings(agentIDs)

	keyPoints := make([]string, 0, maxKeyPoints)
	for _, agentID := range agentIDs {
		for _, msg := range gate.Artifact.AgentResults[agentID].Messages {
			if len(keyPoints) == maxKeyPoints {
				break
			}
			keyPoints = append(keyPoints, msg)
		}
		if len(keyPoints) == maxKeyPoints {
			break
		}
	}

	return map[string]any{
		"type":       gate.Phase,
		"summary":    fmt.Sprintf("phase %q %s", gate.Phase, gate.Artifact.Status),
		"key_points": keyPoints,
	}
}
