// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package approval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swarmforge/internal/orcherr"
	"swarmforge/pkg/types"
)

func TestCreateGateSucceeds(t *testing.T) {
	m := New()
	gateID, err := m.CreateGate(context.Background(), "proj-1", "architecture_design", types.PhaseResult{Status: "completed"})
	require.NoError(t, err)
	assert.NotEmpty(t, gateID)

	gate, ok := m.GetPending(context.Background(), "proj-1")
	require.True(t, ok)
	assert.Equal(t, gateID, gate.GateID)
	assert.Equal(t, types.GatePending, gate.Status)
}

func TestCreateGateFailsWhenPendingExists(t *testing.T) {
	m := New()
	ctx := context.Background()
	_, err := m.CreateGate(ctx, "proj-1", "architecture_design", types.PhaseResult{})
	require.NoError(t, err)

	_, err = m.CreateGate(ctx, "proj-1", "code_generation", types.PhaseResult{})
	require.Error(t, err)
	var valErr *orcherr.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestApproveResolvesPendingGate(t *testing.T) {
	m := New()
	ctx := context.Background()
	_, err := m.CreateGate(ctx, "proj-1", "architecture_design", types.PhaseResult{})
	require.NoError(t, err)

	ok, err := m.Approve(ctx, "proj-1", "looks good")
	require.NoError(t, err)
	assert.True(t, ok)

	_, stillPending := m.GetPending(ctx, "proj-1")
	assert.False(t, stillPending)
}

func TestApproveWithNoPendingGateReturnsFalse(t *testing.T) {
	m := New()
	ok, err := m.Approve(context.Background(), "proj-1", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRejectRequiresFeedback(t *testing.T) {
	m := New()
	ctx := context.Background()
	_, err := m.CreateGate(ctx, "proj-1", "architecture_design", types.PhaseResult{})
	require.NoError(t, err)

	_, err = m.Reject(ctx, "proj-1", "")
	require.Error(t, err)

	ok, err := m.Reject(ctx, "proj-1", "missing the database schema section")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPreviewCapsKeyPointsAtFive(t *testing.T) {
	m := New()
	artifact := types.PhaseResult{
		Status: "completed",
		AgentResults: map[string]types.AgentOutput{
			"architecture_designer": types.NewSuccessOutput(nil, nil, []string{
				"chose postgres for storage", "chose grpc for transport", "chose redis for caching",
			}),
			"risk_analyst": types.NewSuccessOutput(nil, nil, []string{
				"flagged single-region deploy", "flagged missing backup policy", "flagged no rate limiting",
			}),
		},
	}
	gate := &types.ApprovalGate{Phase: "architecture_design", Artifact: artifact}

	preview := m.Preview(gate)

	assert.Equal(t, "architecture_design", preview["type"])
	assert.Contains(t, preview["summary"], "architecture_design")
	keyPoints, ok := preview["key_points"].([]string)
	require.True(t, ok)
	assert.Len(t, keyPoints, 5)
}

func TestPreviewWithFewerThanFiveMessages(t *testing.T) {
	m := New()
	artifact := types.PhaseResult{
		Status: "completed",
		AgentResults: map[string]types.AgentOutput{
			"summary_writer": types.NewSuccessOutput(nil, nil, []string{"wrote the project summary"}),
		},
	}
	gate := &types.ApprovalGate{Phase: "summary", Artifact: artifact}

	preview := m.Preview(gate)

	keyPoints, ok := preview["key_points"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"wrote the project summary"}, keyPoints)
}

func TestCreateGateAllowedAgainAfterResolution(t *testing.T) {
	m := New()
	ctx := context.Background()
	_, err := m.CreateGate(ctx, "proj-1", "architecture_design", types.PhaseResult{})
	require.NoError(t, err)
	_, err = m.Approve(ctx, "proj-1", "")
	require.NoError(t, err)

	_, err = m.CreateGate(ctx, "proj-1", "code_generation", types.PhaseResult{})
	require.NoError(t, err)
}
