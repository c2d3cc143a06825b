// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"swarmforge/pkg/types"
)

func TestRunRejectsInvalidInput(t *testing.T) {
	a := NewNativeAgent("noop", func(ctx context.Context, in types.AgentInput) (types.AgentOutput, error) {
		t.Fatal("execute should not run for invalid input")
		return types.AgentOutput{}, nil
	})

	out := Run(context.Background(), a, types.AgentInput{})
	assert.Equal(t, types.AgentFailure, out.Status)
}

func TestRunWrapsExecutionError(t *testing.T) {
	a := NewNativeAgent("boom", func(ctx context.Context, in types.AgentInput) (types.AgentOutput, error) {
		return types.AgentOutput{}, errors.New("kaboom")
	})

	out := Run(context.Background(), a, types.AgentInput{ProjectID: "p1"})
	assert.Equal(t, types.AgentFailure, out.Status)
	assert.Contains(t, out.Errors, "kaboom")
}

func TestRunRecordsDuration(t *testing.T) {
	a := NewNativeAgent("ok", func(ctx context.Context, in types.AgentInput) (types.AgentOutput, error) {
		return types.NewSuccessOutput(map[string]any{"k": "v"}, nil, nil), nil
	})

	out := Run(context.Background(), a, types.AgentInput{ProjectID: "p1"})
	assert.Equal(t, types.AgentSuccess, out.Status)
	assert.GreaterOrEqual(t, out.DurationMs, int64(0))
}

func TestRunFlagsBadStatus(t *testing.T) {
	a := NewNativeAgent("weird", func(ctx context.Context, in types.AgentInput) (types.AgentOutput, error) {
		return types.AgentOutput{Status: types.AgentStatus("bogus")}, nil
	})

	out := Run(context.Background(), a, types.AgentInput{ProjectID: "p1"})
	assert.Contains(t, out.Errors, "output validation failed: unknown status")
}
