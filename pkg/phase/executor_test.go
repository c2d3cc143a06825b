// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package phase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swarmforge/internal/orcherr"
	"swarmforge/pkg/agent"
	"swarmforge/pkg/dag"
	"swarmforge/pkg/parallel"
	"swarmforge/pkg/runner"
	"swarmforge/pkg/types"
)

func newTestExecutor(t *testing.T, agents map[string]agent.ExecuteFunc) *Executor {
	t.Helper()
	reg, err := agent.NewRegistry("")
	require.NoError(t, err)
	for id, fn := range agents {
		id, fn := id, fn
		reg.RegisterFactory(id, func(def *agent.Definition) agent.Agent {
			return agent.NewNativeAgent(id, fn)
		})
	}
	return New(reg, runner.New(), dag.NewResolver(), parallel.New(), runner.Options{})
}

func execCtx(input map[string]any) *types.ExecutionContext {
	return &types.ExecutionContext{ProjectID: "proj-1", InputData: input}
}

func TestExecuteSkipsWhenNoActivatedAgents(t *testing.T) {
	e := newTestExecutor(t, nil)
	p := types.Phase{Name: "empty", ExecutionModel: types.ExecutionSequential}

	result, err := e.Execute(context.Background(), p, execCtx(nil))
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status)
	assert.Equal(t, ReasonNoActivatedAgents, result.Reason)
}

func TestExecuteSequentialPassesDependenciesForward(t *testing.T) {
	var secondSawFirst bool
	agents := map[string]agent.ExecuteFunc{
		"first": func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
			return types.NewSuccessOutput(map[string]any{"value": "from-first"}, nil, nil), nil
		},
		"second": func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
			prior, ok := input.GetDependency("first")
			secondSawFirst = ok && prior.Output["value"] == "from-first"
			return types.NewSuccessOutput(nil, nil, nil), nil
		},
	}

	e := newTestExecutor(t, agents)
	p := types.Phase{
		Name:           "sequential-phase",
		ExecutionModel: types.ExecutionSequential,
		Agents:         []string{"first", "second"},
	}

	result, err := e.Execute(context.Background(), p, execCtx(nil))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.True(t, secondSawFirst)
}

func TestExecuteSequentialContinuesPastFailure(t *testing.T) {
	var secondRan bool
	agents := map[string]agent.ExecuteFunc{
		"first": func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
			return types.NewFailureOutput([]string{"boom"}), nil
		},
		"second": func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
			secondRan = true
			return types.NewSuccessOutput(nil, nil, nil), nil
		},
	}

	e := newTestExecutor(t, agents)
	p := types.Phase{
		Name:           "sequential-phase",
		ExecutionModel: types.ExecutionSequential,
		Agents:         []string{"first", "second"},
	}

	result, err := e.Execute(context.Background(), p, execCtx(nil))
	require.NoError(t, err)
	assert.Equal(t, StatusPartialFailure, result.Status)
	assert.True(t, secondRan)
}

func TestExecuteParallelAggregatesStatus(t *testing.T) {
	agents := map[string]agent.ExecuteFunc{
		"ok": func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
			return types.NewSuccessOutput(nil, nil, nil), nil
		},
		"bad": func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
			return types.NewFailureOutput([]string{"bad"}), nil
		},
	}

	e := newTestExecutor(t, agents)
	p := types.Phase{
		Name:           "parallel-phase",
		ExecutionModel: types.ExecutionParallel,
		Agents:         []string{"ok", "bad"},
	}

	result, err := e.Execute(context.Background(), p, execCtx(nil))
	require.NoError(t, err)
	assert.Equal(t, StatusPartialFailure, result.Status)
	assert.Len(t, result.AgentResults, 2)
}

func TestExecuteDependencyGraphOrdersScaffoldingBatches(t *testing.T) {
	var gitSawFilesystem bool
	agents := map[string]agent.ExecuteFunc{
		"filesystem_scaffolder": func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
			return types.NewSuccessOutput(map[string]any{"path": "/tmp/proj"}, nil, nil), nil
		},
		"git_provisioner": func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
			_, gitSawFilesystem = input.GetDependency("filesystem_scaffolder")
			return types.NewSuccessOutput(nil, nil, nil), nil
		},
		"workflow_generator": func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
			return types.NewSuccessOutput(nil, nil, nil), nil
		},
		"jira_provisioner": func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
			return types.NewSuccessOutput(nil, nil, nil), nil
		},
	}

	e := newTestExecutor(t, agents)
	p := types.Phase{
		Name:           "scaffolding",
		ExecutionModel: types.ExecutionDependencyGraph,
		Agents:         []string{"filesystem_scaffolder", "git_provisioner", "workflow_generator", "jira_provisioner"},
	}

	result, err := e.Execute(context.Background(), p, execCtx(nil))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.Len(t, result.AgentResults, 4)
	assert.True(t, gitSawFilesystem)
}

func TestExecuteUnknownModelIsStructuralError(t *testing.T) {
	e := newTestExecutor(t, map[string]agent.ExecuteFunc{
		"solo": func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
			return types.NewSuccessOutput(nil, nil, nil), nil
		},
	})
	p := types.Phase{
		Name:           "weird",
		ExecutionModel: types.ExecutionModel("quantum"),
		Agents:         []string{"solo"},
	}

	_, err := e.Execute(context.Background(), p, execCtx(nil))
	require.Error(t, err)
	var structErr *orcherr.PhaseStructuralError
	assert.True(t, errors.As(err, &structErr))
}

func TestExecuteActivationMatrixNarrowsAgents(t *testing.T) {
	var architectRan, mlArchitectRan bool
	e := newTestExecutor(t, map[string]agent.ExecuteFunc{
		"backend_architect": func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
			architectRan = true
			return types.NewSuccessOutput(nil, nil, nil), nil
		},
		"ml_architect": func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
			mlArchitectRan = true
			return types.NewSuccessOutput(nil, nil, nil), nil
		},
	})
	p := types.Phase{
		Name:            "architecture_design",
		ExecutionModel:  types.ExecutionParallel,
		Agents:          []string{"backend_architect", "ml_architect"},
		ActivationRules: &types.ActivationRules{UseActivationMatrix: true},
	}

	result, err := e.Execute(context.Background(), p, execCtx(map[string]any{"project_type": "api"}))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.True(t, architectRan)
	assert.False(t, mlArchitectRan)
	assert.Len(t, result.AgentResults, 1)
}
