// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package phase implements the Phase Executor (C5): it narrows a
// Phase's agent set through the activation matrix, dispatches the
// narrowed set by the phase's execution model, and aggregates the
// per-agent outcomes into one PhaseResult.
package phase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"swarmforge/internal/orcherr"
	"swarmforge/internal/telemetry"
	"swarmforge/pkg/activation"
	"swarmforge/pkg/agent"
	"swarmforge/pkg/dag"
	"swarmforge/pkg/parallel"
	"swarmforge/pkg/runner"
	"swarmforge/pkg/types"
)

const tracerName = "swarmforge/pkg/phase"

// Phase result statuses, ported from spec.md §4.5/§8.
const (
	StatusSkipped        = "skipped"
	StatusCompleted      = "completed"
	StatusPartialFailure = "partial_failure"

	ReasonNoActivatedAgents = "no_activated_agents"
)

// scaffoldDependencies is the static dependency table for the
// canonical dependency_graph phase (scaffolding): filesystem_scaffolder
// runs first, then git_provisioner, then workflow_generator and
// jira_provisioner concurrently.
var scaffoldDependencies = map[string][]string{
	"git_provisioner":    {"filesystem_scaffolder"},
	"workflow_generator": {"git_provisioner"},
	"jira_provisioner":   {"git_provisioner"},
}

// Executor runs one Phase against an ExecutionContext.
type Executor struct {
	registry *agent.Registry
	runner   *runner.Runner
	resolver *dag.Resolver
	parallel *parallel.Executor
	opts     runner.Options
}

// New builds an Executor over the given collaborators. opts configures
// every agent invocation's timeout/retry budget; the zero value applies
// the Runner's defaults.
func New(registry *agent.Registry, r *runner.Runner, resolver *dag.Resolver, par *parallel.Executor, opts runner.Options) *Executor {
	return &Executor{
		registry: registry,
		runner:   r,
		resolver: resolver,
		parallel: par,
		opts:     opts,
	}
}

// Execute runs phase against execCtx and returns the aggregated
// PhaseResult. It never returns an error for an agent-level failure —
// only for a structural problem (unknown execution model, or a cycle
// surfaced by the Dependency Resolver).
func (e *Executor) Execute(ctx context.Context, p types.Phase, execCtx *types.ExecutionContext) (types.PhaseResult, error) {
	ctx, span := telemetry.StartSpan(ctx, tracerName, "phase.execute",
		trace.WithAttributes(telemetry.PhaseAttrs(execCtx.ProjectID, p.Name, telemetry.AttrPhaseModel.String(string(p.ExecutionModel)))...))
	defer span.End()

	agents := e.activate(p, execCtx)
	if len(agents) == 0 {
		span.SetStatus(codes.Ok, StatusSkipped)
		return types.PhaseResult{Status: StatusSkipped, Reason: ReasonNoActivatedAgents}, nil
	}

	var result types.PhaseResult
	var err error
	switch p.ExecutionModel {
	case types.ExecutionSequential:
		result = e.executeSequential(ctx, agents, execCtx)
	case types.ExecutionParallel:
		result, err = e.executeParallel(ctx, agents, execCtx, nil)
	case types.ExecutionDependencyGraph:
		result, err = e.executeDependencyGraph(ctx, agents, execCtx)
	default:
		err = orcherr.NewPhaseStructuralError(p.Name, fmt.Sprintf("unknown execution model %q", p.ExecutionModel))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return types.PhaseResult{}, err
	}
	span.SetAttributes(attribute.String("phase.status", result.Status))
	span.SetStatus(codes.Ok, result.Status)
	return result, nil
}

// activate narrows phase.Agents through the activation matrix when
// phase.ActivationRules.UseActivationMatrix is set; otherwise it
// returns phase.Agents verbatim.
func (e *Executor) activate(p types.Phase, execCtx *types.ExecutionContext) []string {
	if p.ActivationRules == nil || !p.ActivationRules.UseActivationMatrix {
		return p.Agents
	}

	projectType := activation.DefaultProjectType
	if v, ok := execCtx.InputData["project_type"].(string); ok && v != "" {
		projectType = activation.ProjectType(v)
	} else if v, ok := execCtx.InputData["project_type_hint"].(string); ok && v != "" {
		projectType = activation.ProjectType(v)
	}

	return activation.Filter(p.Agents, projectType, p.Name)
}

// executeSequential runs agents one at a time, each seeing every prior
// agent's output through its Dependencies field. A hard per-agent
// failure does not stop the loop; it only marks the phase
// partial_failure.
func (e *Executor) executeSequential(ctx context.Context, agents []string, execCtx *types.ExecutionContext) types.PhaseResult {
	deps := make(map[string]types.AgentOutput, len(agents))
	results := make(map[string]types.AgentOutput, len(agents))
	anyFailure := false

	for _, id := range agents {
		a, ok := e.registry.Get(id)
		if !ok {
			continue
		}

		input := types.AgentInput{
			ProjectID:    execCtx.ProjectID,
			Context:      execCtx.InputData,
			Dependencies: cloneOutputs(deps),
		}

		out := e.runner.Run(ctx, a, input, e.opts)
		results[id] = out
		deps[id] = out

		if out.Status == types.AgentFailure {
			anyFailure = true
		}
	}

	status := StatusCompleted
	if anyFailure {
		status = StatusPartialFailure
	}
	return types.PhaseResult{Status: status, AgentResults: results}
}

// executeParallel runs agents concurrently via the Parallel Executor.
// deps, when non-nil, is handed to every agent's input unchanged — used
// by executeDependencyGraph to expose earlier batches' outputs to a
// later batch.
func (e *Executor) executeParallel(ctx context.Context, agents []string, execCtx *types.ExecutionContext, deps map[string]types.AgentOutput) (types.PhaseResult, error) {
	tasks := make([]parallel.Task, 0, len(agents))
	for _, id := range agents {
		a, ok := e.registry.Get(id)
		if !ok {
			continue
		}

		input := types.AgentInput{
			ProjectID:    execCtx.ProjectID,
			Context:      execCtx.InputData,
			Dependencies: deps,
		}

		tasks = append(tasks, parallel.Task{
			AgentID: id,
			Run: func(taskCtx context.Context) (types.AgentOutput, error) {
				return e.runner.Run(taskCtx, a, input, e.opts), nil
			},
		})
	}

	if len(tasks) == 0 {
		return types.PhaseResult{Status: StatusSkipped, Reason: ReasonNoActivatedAgents}, nil
	}

	results, err := e.parallel.Run(ctx, tasks)
	if err != nil {
		return types.PhaseResult{}, fmt.Errorf("parallel executor: %w", err)
	}

	return types.PhaseResult{
		Status:       string(parallel.AggregateStatus(results)),
		AgentResults: results,
	}, nil
}

// executeDependencyGraph resolves agents into dependency-ordered
// batches and runs each batch with the Parallel Executor in turn, so
// batch j+1 can see batch j's outputs through Dependencies.
func (e *Executor) executeDependencyGraph(ctx context.Context, agents []string, execCtx *types.ExecutionContext) (types.PhaseResult, error) {
	batches, err := e.resolver.Resolve(agents, scaffoldDependencies)
	if err != nil {
		return types.PhaseResult{}, err
	}

	allResults := make(map[string]types.AgentOutput, len(agents))
	for _, batch := range batches {
		batchResult, err := e.executeParallel(ctx, []string(batch), execCtx, cloneOutputs(allResults))
		if err != nil {
			return types.PhaseResult{}, err
		}
		for id, out := range batchResult.AgentResults {
			allResults[id] = out
		}
	}

	return types.PhaseResult{
		Status:       string(parallel.AggregateStatus(allResults)),
		AgentResults: allResults,
	}, nil
}

func cloneOutputs(m map[string]types.AgentOutput) map[string]types.AgentOutput {
	out := make(map[string]types.AgentOutput, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
