// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package runner implements the Agent Runner (C2): it wraps a single
// agent.Agent invocation with a per-attempt timeout and a bounded
// linear-backoff retry loop.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"swarmforge/internal/telemetry"
	"swarmforge/pkg/agent"
	"swarmforge/pkg/types"
)

const tracerName = "swarmforge/pkg/runner"

// DefaultTimeout is the per-attempt deadline applied when Options.Timeout
// is zero, matching the executor's 300s default for LLM calls.
const DefaultTimeout = 300 * time.Second

// DefaultMaxRetries is the retry budget applied when Options.MaxRetries
// is zero.
const DefaultMaxRetries = 3

// backoffUnit is the base delay multiplied by the attempt number between
// retries (attempt 1 waits 1x, attempt 2 waits 2x, ...).
const backoffUnit = time.Second

// Options configures one Runner invocation.
type Options struct {
	// Timeout bounds a single attempt. Defaults to DefaultTimeout.
	Timeout time.Duration

	// MaxRetries bounds the number of attempts. Defaults to DefaultMaxRetries.
	MaxRetries int
}

// Runner executes one agent.Agent with retry and timeout semantics.
type Runner struct{}

// New builds a Runner.
func New() *Runner {
	return &Runner{}
}

// Run invokes a with input, retrying on failure (not on success or
// needs_input) up to opts.MaxRetries times, each attempt bounded by
// opts.Timeout. It waits an increasing linear backoff between retries
// unless ctx is cancelled first.
func (r *Runner) Run(ctx context.Context, a agent.Agent, input types.AgentInput, opts Options) types.AgentOutput {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	var last types.AgentOutput
	for attempt := 0; attempt < maxRetries; attempt++ {
		last = r.attempt(ctx, a, input, timeout, attempt+1)

		if last.Status != types.AgentFailure {
			return last
		}

		if attempt == maxRetries-1 {
			break
		}

		slog.Warn("agent failed, retrying",
			"agent_id", a.ID(),
			"attempt", attempt+1,
			"errors", last.Errors,
		)

		if !r.sleepBackoff(ctx, attempt) {
			return last
		}
	}

	return last
}

func (r *Runner) attempt(ctx context.Context, a agent.Agent, input types.AgentInput, timeout time.Duration, attemptNum int) types.AgentOutput {
	ctx, span := telemetry.StartSpan(ctx, tracerName, "agent.attempt",
		trace.WithAttributes(telemetry.AgentAttrs(a.ID(), attemptNum)...))
	defer span.End()

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out := agent.Run(attemptCtx, a, input)

	if attemptCtx.Err() == context.DeadlineExceeded {
		timeoutErr := fmt.Sprintf("agent %s timed out after %s", a.ID(), timeout)
		span.SetStatus(codes.Error, timeoutErr)
		return types.AgentOutput{
			Status:     types.AgentFailure,
			Output:     map[string]any{},
			Errors:     []string{timeoutErr},
			DurationMs: out.DurationMs,
		}
	}

	if out.Status == types.AgentFailure {
		span.SetStatus(codes.Error, "agent failure")
	} else {
		span.SetStatus(codes.Ok, string(out.Status))
	}
	return out
}

// sleepBackoff waits (attempt+1)*backoffUnit, returning false if ctx is
// cancelled before the wait completes.
func (r *Runner) sleepBackoff(ctx context.Context, attempt int) bool {
	delay := time.Duration(attempt+1) * backoffUnit
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
