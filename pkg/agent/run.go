// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package agent

import (
	"context"
	"time"

	"swarmforge/pkg/types"
)

// Run wraps an Agent's Execute with timing, input validation, and
// output validation, so callers (the Runner, the Phase Executor) never
// have to duplicate that bookkeeping per agent.
func Run(ctx context.Context, a Agent, input types.AgentInput) types.AgentOutput {
	start := time.Now()

	if !ValidateInput(input) {
		return types.NewFailureOutput([]string{"invalid input: project_id is required"})
	}

	output, err := a.Execute(ctx, input)
	output.DurationMs = time.Since(start).Milliseconds()

	if err != nil {
		output.Status = types.AgentFailure
		output.Errors = append(output.Errors, err.Error())
		return output
	}

	if !ValidateOutput(output) {
		output.Errors = append(output.Errors, "output validation failed: unknown status")
	}

	return output
}
