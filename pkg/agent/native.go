// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package agent

import (
	"context"

	"swarmforge/pkg/types"
)

// ExecuteFunc is the signature a native, Go-implemented agent provides.
type ExecuteFunc func(ctx context.Context, input types.AgentInput) (types.AgentOutput, error)

// NativeAgent adapts a plain Go function to the Agent interface, for
// agents that do not need an LLM round-trip. The scaffolding agents in
// internal/scaffold implement Agent with their own types instead.
type NativeAgent struct {
	id      string
	execute ExecuteFunc
}

var _ Agent = (*NativeAgent)(nil)

// NewNativeAgent builds a NativeAgent around execute.
func NewNativeAgent(id string, execute ExecuteFunc) *NativeAgent {
	return &NativeAgent{id: id, execute: execute}
}

// ID returns the agent's identifier.
func (a *NativeAgent) ID() string { return a.id }

// Execute runs the wrapped function.
func (a *NativeAgent) Execute(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
	return a.execute(ctx, input)
}
