// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package agent

import (
	"fmt"
	"strings"

	"context"

	"swarmforge/internal/agentclient"
	"swarmforge/pkg/types"
)

// LLMAdapterAgent executes a markdown Definition's instructions as a
// prompt against a running opencode server, through agentclient's
// ClientInterface.
type LLMAdapterAgent struct {
	def    *Definition
	client agentclient.ClientInterface
}

var _ Agent = (*LLMAdapterAgent)(nil)

// NewLLMAdapterAgent builds an LLMAdapterAgent. def must not be nil:
// the adapter has no instructions or model to run without it.
func NewLLMAdapterAgent(def *Definition, client agentclient.ClientInterface) *LLMAdapterAgent {
	return &LLMAdapterAgent{def: def, client: client}
}

// ID returns the definition's name.
func (a *LLMAdapterAgent) ID() string { return a.def.Name }

// Execute renders the agent's instructions against the input context
// and dependency outputs, sends the result as a prompt, and reports the
// response text as the agent's output.
func (a *LLMAdapterAgent) Execute(ctx context.Context, input types.AgentInput) (types.AgentOutput, error) {
	prompt := a.buildPrompt(input)

	result, err := a.client.ExecutePrompt(ctx, prompt, &agentclient.PromptOptions{
		Title: fmt.Sprintf("%s / %s", a.def.Name, input.ProjectID),
		Model: a.def.Model,
		Tools: a.def.Tools,
	})
	if err != nil {
		return types.NewFailureOutput([]string{err.Error()}), nil
	}

	text := result.GetText()
	if strings.TrimSpace(text) == "" {
		return types.AgentOutput{
			Status:   types.AgentNeedsInput,
			Output:   map[string]any{"session_id": result.SessionID},
			Messages: []string{"agent produced no response text"},
		}, nil
	}

	return types.NewSuccessOutput(
		map[string]any{
			"session_id": result.SessionID,
			"response":   text,
		},
		nil,
		[]string{text},
	), nil
}

func (a *LLMAdapterAgent) buildPrompt(input types.AgentInput) string {
	var b strings.Builder
	b.WriteString(a.def.Instructions)
	b.WriteString("\n\n## Project context\n")
	fmt.Fprintf(&b, "project_id: %s\n", input.ProjectID)
	for k, v := range input.Context {
		fmt.Fprintf(&b, "%s: %v\n", k, v)
	}
	if len(input.Dependencies) > 0 {
		b.WriteString("\n## Dependency outputs\n")
		for agentID, out := range input.Dependencies {
			fmt.Fprintf(&b, "- %s (%s): %v\n", agentID, out.Status, out.Output)
		}
	}
	return b.String()
}
