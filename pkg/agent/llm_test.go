// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/sst/opencode-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swarmforge/internal/agentclient"
	"swarmforge/pkg/types"
)

type fakeClient struct {
	result *agentclient.PromptResult
	err    error
	prompt string
}

func (f *fakeClient) ExecutePrompt(ctx context.Context, prompt string, opts *agentclient.PromptOptions) (*agentclient.PromptResult, error) {
	f.prompt = prompt
	return f.result, f.err
}

func (f *fakeClient) ExecuteCommand(ctx context.Context, sessionID string, command string, args []string) (*agentclient.PromptResult, error) {
	return nil, nil
}

func (f *fakeClient) GetFileStatus(ctx context.Context) ([]opencode.File, error) {
	return nil, nil
}

func (f *fakeClient) GetBaseURL() string { return "http://localhost:0" }
func (f *fakeClient) GetPort() int       { return 0 }

func TestLLMAdapterAgentSuccess(t *testing.T) {
	client := &fakeClient{result: &agentclient.PromptResult{
		SessionID: "sess-1",
		Parts:     []agentclient.ResultPart{{Type: "text", Text: "done"}},
	}}
	def := &Definition{Name: "backend-developer", Model: "sonnet", Instructions: "Build the backend."}
	a := NewLLMAdapterAgent(def, client)

	out, err := a.Execute(context.Background(), types.AgentInput{
		ProjectID: "proj-1",
		Context:   map[string]any{"overview": "a shop"},
	})
	require.NoError(t, err)
	assert.Equal(t, types.AgentSuccess, out.Status)
	assert.Equal(t, "done", out.Output["response"])
	assert.Contains(t, client.prompt, "Build the backend.")
	assert.Contains(t, client.prompt, "proj-1")
}

func TestLLMAdapterAgentNeedsInputOnEmptyResponse(t *testing.T) {
	client := &fakeClient{result: &agentclient.PromptResult{SessionID: "sess-2"}}
	def := &Definition{Name: "qa-tester", Model: "sonnet", Instructions: "Test it."}
	a := NewLLMAdapterAgent(def, client)

	out, err := a.Execute(context.Background(), types.AgentInput{ProjectID: "proj-1"})
	require.NoError(t, err)
	assert.Equal(t, types.AgentNeedsInput, out.Status)
}

func TestLLMAdapterAgentClientError(t *testing.T) {
	client := &fakeClient{err: errors.New("server unavailable")}
	def := &Definition{Name: "qa-tester", Instructions: "Test it."}
	a := NewLLMAdapterAgent(def, client)

	out, err := a.Execute(context.Background(), types.AgentInput{ProjectID: "proj-1"})
	require.NoError(t, err)
	assert.Equal(t, types.AgentFailure, out.Status)
	assert.Contains(t, out.Errors, "server unavailable")
}
