// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package agent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swarmforge/pkg/types"
)

func writeAgentFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestNewRegistryLoadsDefinitions(t *testing.T) {
	dir := t.TempDir()
	writeAgentFile(t, dir, "backend-developer.md", "---\nname: backend-developer\ndescription: builds services\n---\nBuild it.")
	writeAgentFile(t, dir, "healthcare-expert.md", "---\nname: healthcare-expert\ndescription: domain advice\n---\nAdvise.")
	writeAgentFile(t, dir, "README.md", "not an agent, no frontmatter name field\n")

	r, err := NewRegistry(dir)
	require.NoError(t, err)

	assert.True(t, r.HasAgent("backend-developer"))
	assert.True(t, r.HasAgent("healthcare-expert"))
	assert.False(t, r.HasAgent("README"))
	assert.Len(t, r.Definitions(), 2)
}

func TestNewRegistryMissingDirIsEmpty(t *testing.T) {
	r, err := NewRegistry(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, r.Definitions())
}

func TestRegistryGetCachesInstance(t *testing.T) {
	r, err := NewRegistry("")
	require.NoError(t, err)

	calls := 0
	r.RegisterFactory("echo", func(def *Definition) Agent {
		calls++
		return NewNativeAgent("echo", func(ctx context.Context, in types.AgentInput) (types.AgentOutput, error) {
			return types.NewSuccessOutput(nil, nil, nil), nil
		})
	})

	first, ok := r.Get("echo")
	require.True(t, ok)
	second, ok := r.Get("echo")
	require.True(t, ok)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestRegistryGetUnknownAgent(t *testing.T) {
	r, err := NewRegistry("")
	require.NoError(t, err)

	_, ok := r.Get("nonexistent")
	assert.False(t, ok)
}

func TestRegistryAgentsByCategory(t *testing.T) {
	dir := t.TempDir()
	writeAgentFile(t, dir, "backend-developer.md", "---\nname: backend-developer\n---\nbody")
	writeAgentFile(t, dir, "frontend-developer.md", "---\nname: frontend-developer\n---\nbody")
	writeAgentFile(t, dir, "healthcare-expert.md", "---\nname: healthcare-expert\n---\nbody")
	writeAgentFile(t, dir, "solution-architect.md", "---\nname: solution-architect\n---\nbody")

	r, err := NewRegistry(dir)
	require.NoError(t, err)

	dev := r.AgentsByCategory(CategoryDevelopment)
	assert.ElementsMatch(t, []string{"backend-developer", "frontend-developer"}, dev)

	experts := r.AgentsByCategory(CategoryDomainExpert)
	assert.ElementsMatch(t, []string{"healthcare-expert"}, experts)

	arch := r.AgentsByCategory(CategoryArchitecture)
	assert.ElementsMatch(t, []string{"solution-architect"}, arch)

	assert.Empty(t, r.AgentsByCategory(Category("unknown")))
}
