// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swarmforge/internal/orcherr"
)

func TestResolveLinearChain(t *testing.T) {
	agents := []string{"a", "b", "c"}
	deps := map[string][]string{
		"b": {"a"},
		"c": {"b"},
	}

	batches, err := NewResolver().Resolve(agents, deps)
	require.NoError(t, err)
	require.Equal(t, []Batch{{"a"}, {"b"}, {"c"}}, batches)
}

func TestResolveIndependentAgentsFormOneBatch(t *testing.T) {
	agents := []string{"filesystem_scaffolder", "git_provisioner", "jira_provisioner"}

	batches, err := NewResolver().Resolve(agents, nil)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.ElementsMatch(t, agents, batches[0])
}

func TestResolveDiamond(t *testing.T) {
	agents := []string{"root", "left", "right", "join"}
	deps := map[string][]string{
		"left":  {"root"},
		"right": {"root"},
		"join":  {"left", "right"},
	}

	batches, err := NewResolver().Resolve(agents, deps)
	require.NoError(t, err)
	require.Len(t, batches, 3)
	assert.Equal(t, Batch{"root"}, batches[0])
	assert.ElementsMatch(t, []string{"left", "right"}, batches[1])
	assert.Equal(t, Batch{"join"}, batches[2])
}

func TestResolveIgnoresDependencyOutsideActivatedSet(t *testing.T) {
	agents := []string{"a", "b"}
	deps := map[string][]string{
		"b": {"a", "not_activated_expert"},
	}

	batches, err := NewResolver().Resolve(agents, deps)
	require.NoError(t, err)
	require.Equal(t, []Batch{{"a"}, {"b"}}, batches)
}

func TestResolveDetectsCycle(t *testing.T) {
	agents := []string{"a", "b"}
	deps := map[string][]string{
		"a": {"b"},
		"b": {"a"},
	}

	_, err := NewResolver().Resolve(agents, deps)
	require.Error(t, err)
	var cycleErr *orcherr.CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestResolveEmptyAgents(t *testing.T) {
	batches, err := NewResolver().Resolve(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, batches)
}
