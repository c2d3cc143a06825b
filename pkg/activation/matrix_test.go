// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterWebApp(t *testing.T) {
	agents := []string{"fullstack_architect", "ml_architect", "backend_architect"}
	got := Filter(agents, ProjectWebApp, "architecture_design")
	assert.ElementsMatch(t, []string{"fullstack_architect", "backend_architect"}, got)
}

func TestFilterAPI(t *testing.T) {
	agents := []string{"backend_developer", "frontend_developer"}
	got := Filter(agents, ProjectAPI, "code_generation")
	assert.Equal(t, []string{"backend_developer"}, got)
}

func TestFilterUnknownProjectTypeFallsBackToWebApp(t *testing.T) {
	agents := []string{"fullstack_developer", "aiml_developer"}
	got := Filter(agents, ProjectType("unknown"), "code_generation")
	assert.ElementsMatch(t, []string{"fullstack_developer"}, got)
}

func TestFilterUnknownPhaseActivatesNothing(t *testing.T) {
	got := Filter([]string{"backend_developer"}, ProjectWebApp, "no_such_phase")
	assert.Empty(t, got)
}
