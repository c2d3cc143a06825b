// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefinition(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantNil  bool
		wantErr  bool
		validate func(t *testing.T, def *Definition)
	}{
		{
			name: "full frontmatter",
			content: `---
name: backend-developer
description: Implements backend services
model: opus
tools:
  - Read
  - Write
---

# Backend Developer

Implement the backend per the architecture doc.`,
			validate: func(t *testing.T, def *Definition) {
				assert.Equal(t, "backend-developer", def.Name)
				assert.Equal(t, "Implements backend services", def.Description)
				assert.Equal(t, "opus", def.Model)
				assert.Equal(t, []string{"Read", "Write"}, def.Tools)
				assert.Contains(t, def.Instructions, "Implement the backend")
			},
		},
		{
			name: "defaults model when absent",
			content: `---
name: qa-tester
description: Runs tests
---
Run the test suite.`,
			validate: func(t *testing.T, def *Definition) {
				assert.Equal(t, defaultModel, def.Model)
			},
		},
		{
			name:    "no frontmatter delimiters",
			content: "just a plain markdown file",
			wantNil: true,
		},
		{
			name: "missing name is skipped",
			content: `---
description: no name here
---
body`,
			wantNil: true,
		},
		{
			name: "invalid yaml",
			content: `---
name: [broken
---
body`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseDefinition(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, def)
				return
			}
			require.NotNil(t, def)
			if tt.validate != nil {
				tt.validate(t, def)
			}
		})
	}
}

func TestParseDefinitionFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "architect.md")
	content := []byte(`---
name: architect
description: Designs the system
model: sonnet
---
Design it well.`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	def, err := ParseDefinitionFile(path)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, "architect", def.Name)
}

func TestParseDefinitionFileMissing(t *testing.T) {
	_, err := ParseDefinitionFile("/nonexistent/agent.md")
	require.Error(t, err)
}
