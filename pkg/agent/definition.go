// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package agent

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is a parsed agent definition, sourced from a
// .claude/agents/*.md file whose body opens with a YAML frontmatter
// block delimited by "---" lines.
type Definition struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Model        string   `yaml:"model"`
	Tools        []string `yaml:"tools"`
	Instructions string   `yaml:"-"`
}

// frontmatter is the subset of Definition that yaml.Unmarshal populates
// directly from the header block.
type frontmatter struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Model       string   `yaml:"model"`
	Tools       []string `yaml:"tools"`
}

const defaultModel = "sonnet"

// ParseDefinitionFile reads one agent markdown file and parses its
// frontmatter and body.
func ParseDefinitionFile(path string) (*Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent definition %s: %w", path, err)
	}
	return ParseDefinition(string(content))
}

// ParseDefinition parses one agent markdown document's frontmatter and
// instruction body. It returns (nil, nil) for a document with no
// frontmatter name, matching the registry's behavior of silently
// skipping files that are not agent definitions.
func ParseDefinition(content string) (*Definition, error) {
	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return nil, nil
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}
	if fm.Name == "" {
		return nil, nil
	}

	model := fm.Model
	if model == "" {
		model = defaultModel
	}

	return &Definition{
		Name:         fm.Name,
		Description:  fm.Description,
		Model:        model,
		Tools:        fm.Tools,
		Instructions: strings.TrimSpace(parts[2]),
	}, nil
}
