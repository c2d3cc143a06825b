// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package agent

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Factory constructs a fresh Agent implementation for one agent id.
// Registry caches the first instance it builds and returns that same
// instance on subsequent lookups.
type Factory func(def *Definition) Agent

// categoryPatterns maps a Category to the substrings an agent id must
// contain to belong to it, ported from the registry's
// CATEGORY_PATTERNS table.
var categoryPatterns = map[Category][]string{
	CategoryArchitecture: {"architect"},
	CategoryDevelopment:  {"developer"},
	CategorySupport:      {"testing", "cicd", "documentation"},
	CategoryDesign:       {"po", "requirement"},
	CategoryDomainExpert: {"expert"},
	CategoryScaffolding:  {"scaffolder", "provisioner", "generator"},
}

// Registry loads agent definitions from a directory of markdown files,
// pairs them with registered Factory implementations, and caches the
// resulting Agent instances.
type Registry struct {
	agentsDir string

	mu         sync.RWMutex
	defs       map[string]*Definition
	factories  map[string]Factory
	instances  map[string]Agent
}

// NewRegistry builds a Registry and, if agentsDir exists, eagerly loads
// every *.md definition under it.
func NewRegistry(agentsDir string) (*Registry, error) {
	r := &Registry{
		agentsDir: agentsDir,
		defs:      make(map[string]*Definition),
		factories: make(map[string]Factory),
		instances: make(map[string]Agent),
	}

	if agentsDir == "" {
		return r, nil
	}

	if _, err := os.Stat(agentsDir); err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("stat agents dir %s: %w", agentsDir, err)
	}

	if err := r.loadDefinitions(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) loadDefinitions() error {
	entries, err := os.ReadDir(r.agentsDir)
	if err != nil {
		return fmt.Errorf("reading agents dir %s: %w", r.agentsDir, err)
	}

	slog.Info("loading agent definitions", "path", r.agentsDir)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(r.agentsDir, entry.Name())
		def, err := ParseDefinitionFile(path)
		if err != nil {
			slog.Error("failed to load agent definition", "file", path, "error", err)
			continue
		}
		if def == nil {
			continue
		}

		r.mu.Lock()
		r.defs[def.Name] = def
		r.mu.Unlock()
		slog.Debug("loaded agent definition", "name", def.Name)
	}

	slog.Info("loaded agent definitions", "count", len(r.defs))
	return nil
}

// RegisterFactory registers the Factory that builds the implementation
// for agentID. It does not itself instantiate the agent.
func (r *Registry) RegisterFactory(agentID string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[agentID] = factory
	slog.Debug("registered agent implementation", "agent_id", agentID)
}

// Get returns the cached Agent instance for agentID, building and
// caching it on first access. It returns false if no factory is
// registered for agentID.
func (r *Registry) Get(agentID string) (Agent, bool) {
	r.mu.RLock()
	if inst, ok := r.instances[agentID]; ok {
		r.mu.RUnlock()
		return inst, true
	}
	factory, ok := r.factories[agentID]
	def := r.defs[agentID]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}

	inst := factory(def)

	r.mu.Lock()
	r.instances[agentID] = inst
	r.mu.Unlock()
	return inst, true
}

// FactoryRegistered reports whether agentID has a registered Factory,
// independent of whether a markdown Definition was also loaded for it.
func (r *Registry) FactoryRegistered(agentID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[agentID]
	return ok
}

// Definition returns the parsed markdown definition for agentID, if one
// was loaded.
func (r *Registry) Definition(agentID string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[agentID]
	return def, ok
}

// Definitions returns every loaded Definition.
func (r *Registry) Definitions() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	return out
}

// HasAgent reports whether agentID has either a loaded definition or a
// registered factory.
func (r *Registry) HasAgent(agentID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.defs[agentID]; ok {
		return true
	}
	_, ok := r.factories[agentID]
	return ok
}

// AgentsByCategory returns the agent ids whose name matches one of
// Category's substring patterns, ported from the registry's
// get_agents_by_category.
func (r *Registry) AgentsByCategory(category Category) []string {
	patterns := categoryPatterns[category]
	if len(patterns) == 0 {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []string
	for name := range r.defs {
		for _, pattern := range patterns {
			if strings.Contains(name, pattern) {
				matched = append(matched, name)
				break
			}
		}
	}
	for name := range r.factories {
		if _, ok := r.defs[name]; ok {
			continue
		}
		for _, pattern := range patterns {
			if strings.Contains(name, pattern) {
				matched = append(matched, name)
				break
			}
		}
	}
	return matched
}
