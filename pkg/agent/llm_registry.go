// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package agent

import "swarmforge/internal/agentclient"

// RegisterLLMDefaults registers an LLMAdapterAgent factory, backed by
// client, for every loaded Definition that does not already have a
// Factory registered — e.g. a native implementation registered earlier,
// such as scaffold.RegisterAll's four scaffolding agents. Call this
// after registering every native factory so natives always win.
func RegisterLLMDefaults(reg *Registry, client agentclient.ClientInterface) {
	for _, def := range reg.Definitions() {
		if reg.FactoryRegistered(def.Name) {
			continue
		}
		reg.RegisterFactory(def.Name, func(d *Definition) Agent {
			return NewLLMAdapterAgent(d, client)
		})
	}
}
