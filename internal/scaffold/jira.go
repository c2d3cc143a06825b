// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package scaffold

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"swarmforge/pkg/types"
)

// JiraProvisioner stands in for a real Jira ticket-creation call. No
// Jira client exists anywhere in the example pack and no live
// credentials are assumed here, so this agent deterministically derives
// a project-scoped ticket key instead of calling out to an API. It
// still runs as a full dependency_graph node so the phase's wiring and
// parallel fan-out are exercised the same way they would be against a
// real provisioner.
type JiraProvisioner struct{}

// NewJiraProvisioner builds a JiraProvisioner.
func NewJiraProvisioner() *JiraProvisioner { return &JiraProvisioner{} }

// ID returns the agent's identifier.
func (a *JiraProvisioner) ID() string { return "jira_provisioner" }

// Execute derives a deterministic ticket key for the project and
// returns it as an artifact.
func (a *JiraProvisioner) Execute(_ context.Context, input types.AgentInput) (types.AgentOutput, error) {
	projectID := stringOr(map[string]any{"project_id": input.ProjectID}, "project_id", "unknown")

	sum := sha256.Sum256([]byte(projectID))
	ticketKey := fmt.Sprintf("SWARM-%s", hex.EncodeToString(sum[:])[:8])

	return types.NewSuccessOutput(
		map[string]any{"ticket_key": ticketKey},
		[]map[string]any{{"type": "jira_ticket", "key": ticketKey}},
		[]string{fmt.Sprintf("provisioned tracking ticket %s", ticketKey)},
	), nil
}
