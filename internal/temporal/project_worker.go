// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package temporal

import (
	"context"
	"fmt"

	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"
)

// NewProjectWorker builds a TemporalWorker registered for ProjectWorkflow
// and its ExecutePhase activity on ProjectTaskQueue, keeping the
// TemporalWorker lifecycle (Start/Stop/Close) exactly as worker.go
// already provides it.
func NewProjectWorker(ctx context.Context, activities *ProjectActivities) (*TemporalWorker, error) {
	w, err := NewTemporalWorker(ctx, WorkerOptions{TaskQueue: ProjectTaskQueue})
	if err != nil {
		return nil, fmt.Errorf("creating project worker: %w", err)
	}

	w.RegisterWorkflow(ProjectWorkflow)
	w.RegisterActivity(activities.ExecutePhase)

	return w, nil
}

// ListRunningProjects returns the project ids of every ProjectWorkflow
// execution Temporal's server still considers open on
// ProjectTaskQueue's namespace — the durable-Engine analogue of
// pkg/engine.Engine.RecoverInterrupted's store.ListByStatus(running)
// scan. There is nothing to roll back here: an open execution is already
// parked on its signal wait (or about to be), and a newly started worker
// resumes it on the next workflow task without any special recovery
// step.
func ListRunningProjects(ctx context.Context, c client.Client) ([]string, error) {
	var projectIDs []string
	var nextPageToken []byte

	for {
		resp, err := c.ListWorkflow(ctx, &workflowservice.ListWorkflowExecutionsRequest{
			Query:         "WorkflowType = 'ProjectWorkflow' AND ExecutionStatus = 'Running'",
			NextPageToken: nextPageToken,
		})
		if err != nil {
			return nil, fmt.Errorf("listing running project workflows: %w", err)
		}

		for _, exec := range resp.Executions {
			projectIDs = append(projectIDs, exec.Execution.WorkflowId)
		}

		nextPageToken = resp.NextPageToken
		if len(nextPageToken) == 0 {
			break
		}
	}

	return projectIDs, nil
}
