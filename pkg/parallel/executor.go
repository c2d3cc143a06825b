// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package parallel implements the Parallel Executor (C4): it runs a
// batch of independent tasks concurrently and collects every result,
// the same "wait for all, tolerate individual failure" contract the
// Phase Executor needs for its parallel and dependency_graph execution
// models.
package parallel

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"swarmforge/pkg/types"
)

// Task is one unit of concurrent work keyed by agent id.
type Task struct {
	AgentID string
	Run     func(ctx context.Context) (types.AgentOutput, error)
}

// Executor runs a slice of Tasks concurrently.
type Executor struct{}

// New builds an Executor.
func New() *Executor {
	return &Executor{}
}

// Run executes every task concurrently and returns each one's
// AgentOutput keyed by AgentID. An individual agent reporting
// types.AgentFailure is not itself an error here — per-agent failure
// is expressed in the returned AgentOutput, matching the Runner's
// contract, and does not cancel its siblings. Run only returns a
// non-nil error when a task's Run func itself returns one, which does
// cancel any tasks still in flight. A panic in a Run func is not
// recovered.
func (e *Executor) Run(ctx context.Context, tasks []Task) (map[string]types.AgentOutput, error) {
	results := make(map[string]types.AgentOutput, len(tasks))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			out, err := task.Run(gctx)
			if err != nil {
				return fmt.Errorf("task %s: %w", task.AgentID, err)
			}

			mu.Lock()
			results[task.AgentID] = out
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Status is the aggregated outcome of a parallel batch.
type Status string

const (
	StatusCompleted      Status = "completed"
	StatusPartialFailure Status = "partial_failure"
)

// AggregateStatus reduces a batch's per-agent results to the overall
// phase outcome: completed if every agent succeeded (or the batch was
// empty), partial_failure if at least one agent failed.
func AggregateStatus(results map[string]types.AgentOutput) Status {
	for _, out := range results {
		if out.Status == types.AgentFailure {
			return StatusPartialFailure
		}
	}
	return StatusCompleted
}
