// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package dag implements the Dependency Resolver (C3): it batches a
// dependency_graph phase's agents into parallel-safe levels and
// reports a cycle as an error instead of a partial schedule.
package dag

// Batch is a set of agent ids with no dependency on one another within
// the batch; every dependency of an agent in Batch[i] lies in some
// Batch[j], j < i.
type Batch []string
