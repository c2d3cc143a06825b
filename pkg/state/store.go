// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package state implements the State Manager (C7): an opaque
// checkpoint store for ExecutionContext. It never interprets context
// fields beyond the status column used for list_by_status — contexts
// are otherwise a bytes-in/bytes-out façade.
package state

import (
	"context"

	"swarmforge/pkg/types"
)

// Store is the checkpoint store contract shared by every backend.
type Store interface {
	// Save persists execCtx, replacing any prior record for the same
	// ProjectID. Implementations must make Save atomic with respect to
	// crash: a reader must never observe a partially written record.
	Save(ctx context.Context, execCtx types.ExecutionContext) error

	// Load returns the saved context for projectID, or (nil, nil) if
	// none exists.
	Load(ctx context.Context, projectID string) (*types.ExecutionContext, error)

	// Delete removes the saved context for projectID. Deleting an
	// absent projectID is not an error.
	Delete(ctx context.Context, projectID string) error

	// ListByStatus returns every saved context currently in status.
	ListByStatus(ctx context.Context, status types.Status) ([]types.ExecutionContext, error)
}
