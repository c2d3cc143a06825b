// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package scaffold implements the four native agents that make up the
// canonical scaffolding dependency_graph phase: filesystem_scaffolder,
// git_provisioner, workflow_generator, and jira_provisioner.
package scaffold

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// defaultImage is the disposable image scaffolding commands run inside
// when a Sandbox is in use.
const defaultImage = "alpine:3.20"

const containerStopTimeout = 10 * time.Second

// Sandbox runs shell commands for one project's scaffolding inside an
// isolated, disposable container bind-mounting the project's host
// directory, the scaffolding-specific counterpart to mergequeue's
// per-merge-attempt container isolation.
type Sandbox struct {
	cli         *client.Client
	containerID string
}

// NewSandbox creates and starts a disposable container with hostDir
// bind-mounted at /workspace, ready to run scaffolding commands against
// it.
func NewSandbox(ctx context.Context, hostDir string) (*Sandbox, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}

	resp, err := cli.ContainerCreate(ctx, &container.Config{
		Image:      defaultImage,
		Cmd:        []string{"sleep", "infinity"},
		WorkingDir: "/workspace",
	}, &container.HostConfig{
		Binds: []string{hostDir + ":/workspace"},
	}, nil, nil, "")
	if err != nil {
		cli.Close()
		return nil, fmt.Errorf("creating scaffold container: %w", err)
	}

	if err := cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		cli.Close()
		return nil, fmt.Errorf("starting scaffold container: %w", err)
	}

	return &Sandbox{cli: cli, containerID: resp.ID}, nil
}

// Run executes command inside the sandbox's working directory via a
// shell and returns its combined stdout/stderr.
func (s *Sandbox) Run(ctx context.Context, command string) (string, error) {
	execResp, err := s.cli.ContainerExecCreate(ctx, s.containerID, container.ExecOptions{
		Cmd:          []string{"sh", "-c", command},
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return "", fmt.Errorf("creating exec for %q: %w", command, err)
	}

	attach, err := s.cli.ContainerExecAttach(ctx, execResp.ID, container.ExecStartOptions{})
	if err != nil {
		return "", fmt.Errorf("attaching exec for %q: %w", command, err)
	}
	defer attach.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(attach.Reader); err != nil {
		return buf.String(), fmt.Errorf("reading exec output for %q: %w", command, err)
	}

	inspect, err := s.cli.ContainerExecInspect(ctx, execResp.ID)
	if err != nil {
		return buf.String(), fmt.Errorf("inspecting exec for %q: %w", command, err)
	}
	if inspect.ExitCode != 0 {
		return buf.String(), fmt.Errorf("command %q exited %d: %s", command, inspect.ExitCode, buf.String())
	}

	return buf.String(), nil
}

// Close stops and removes the sandbox container, idempotent the same
// way DockerManager.StopAndRemoveContainer is.
func (s *Sandbox) Close(ctx context.Context) error {
	defer s.cli.Close()

	timeout := int(containerStopTimeout.Seconds())
	_ = s.cli.ContainerStop(ctx, s.containerID, container.StopOptions{Timeout: &timeout})

	if err := s.cli.ContainerRemove(ctx, s.containerID, container.RemoveOptions{Force: true, RemoveVolumes: true}); err != nil {
		if client.IsErrNotFound(err) {
			return nil
		}
		return fmt.Errorf("removing scaffold container: %w", err)
	}
	return nil
}
