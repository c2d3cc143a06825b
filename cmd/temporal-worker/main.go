// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Command temporal-worker runs the durable Engine variant: a Temporal
// worker polling ProjectTaskQueue, executing phases through
// ProjectActivities and blocking each approval-gated phase on an
// "approval" signal.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"swarmforge/internal/agentclient"
	"swarmforge/internal/config"
	"swarmforge/internal/scaffold"
	"swarmforge/internal/temporal"
	"swarmforge/pkg/agent"
	"swarmforge/pkg/dag"
	"swarmforge/pkg/parallel"
	"swarmforge/pkg/phase"
	"swarmforge/pkg/runner"
)

func main() {
	log.Println("🚀 Swarmforge Temporal Worker")

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("no configuration file found, using built-in defaults", "error", err)
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	}

	reg, err := agent.NewRegistry(os.Getenv("SWARMFORGE_AGENTS_DIR"))
	if err != nil {
		log.Fatalf("❌ loading agent definitions: %v", err)
	}
	scaffold.RegisterAll(reg, nil)
	agent.RegisterLLMDefaults(reg, agentclient.NewClient(openCodeBaseURL(), 4096))

	opts := runner.Options{
		Timeout:    cfg.Orchestrator.DefaultTimeout(),
		MaxRetries: cfg.Orchestrator.MaxRetries,
	}
	executor := phase.New(reg, runner.New(), dag.NewResolver(), parallel.New(), opts)
	activities := temporal.NewProjectActivities(executor)

	ctx := context.Background()
	w, err := temporal.NewProjectWorker(ctx, activities)
	if err != nil {
		log.Fatalf("❌ creating project worker: %v", err)
	}
	defer w.Close()

	if err := w.Start(ctx); err != nil {
		log.Fatalf("❌ starting worker: %v", err)
	}

	log.Printf("✅ worker listening on task queue: %s\n", temporal.ProjectTaskQueue)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("🛑 shutdown signal received")
	if err := w.Stop(ctx); err != nil {
		log.Printf("❌ error stopping worker: %v", err)
	}
	log.Println("✅ worker stopped")
}

func openCodeBaseURL() string {
	if v := os.Getenv("OPENCODE_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost"
}
