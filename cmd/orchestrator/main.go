// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Command orchestrator drives the in-process Orchestration Engine from
// the shell: start a project, inspect its progress, resolve a pending
// approval gate, or cancel it outright.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"swarmforge/internal/agentclient"
	"swarmforge/internal/config"
	"swarmforge/internal/scaffold"
	"swarmforge/pkg/agent"
	"swarmforge/pkg/approval"
	"swarmforge/pkg/dag"
	"swarmforge/pkg/domain"
	"swarmforge/pkg/engine"
	"swarmforge/pkg/parallel"
	"swarmforge/pkg/phase"
	"swarmforge/pkg/runner"
	"swarmforge/pkg/state"
	"swarmforge/pkg/types"
)

const version = "0.1.0"

func main() {
	fmt.Printf("Swarmforge Orchestrator v%s\n", version)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("no configuration file found, using built-in defaults", "error", err)
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	}

	e, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("failed to initialize engine: %v", err)
	}

	ctx := context.Background()
	if recovered, err := e.RecoverInterrupted(ctx); err != nil {
		log.Fatalf("failed to recover interrupted projects: %v", err)
	} else if len(recovered) > 0 {
		fmt.Printf("✓ Recovered %d interrupted project(s): %v\n\n", len(recovered), recovered)
	}

	switch os.Args[1] {
	case "start":
		handleStart(ctx, e)
	case "status":
		handleStatus(ctx, e)
	case "approve":
		handleResolve(ctx, e, cfg, true)
	case "reject":
		handleResolve(ctx, e, cfg, false)
	case "cancel":
		handleCancel(ctx, e)
	case "version":
		fmt.Printf("orchestrator version %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
	}
}

// buildEngine wires every C1-C9 collaborator the way pkg/engine's own
// tests do, selecting the state backend from cfg and pointing the LLM
// client at OPENCODE_BASE_URL (default http://localhost) on port 4096.
func buildEngine(cfg *config.Config) (*engine.Engine, error) {
	store, err := buildStore(cfg.State)
	if err != nil {
		return nil, err
	}

	reg, err := agent.NewRegistry(os.Getenv("SWARMFORGE_AGENTS_DIR"))
	if err != nil {
		return nil, fmt.Errorf("loading agent definitions: %w", err)
	}

	scaffold.RegisterAll(reg, nil)

	client := agentclient.NewClient(openCodeBaseURL(), openCodePort())
	agent.RegisterLLMDefaults(reg, client)

	opts := runner.Options{
		Timeout:    cfg.Orchestrator.DefaultTimeout(),
		MaxRetries: cfg.Orchestrator.MaxRetries,
	}

	executor := phase.New(reg, runner.New(), dag.NewResolver(), parallel.New(), opts)

	return engine.New(store, approval.New(), executor, domain.NewDetector()), nil
}

func buildStore(cfg config.StateConfig) (state.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return state.NewSQLiteStore(cfg.SQLitePath)
	default:
		return state.NewMemoryStore(), nil
	}
}

func openCodeBaseURL() string {
	if v := os.Getenv("OPENCODE_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost"
}

func openCodePort() int {
	return 4096
}

func handleStart(ctx context.Context, e *engine.Engine) {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	projectID := fs.String("project", "", "project id (required)")
	mode := fs.String("mode", string(types.ModeDiscovery), "workflow mode: discovery or direct")
	inputFile := fs.String("input", "", "path to a JSON file of input data (optional)")
	fs.Parse(os.Args[2:])

	if *projectID == "" {
		log.Fatal("start requires -project")
	}

	inputData := map[string]any{}
	if *inputFile != "" {
		data, err := os.ReadFile(*inputFile)
		if err != nil {
			log.Fatalf("reading input file: %v", err)
		}
		if err := json.Unmarshal(data, &inputData); err != nil {
			log.Fatalf("parsing input file: %v", err)
		}
	}

	execCtx, err := e.StartWorkflow(ctx, *projectID, types.Mode(*mode), inputData)
	if err != nil {
		log.Fatalf("starting workflow: %v", err)
	}

	fmt.Printf("✓ Started project %s in %s mode (status: %s)\n", execCtx.ProjectID, execCtx.Mode, execCtx.Status)
}

func handleStatus(ctx context.Context, e *engine.Engine) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	projectID := fs.String("project", "", "project id (required)")
	fs.Parse(os.Args[2:])

	if *projectID == "" {
		log.Fatal("status requires -project")
	}

	execCtx, err := e.GetProgress(ctx, *projectID)
	if err != nil {
		log.Fatalf("loading progress: %v", err)
	}
	if execCtx == nil {
		fmt.Printf("No such project: %s\n", *projectID)
		return
	}

	fmt.Printf("📊 Project: %s\n", execCtx.ProjectID)
	fmt.Printf("  Status:          %s\n", execCtx.Status)
	fmt.Printf("  Current phase:   %s\n", execCtx.CurrentPhase)
	fmt.Printf("  Completed:       %v\n", execCtx.CompletedPhases)
	if execCtx.Error != "" {
		fmt.Printf("  Error:           %s\n", execCtx.Error)
	}
}

func handleResolve(ctx context.Context, e *engine.Engine, cfg *config.Config, approve bool) {
	name := "approve"
	if !approve {
		name = "reject"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	projectID := fs.String("project", "", "project id (required)")
	feedback := fs.String("feedback", "", "reviewer feedback")
	fs.Parse(os.Args[2:])

	if *projectID == "" {
		log.Fatalf("%s requires -project", name)
	}

	if !approve && len(*feedback) < cfg.Orchestrator.RejectionFeedbackMinLen {
		log.Fatalf("rejection feedback must be at least %d characters", cfg.Orchestrator.RejectionFeedbackMinLen)
	}

	var resolved bool
	var err error
	if approve {
		resolved, err = e.Approvals().Approve(ctx, *projectID, *feedback)
	} else {
		resolved, err = e.Approvals().Reject(ctx, *projectID, *feedback)
	}
	if err != nil {
		log.Fatalf("resolving gate: %v", err)
	}
	if !resolved {
		fmt.Printf("Project %s has no pending approval gate\n", *projectID)
		return
	}

	resumed, err := e.ResumeWorkflow(ctx, *projectID)
	if err != nil {
		log.Fatalf("resuming workflow: %v", err)
	}

	fmt.Printf("✓ %s recorded for %s, resumed at phase %q (status: %s)\n", name, *projectID, resumed.CurrentPhase, resumed.Status)
}

func handleCancel(ctx context.Context, e *engine.Engine) {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	projectID := fs.String("project", "", "project id (required)")
	fs.Parse(os.Args[2:])

	if *projectID == "" {
		log.Fatal("cancel requires -project")
	}

	cancelled, err := e.CancelProject(ctx, *projectID)
	if err != nil {
		log.Fatalf("cancelling project: %v", err)
	}
	if !cancelled {
		fmt.Printf("Project %s was already in a terminal state\n", *projectID)
		return
	}
	fmt.Printf("✓ Project %s cancelled\n", *projectID)
}

func printUsage() {
	fmt.Println("Usage: orchestrator <command> [flags]")
	fmt.Println("\nCommands:")
	fmt.Println("  start   -project ID [-mode discovery|direct] [-input file.json]")
	fmt.Println("  status  -project ID")
	fmt.Println("  approve -project ID [-feedback \"...\"]")
	fmt.Println("  reject  -project ID -feedback \"...\"")
	fmt.Println("  cancel  -project ID")
	fmt.Println("  version")
	fmt.Println("  help")
}
