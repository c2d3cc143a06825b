// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package config loads Swarmforge's orchestrator configuration from a
// YAML file, following the same search-path and defaulting conventions
// the teacher's coordination config loader used.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete orchestrator configuration.
type Config struct {
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
	State        StateConfig        `yaml:"state"`
	Temporal     TemporalConfig     `yaml:"temporal"`
}

// OrchestratorConfig holds the phase-execution tunables: per-attempt
// timeout, retry budget, backoff base, the minimum acceptable length for
// rejection feedback, and the domain detector's confidence threshold and
// expert cap. The binaries pass on only the timeout, retry budget and
// feedback minimum; BackoffBaseSeconds, ConfidenceThreshold and
// MaxExperts are loaded and defaulted but not used by pkg/runner or
// pkg/domain.
type OrchestratorConfig struct {
	DefaultTimeoutSeconds   int     `yaml:"default_timeout_seconds"`
	MaxRetries              int     `yaml:"max_retries"`
	BackoffBaseSeconds      int     `yaml:"backoff_base_seconds"`
	RejectionFeedbackMinLen int     `yaml:"rejection_feedback_min_length"`
	ConfidenceThreshold     float64 `yaml:"confidence_threshold"`
	MaxExperts              int     `yaml:"max_experts"`
}

// DefaultTimeout returns DefaultTimeoutSeconds as a time.Duration.
func (c OrchestratorConfig) DefaultTimeout() time.Duration {
	return time.Duration(c.DefaultTimeoutSeconds) * time.Second
}

// BackoffBase returns BackoffBaseSeconds as a time.Duration.
func (c OrchestratorConfig) BackoffBase() time.Duration {
	return time.Duration(c.BackoffBaseSeconds) * time.Second
}

// StateConfig selects and configures the state backend.
type StateConfig struct {
	// Backend is either "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path, used only when Backend is
	// "sqlite".
	SQLitePath string `yaml:"sqlite_path"`
}

// TemporalConfig holds connection settings for the durable Engine
// variant's worker. cmd/temporal-worker does not read it: the worker
// dials the SDK's default host and the "default" namespace.
type TemporalConfig struct {
	HostPort  string `yaml:"host_port"`
	Namespace string `yaml:"namespace"`
	TaskQueue string `yaml:"task_queue"`
}

// defaults mirror pkg/runner's DefaultTimeout/DefaultMaxRetries and
// pkg/domain's ConfidenceThreshold/MaxExperts constants, applied to any
// zero-valued field after a config file loads.
const (
	defaultTimeoutSeconds   = 300
	defaultMaxRetries       = 3
	defaultBackoffSeconds   = 1
	defaultFeedbackMinLen   = 10
	defaultConfidenceThresh = 0.30
	defaultMaxExperts       = 3
	defaultStateBackend     = "memory"
	defaultTaskQueue        = "swarmforge-project-task-queue"
	defaultNamespace        = "default"
)

// configFileName is the file Load searches for under each candidate
// directory.
const configFileName = "orchestrator.yaml"

// Load searches ./config/, then $HOME/.open-swarm/, for
// orchestrator.yaml, parses it, and applies defaults to any zero-valued
// tunable. It returns an error only if a candidate file exists but fails
// to parse, or if no candidate file exists at all.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	candidates := []string{
		filepath.Join(cwd, "config", configFileName),
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".open-swarm", configFileName))
	}

	var configPath string
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			configPath = candidate
			break
		}
	}
	if configPath == "" {
		return nil, fmt.Errorf("configuration file not found in any of: %v", candidates)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills any zero-valued tunable with its package default.
// Load calls this automatically; a caller building a Config without
// Load (e.g. when no config file is present) should call it directly.
func (c *Config) ApplyDefaults() {
	if c.Orchestrator.DefaultTimeoutSeconds == 0 {
		c.Orchestrator.DefaultTimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Orchestrator.MaxRetries == 0 {
		c.Orchestrator.MaxRetries = defaultMaxRetries
	}
	if c.Orchestrator.BackoffBaseSeconds == 0 {
		c.Orchestrator.BackoffBaseSeconds = defaultBackoffSeconds
	}
	if c.Orchestrator.RejectionFeedbackMinLen == 0 {
		c.Orchestrator.RejectionFeedbackMinLen = defaultFeedbackMinLen
	}
	if c.Orchestrator.ConfidenceThreshold == 0 {
		c.Orchestrator.ConfidenceThreshold = defaultConfidenceThresh
	}
	if c.Orchestrator.MaxExperts == 0 {
		c.Orchestrator.MaxExperts = defaultMaxExperts
	}
	if c.State.Backend == "" {
		c.State.Backend = defaultStateBackend
	}
	if c.Temporal.TaskQueue == "" {
		c.Temporal.TaskQueue = defaultTaskQueue
	}
	if c.Temporal.Namespace == "" {
		c.Temporal.Namespace = defaultNamespace
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Orchestrator.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1")
	}

	if c.Orchestrator.RejectionFeedbackMinLen < 1 {
		return fmt.Errorf("rejection_feedback_min_length must be at least 1")
	}

	switch c.State.Backend {
	case "memory":
	case "sqlite":
		if c.State.SQLitePath == "" {
			return fmt.Errorf("state.sqlite_path is required when state.backend is sqlite")
		}
	default:
		return fmt.Errorf("unknown state backend %q", c.State.Backend)
	}

	return nil
}
