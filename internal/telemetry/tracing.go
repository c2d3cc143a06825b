// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package telemetry wraps the OpenTelemetry tracer used to open spans
// around phase and agent execution.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StartSpan starts a new span with the given name and options.
func StartSpan(ctx context.Context, tracerName, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	return tracer.Start(ctx, spanName, opts...)
}

// SpanFromContext returns the current span from the context.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// Attribute keys for phase and agent execution spans.
const (
	AttrProjectID  = attribute.Key("swarmforge.project_id")
	AttrPhaseName  = attribute.Key("swarmforge.phase_name")
	AttrAgentID    = attribute.Key("swarmforge.agent_id")
	AttrAttempt    = attribute.Key("swarmforge.attempt")
	AttrPhaseModel = attribute.Key("swarmforge.execution_model")
)

// PhaseAttrs creates attributes for a phase execution span.
func PhaseAttrs(projectID, phaseName string, model attribute.KeyValue) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrProjectID.String(projectID),
		AttrPhaseName.String(phaseName),
		model,
	}
}

// AgentAttrs creates attributes for a single agent invocation span.
func AgentAttrs(agentID string, attempt int) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrAgentID.String(agentID),
		AttrAttempt.Int(attempt),
	}
}
