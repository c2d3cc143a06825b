// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package temporal

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"swarmforge/pkg/types"
)

func successResult() types.PhaseResult {
	return types.PhaseResult{Status: "completed", AgentResults: map[string]types.AgentOutput{}}
}

func TestProjectWorkflowDirectRunsToCompletion(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()

	activities := &ProjectActivities{}
	env.OnActivity(activities.ExecutePhase, mock.Anything, mock.Anything, mock.Anything).Return(successResult(), nil)

	env.ExecuteWorkflow(ProjectWorkflow, ProjectWorkflowInput{
		ProjectID: "proj-direct",
		Mode:      types.ModeDirect,
		InputData: map[string]any{},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result types.ExecutionContext
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, types.StatusCompleted, result.Status)
	require.ElementsMatch(t, []string{"input", "architecture_design", "scaffolding", "summary"}, result.CompletedPhases)
}

func TestProjectWorkflowSuspendsAndResumesOnApproval(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()

	activities := &ProjectActivities{}
	env.OnActivity(activities.ExecutePhase, mock.Anything, mock.Anything, mock.Anything).Return(successResult(), nil)

	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(ApprovalSignalName, ApprovalSignal{Approved: true})
	}, 0)
	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(ApprovalSignalName, ApprovalSignal{Approved: true})
	}, 0)

	env.ExecuteWorkflow(ProjectWorkflow, ProjectWorkflowInput{
		ProjectID: "proj-discovery",
		Mode:      types.ModeDiscovery,
		InputData: map[string]any{},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result types.ExecutionContext
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, types.StatusCompleted, result.Status)
}

func TestProjectWorkflowRejectionAwaitsFreshApproval(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()

	activities := &ProjectActivities{}
	env.OnActivity(activities.ExecutePhase, mock.Anything, mock.Anything, mock.Anything).Return(successResult(), nil)

	// A rejection must leave the workflow waiting at awaiting_approval
	// rather than failing it; a later approval on the same gate lets it
	// proceed to completion.
	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(ApprovalSignalName, ApprovalSignal{Approved: false, Feedback: "needs more detail, try again"})
	}, 0)
	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(ApprovalSignalName, ApprovalSignal{Approved: true})
	}, 0)
	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(ApprovalSignalName, ApprovalSignal{Approved: true})
	}, 0)

	env.ExecuteWorkflow(ProjectWorkflow, ProjectWorkflowInput{
		ProjectID: "proj-rejected",
		Mode:      types.ModeDiscovery,
		InputData: map[string]any{},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result types.ExecutionContext
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, types.StatusCompleted, result.Status)
	require.Empty(t, result.Error)
}

func TestProjectWorkflowProgressQuery(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()

	activities := &ProjectActivities{}
	env.OnActivity(activities.ExecutePhase, mock.Anything, mock.Anything, mock.Anything).Return(successResult(), nil)

	env.RegisterDelayedCallback(func() {
		val, err := env.QueryWorkflow(ProgressQueryName)
		require.NoError(t, err)

		var snapshot types.ExecutionContext
		require.NoError(t, val.Get(&snapshot))
		require.Equal(t, "proj-query", snapshot.ProjectID)

		env.SignalWorkflow(ApprovalSignalName, ApprovalSignal{Approved: true})
	}, 0)
	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(ApprovalSignalName, ApprovalSignal{Approved: true})
	}, 0)

	env.ExecuteWorkflow(ProjectWorkflow, ProjectWorkflowInput{
		ProjectID: "proj-query",
		Mode:      types.ModeDiscovery,
		InputData: map[string]any{},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
}
