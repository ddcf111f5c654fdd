package interfaces

import (
	"context"

	domaintypes "releasetrain/internal/domain/types"
)

// MilestoneTracker is how we read and create milestones on an issue tracker.
type MilestoneTracker interface {
	// ListMilestones returns the open milestones of repo.
	ListMilestones(ctx context.Context, repo domaintypes.RepositoryRef) ([]domaintypes.Milestone, error)
	CreateMilestone(
		ctx context.Context,
		repo domaintypes.RepositoryRef,
		milestone domaintypes.Milestone,
	) (domaintypes.Milestone, error)
}

// WorkflowDispatcher starts CI workflows, e.g. the job that performs a
// release.
type WorkflowDispatcher interface {
	// DispatchWorkflow fires a workflow_dispatch event for workflow (a file
	// name such as "release-next-version.yml") on ref.
	DispatchWorkflow(ctx context.Context, repo domaintypes.RepositoryRef, workflow, ref string) error
}
