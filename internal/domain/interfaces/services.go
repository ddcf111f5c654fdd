package interfaces

import (
	"context"

	domaintypes "releasetrain/internal/domain/types"
)

// TrainService resolves release train specs and computes their dates.
type TrainService interface {
	Explicit(
		train domaintypes.Train,
		version string,
		week domaintypes.WeekOfMonth,
		day domaintypes.DayOfWeek,
		year int,
	) (domaintypes.Spec, error)
	FromSearch(
		version string,
		week domaintypes.WeekOfMonth,
		day domaintypes.DayOfWeek,
		start domaintypes.Date,
	) (domaintypes.Spec, error)
	NextTrain(start domaintypes.Date) (domaintypes.Train, int, error)

	TrainDates(spec domaintypes.Spec) domaintypes.TrainDates
	IsTrainDate(spec domaintypes.Spec, label string, candidate domaintypes.Date) bool
	NextReleaseDate(spec domaintypes.Spec, start domaintypes.Date) (domaintypes.Date, error)
}

// ScheduleService publishes release trains as tracker milestones.
type ScheduleService interface {
	ScheduleTrain(
		ctx context.Context,
		repo domaintypes.RepositoryRef,
		version string,
	) ([]domaintypes.Milestone, error)
	ScheduleNextRelease(
		ctx context.Context,
		repo domaintypes.RepositoryRef,
		currentVersion string,
	) ([]domaintypes.Milestone, error)
	NextReleaseMilestone(
		ctx context.Context,
		repo domaintypes.RepositoryRef,
		currentVersion string,
	) (string, error)
	IsDueToday(ctx context.Context, repo domaintypes.RepositoryRef, version string) (bool, error)
	HasNoOpenIssues(ctx context.Context, repo domaintypes.RepositoryRef, version string) (bool, error)
}
