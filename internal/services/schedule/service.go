package schedule

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"releasetrain/internal/domain"
	"releasetrain/internal/domain/types"
	"releasetrain/internal/version"
)

// ErrMilestoneNotFound is returned when no open milestone has the requested
// title.
var ErrMilestoneNotFound = errors.New("milestone not found")

// Service implements domain.ScheduleService.
type Service struct {
	trains  domain.TrainService
	tracker domain.MilestoneTracker
	week    domain.WeekOfMonth
	day     domain.DayOfWeek
	now     func() time.Time
	log     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a Service that schedules trains on the given week and weekday.
func New(
	trains domain.TrainService,
	tracker domain.MilestoneTracker,
	week domain.WeekOfMonth,
	day domain.DayOfWeek,
	opts ...Option,
) *Service {
	s := &Service{
		trains:  trains,
		tracker: tracker,
		week:    week,
		day:     day,
		now:     time.Now,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// today is the current UTC calendar date, the zone trackers store due dates in.
func (s *Service) today() domain.Date {
	return types.DateOf(s.now().UTC())
}

// ScheduleTrain creates the M1, M2, M3, RC1 and GA milestones of the next
// train for version. Nothing is created when a milestone titled version
// already exists.
func (s *Service) ScheduleTrain(
	ctx context.Context,
	repo domain.RepositoryRef,
	v string,
) ([]domain.Milestone, error) {
	exists, err := s.hasMilestone(ctx, repo, v)
	if err != nil {
		return nil, err
	}
	if exists {
		s.log.Info("release train already scheduled", "repo", repo.String(), "version", v)
		return nil, nil
	}
	return s.createTrain(ctx, repo, v)
}

// NextReleaseMilestone returns the title of the next milestone to release
// for currentVersion. An open prerelease milestone of the same base version
// wins, earliest due date first; otherwise the base version itself.
func (s *Service) NextReleaseMilestone(
	ctx context.Context,
	repo domain.RepositoryRef,
	currentVersion string,
) (string, error) {
	base := version.Base(currentVersion)
	milestones, err := s.tracker.ListMilestones(ctx, repo)
	if err != nil {
		return "", fmt.Errorf("list milestones of %s: %w", repo, err)
	}

	var next *domain.Milestone
	for i := range milestones {
		m := &milestones[i]
		if !strings.HasPrefix(m.Title, base+"-") {
			continue
		}
		if next == nil || dueBefore(*m, *next) {
			next = m
		}
	}
	if next == nil {
		return base, nil
	}
	return next.Title, nil
}

// dueBefore orders milestones by due date, undated ones last, then by
// version precedence.
func dueBefore(a, b domain.Milestone) bool {
	switch {
	case a.DueOn.IsZero() != b.DueOn.IsZero():
		return !a.DueOn.IsZero()
	case !a.DueOn.Equal(b.DueOn):
		return a.DueOn.Before(b.DueOn)
	}
	return version.Compare(a.Title, b.Title) < 0
}

// ScheduleNextRelease makes sure the release after currentVersion is on the
// tracker. Prereleases are already part of a scheduled train. A minor
// release (x.y.0) gets a whole train; a patch release gets a single GA
// milestone on the next even-month release date.
func (s *Service) ScheduleNextRelease(
	ctx context.Context,
	repo domain.RepositoryRef,
	currentVersion string,
) ([]domain.Milestone, error) {
	next, err := s.NextReleaseMilestone(ctx, repo, currentVersion)
	if err != nil {
		return nil, err
	}
	if version.IsPreRelease(next) {
		s.log.Info("next release is already scheduled", "repo", repo.String(), "milestone", next)
		return nil, nil
	}

	exists, err := s.hasMilestone(ctx, repo, next)
	if err != nil {
		return nil, err
	}
	if exists {
		s.log.Info("next release is already scheduled", "repo", repo.String(), "milestone", next)
		return nil, nil
	}

	if version.IsMinorRelease(next) {
		return s.createTrain(ctx, repo, next)
	}

	spec, err := s.trains.FromSearch(next, s.week, s.day, s.today())
	if err != nil {
		return nil, err
	}
	due, err := s.trains.NextReleaseDate(spec, s.today())
	if err != nil {
		return nil, err
	}
	m, err := s.create(ctx, repo, types.NewMilestone(next, due))
	if err != nil {
		return nil, err
	}
	return []domain.Milestone{m}, nil
}

// IsDueToday reports whether the milestone titled v is due today or overdue.
func (s *Service) IsDueToday(ctx context.Context, repo domain.RepositoryRef, v string) (bool, error) {
	m, err := s.find(ctx, repo, v)
	if err != nil {
		return false, err
	}
	if m.DueOn.IsZero() {
		return false, nil
	}
	return !m.DueDate().After(s.today()), nil
}

// HasNoOpenIssues reports whether the milestone titled v has no open issues.
func (s *Service) HasNoOpenIssues(ctx context.Context, repo domain.RepositoryRef, v string) (bool, error) {
	m, err := s.find(ctx, repo, v)
	if err != nil {
		return false, err
	}
	return m.OpenIssues == 0, nil
}

func (s *Service) createTrain(ctx context.Context, repo domain.RepositoryRef, v string) ([]domain.Milestone, error) {
	spec, err := s.trains.FromSearch(v, s.week, s.day, s.today())
	if err != nil {
		return nil, err
	}
	s.log.Debug("resolved release train", "spec", spec.String())

	dates := s.trains.TrainDates(spec)
	created := make([]domain.Milestone, 0, len(dates))
	for _, td := range dates {
		m, err := s.create(ctx, repo, types.NewMilestone(td.Label, td.Date))
		if err != nil {
			return created, err
		}
		created = append(created, m)
	}
	return created, nil
}

func (s *Service) create(ctx context.Context, repo domain.RepositoryRef, m domain.Milestone) (domain.Milestone, error) {
	out, err := s.tracker.CreateMilestone(ctx, repo, m)
	if err != nil {
		return domain.Milestone{}, fmt.Errorf("create milestone %s in %s: %w", m.Title, repo, err)
	}
	s.log.Info("created milestone", "repo", repo.String(), "title", out.Title, "due_on", m.DueDate().String())
	return out, nil
}

func (s *Service) hasMilestone(ctx context.Context, repo domain.RepositoryRef, title string) (bool, error) {
	_, err := s.find(ctx, repo, title)
	if errors.Is(err, ErrMilestoneNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service) find(ctx context.Context, repo domain.RepositoryRef, title string) (domain.Milestone, error) {
	milestones, err := s.tracker.ListMilestones(ctx, repo)
	if err != nil {
		return domain.Milestone{}, fmt.Errorf("list milestones of %s: %w", repo, err)
	}
	for _, m := range milestones {
		if m.Title == title {
			return m, nil
		}
	}
	return domain.Milestone{}, fmt.Errorf("%w: %s in %s", ErrMilestoneNotFound, title, repo)
}

var _ domain.ScheduleService = (*Service)(nil)
