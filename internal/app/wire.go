package app

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"releasetrain/internal/domain"
	schedulesvc "releasetrain/internal/services/schedule"
	trainsvc "releasetrain/internal/services/train"
	"releasetrain/internal/store"
	"releasetrain/internal/tracker"
)

// Wire bundles the services and tracker client for the CLI.
type Wire struct {
	Config    Config
	Trains    domain.TrainService
	Schedule  domain.ScheduleService
	Tracker   domain.MilestoneTracker
	// Workflows is nil unless the tracker is GitHub.
	Workflows domain.WorkflowDispatcher
	Log       *slog.Logger
}

// WireOptions carries process-level dependencies. Zero values pick defaults.
type WireOptions struct {
	HTTP      *http.Client     // defaults to a client with a 30s timeout
	LogOutput io.Writer        // defaults to os.Stderr
	Now       func() time.Time // defaults to time.Now
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, opts WireOptions) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := cfg.LogLevel()
	week, _ := cfg.WeekOfMonth()
	day, _ := cfg.DayOfWeek()

	logOut := opts.LogOutput
	if logOut == nil {
		logOut = os.Stderr
	}
	logger := NewLogger(level, logOut)

	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var tr domain.MilestoneTracker
	var workflows domain.WorkflowDispatcher
	switch cfg.Tracker.Kind {
	case TrackerGitHub:
		gh := tracker.NewGitHub(cfg.Tracker.URL, cfg.Tracker.Token, httpClient)
		tr, workflows = gh, gh
	default:
		tr = store.NewMilestoneFileStore(cfg.Tracker.Dir)
	}
	logger.Debug("wired tracker", "kind", cfg.Tracker.Kind)

	trains := trainsvc.New(trainsvc.WithClock(now))
	schedule := schedulesvc.New(trains, tr, week, day,
		schedulesvc.WithClock(now),
		schedulesvc.WithLogger(logger),
	)

	return &Wire{
		Config:    cfg,
		Trains:    trains,
		Schedule:  schedule,
		Tracker:   tr,
		Workflows: workflows,
		Log:       logger,
	}, nil
}
