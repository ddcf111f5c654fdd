package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

const defaultWatchSpec = "0 9 * * 1-5"

func watchCmd() *cobra.Command {
	var spec string
	cmd := &cobra.Command{
		Use:   "watch CURRENT_VERSION",
		Short: "Run schedule-next now and then on a cron schedule until interrupted",
		Long: `Run schedule-next for CURRENT_VERSION once, then again at every tick of
--cron (standard 5-field syntax or @every/@daily descriptors, in UTC)
until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repository()
			if err != nil {
				return err
			}
			v := args[0]
			checkVersion(v)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			job := func() {
				created, err := appCtx.Schedule.ScheduleNextRelease(ctx, repo, v)
				if err != nil {
					appCtx.Log.Error("schedule next release failed", "repo", repo.String(), "version", v, "err", err)
					return
				}
				if len(created) > 0 {
					_ = renderMilestones(cmd.OutOrStdout(), repo, created)
				}
			}
			return runCron(ctx, spec, appCtx.Log, job)
		},
	}
	cmd.Flags().StringVar(&spec, "cron", defaultWatchSpec, "cron schedule, evaluated in UTC")
	return cmd
}

// runCron runs job once, then on spec until ctx is done. Overlapping runs are
// skipped.
func runCron(ctx context.Context, spec string, logger *slog.Logger, job func()) error {
	cl := cronLogger{logger}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddFunc(spec, job); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	job()
	c.Start()
	logger.Info("watching", "cron", spec)
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// cronLogger adapts slog to cron.Logger. Scheduler chatter goes to debug.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}

var _ cron.Logger = cronLogger{}
