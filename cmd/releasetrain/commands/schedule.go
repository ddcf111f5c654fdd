package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"releasetrain/internal/domain"
)

func scheduleTrainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule-train VERSION",
		Short: "Create the milestones of the next train for VERSION",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repository()
			if err != nil {
				return err
			}
			checkVersion(args[0])
			created, err := appCtx.Schedule.ScheduleTrain(cmd.Context(), repo, args[0])
			if err != nil {
				return err
			}
			return renderMilestones(cmd.OutOrStdout(), repo, created)
		},
	}
}

func scheduleNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule-next CURRENT_VERSION",
		Short: "Schedule the release that follows CURRENT_VERSION",
		Long: `Schedule the release that follows CURRENT_VERSION, usually the
project's x.y.z-SNAPSHOT version.

An x.y.0 version gets a full train (M1, M2, M3, RC1, GA). Other versions
get a single milestone on the next patch release date. Prereleases and
versions that already have a milestone are left alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repository()
			if err != nil {
				return err
			}
			checkVersion(args[0])
			created, err := appCtx.Schedule.ScheduleNextRelease(cmd.Context(), repo, args[0])
			if err != nil {
				return err
			}
			return renderMilestones(cmd.OutOrStdout(), repo, created)
		},
	}
}

func nextMilestoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-milestone CURRENT_VERSION",
		Short: "Print the title of the next milestone to release",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repository()
			if err != nil {
				return err
			}
			title, err := appCtx.Schedule.NextReleaseMilestone(cmd.Context(), repo, args[0])
			if err != nil {
				return err
			}
			out := map[string]string{"milestone": title}
			return render(cmd.OutOrStdout(), out, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, title)
				return err
			})
		},
	}
}

func dueTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "due-today VERSION",
		Short: "Check whether milestone VERSION is due today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repository()
			if err != nil {
				return err
			}
			due, err := appCtx.Schedule.IsDueToday(cmd.Context(), repo, args[0])
			if err != nil {
				return err
			}
			return renderBool(cmd.OutOrStdout(), "due_today", due)
		},
	}
}

func noOpenIssuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "no-open-issues VERSION",
		Short: "Check whether milestone VERSION has no open issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repository()
			if err != nil {
				return err
			}
			done, err := appCtx.Schedule.HasNoOpenIssues(cmd.Context(), repo, args[0])
			if err != nil {
				return err
			}
			return renderBool(cmd.OutOrStdout(), "no_open_issues", done)
		},
	}
}

func renderMilestones(w io.Writer, repo domain.RepositoryRef, created []domain.Milestone) error {
	if created == nil {
		created = []domain.Milestone{}
	}
	return render(w, created, func(w io.Writer) error {
		if len(created) == 0 {
			_, err := fmt.Fprintf(w, "nothing to schedule in %s\n", repo)
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, m := range created {
			fmt.Fprintf(tw, "%s\t%s\t#%d\n", m.Title, m.DueDate(), m.Number)
		}
		return tw.Flush()
	})
}
