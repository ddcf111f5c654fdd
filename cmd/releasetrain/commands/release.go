package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"releasetrain/internal/app"
	"releasetrain/internal/version"
)

const defaultReleaseWorkflow = "release-next-version.yml"

func triggerReleaseCmd() *cobra.Command {
	var (
		branch   string
		workflow string
	)
	cmd := &cobra.Command{
		Use:   "trigger-release --branch BRANCH",
		Short: "Dispatch the release workflow on BRANCH",
		Long: `Fire a GitHub Actions workflow_dispatch event for the release workflow
on BRANCH. Requires tracker.kind = "github".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repository()
			if err != nil {
				return err
			}
			if appCtx.Workflows == nil {
				return fmt.Errorf("%w: trigger-release needs tracker.kind = %q", app.ErrConfigValidation, app.TrackerGitHub)
			}
			if err := appCtx.Workflows.DispatchWorkflow(cmd.Context(), repo, workflow, branch); err != nil {
				return err
			}
			appCtx.Log.Info("dispatched workflow", "repo", repo.String(), "workflow", workflow, "ref", branch)

			out := map[string]string{"workflow": workflow, "ref": branch}
			return render(cmd.OutOrStdout(), out, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "dispatched %s on %s\n", workflow, branch)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&branch, "branch", "", "branch to release from")
	cmd.Flags().StringVar(&workflow, "workflow", defaultReleaseWorkflow, "workflow file name")
	_ = cmd.MarkFlagRequired("branch")
	return cmd
}

func nextSnapshotVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-snapshot-version CURRENT_VERSION",
		Short: "Print the development version that follows CURRENT_VERSION",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := version.NextSnapshot(args[0])
			if err != nil {
				return err
			}
			out := map[string]string{"version": next}
			return render(cmd.OutOrStdout(), out, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, next)
				return err
			})
		},
	}
}
