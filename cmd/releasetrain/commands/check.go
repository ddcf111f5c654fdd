package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"releasetrain/internal/domain"
	"releasetrain/internal/domain/types"
)

func isTrainDateCmd() *cobra.Command {
	var (
		trainNum int
		year     int
	)
	cmd := &cobra.Command{
		Use:   "is-train-date VERSION LABEL DATE",
		Short: "Check whether DATE is the scheduled date of milestone LABEL",
		Long: `Check whether DATE is the scheduled date of milestone LABEL, e.g.

  releasetrain is-train-date 1.0.0 1.0.0-M1 2022-01-17

The train defaults to the one containing DATE's year and month.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, label := args[0], args[1]
			candidate, err := types.ParseDate(args[2])
			if err != nil {
				return err
			}
			checkVersion(v)
			week, day := rule()

			train := domain.Train(trainNum)
			if train == 0 {
				train = trainOf(candidate)
			}
			if year == 0 {
				year = candidate.Year
			}
			spec, err := appCtx.Trains.Explicit(train, v, week, day, year)
			if err != nil {
				return err
			}
			return renderBool(cmd.OutOrStdout(), "train_date", appCtx.Trains.IsTrainDate(spec, label, candidate))
		},
	}
	cmd.Flags().IntVar(&trainNum, "train", 0, "train number (default from DATE)")
	cmd.Flags().IntVar(&year, "year", 0, "train year (default from DATE)")
	return cmd
}

// trainOf returns the train whose months cover d; June and December go to
// the train that just ended.
func trainOf(d domain.Date) domain.Train {
	if d.Month < 7 {
		return types.TrainOne
	}
	return types.TrainTwo
}

func nextReleaseDateCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "next-release-date VERSION",
		Short: "Print the next patch release date after --from",
		Long: `Print the first scheduled weekday strictly after --from (default today)
that falls in an even month. Patch releases ship on these dates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := args[0]
			checkVersion(v)
			start, err := parseFrom(from)
			if err != nil {
				return err
			}
			week, day := rule()
			spec, err := appCtx.Trains.FromSearch(v, week, day, start)
			if err != nil {
				return err
			}
			next, err := appCtx.Trains.NextReleaseDate(spec, start)
			if err != nil {
				return err
			}
			out := domain.TrainDate{Label: v, Date: next}
			return render(cmd.OutOrStdout(), out, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s\t%s\n", out.Label, out.Date)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start date, "+types.DateLayout+" (default today)")
	return cmd
}
