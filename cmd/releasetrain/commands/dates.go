package commands

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"releasetrain/internal/domain"
	"releasetrain/internal/domain/types"
)

type trainOutput struct {
	Train   string            `json:"train" yaml:"train"`
	Year    int               `json:"year" yaml:"year"`
	Version string            `json:"version" yaml:"version"`
	Dates   domain.TrainDates `json:"dates" yaml:"dates"`
}

func datesCmd() *cobra.Command {
	var (
		trainNum int
		year     int
		from     string
	)
	cmd := &cobra.Command{
		Use:   "dates VERSION",
		Short: "Print the milestone dates of a release train",
		Long: `Print the M1, M2, M3, RC1 and GA dates of a release train.

With --train and --year the train is fixed; otherwise the next train
starting on or after --from (default today) is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := args[0]
			checkVersion(v)
			week, day := rule()

			var spec domain.Spec
			var err error
			if cmd.Flags().Changed("train") || cmd.Flags().Changed("year") {
				if cmd.Flags().Changed("from") {
					return errors.New("--from cannot be combined with --train or --year")
				}
				spec, err = appCtx.Trains.Explicit(domain.Train(trainNum), v, week, day, year)
			} else {
				var start domain.Date
				if start, err = parseFrom(from); err != nil {
					return err
				}
				spec, err = appCtx.Trains.FromSearch(v, week, day, start)
			}
			if err != nil {
				return err
			}

			out := trainOutput{
				Train:   spec.Train().String(),
				Year:    spec.Year(),
				Version: spec.Version(),
				Dates:   appCtx.Trains.TrainDates(spec),
			}
			return render(cmd.OutOrStdout(), out, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintf(tw, "# %s\n", spec)
				for _, d := range out.Dates {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Label, d.Date, d.Date.Weekday())
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&trainNum, "train", 0, "train number: 1 (Jan-May) or 2 (Jul-Nov)")
	cmd.Flags().IntVar(&year, "year", 0, "train year")
	cmd.Flags().StringVar(&from, "from", "", "search start date, "+types.DateLayout+" (default today)")
	return cmd
}

func nextTrainCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "next-train",
		Short: "Print the next train number and year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseFrom(from)
			if err != nil {
				return err
			}
			train, year, err := appCtx.Trains.NextTrain(start)
			if err != nil {
				return err
			}
			out := struct {
				Train int `json:"train" yaml:"train"`
				Year  int `json:"year" yaml:"year"`
			}{int(train), year}
			return render(cmd.OutOrStdout(), out, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "train %s %d\n", train, year)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "search start date, "+types.DateLayout+" (default today)")
	return cmd
}
