package commands

import (
	"time"

	"github.com/spf13/cobra"

	"releasetrain/internal/app"
)

var (
	configPath string
	weekFlag   int
	dayFlag    int
	outputFlag string
	logLevel   string
	token      string

	appCtx *app.Wire

	// now is the clock handed to the services.
	now = time.Now
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "releasetrain",
		Short:         "Compute and schedule release train milestones",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(outputFlag); err != nil {
				return err
			}

			var cfg app.Config
			var err error
			if cmd.Flags().Changed("config") {
				cfg, err = app.LoadConfig(configPath)
			} else {
				cfg, err = app.LoadConfigOrDefault(configPath)
			}
			if err != nil {
				return err
			}

			if weekFlag != 0 {
				cfg.ReleaseTrain.WeekOfMonth = weekFlag
			}
			if dayFlag != 0 {
				cfg.ReleaseTrain.DayOfWeek = dayFlag
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if token != "" {
				cfg.Tracker.Token = token
			}

			appCtx, err = app.NewWire(cfg, app.WireOptions{
				LogOutput: cmd.ErrOrStderr(),
				Now:       now,
			})
			return err
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", app.DefaultConfigPath, "config file")
	root.PersistentFlags().IntVar(&weekFlag, "week", 0, "week of month, 1-4 (default from config)")
	root.PersistentFlags().IntVar(&dayFlag, "day", 0, "day of week, 1 (Monday) to 5 (Friday) (default from config)")
	root.PersistentFlags().StringVarP(&outputFlag, "output", "o", outputText, "output format: text, json or yaml")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&token, "token", "", "tracker API token (or "+app.TokenEnv+")")

	root.AddCommand(
		datesCmd(),
		nextTrainCmd(),
		isTrainDateCmd(),
		nextReleaseDateCmd(),
		scheduleTrainCmd(),
		scheduleNextCmd(),
		nextMilestoneCmd(),
		dueTodayCmd(),
		noOpenIssuesCmd(),
		watchCmd(),
		triggerReleaseCmd(),
		nextSnapshotVersionCmd(),
	)
	return root
}
