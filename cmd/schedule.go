package cmd

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"
)

var scheduleIntervalMins int

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the full pipeline on an interval",
	Long: `Run the full pipeline immediately and then on an interval, until
interrupted. The interval defaults to the configured value and can be
overridden with --interval-mins.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newPipelineRuntime()
		if err != nil {
			return err
		}
		interval := scheduleIntervalMins
		if interval <= 0 {
			interval = r.cfg.ScheduleIntervalMins
		}
		s := gocron.NewScheduler(time.UTC)
		s.SingletonModeAll() // a slow cycle must not overlap the next one.
		_, err = s.Every(interval).Minutes().Do(func() {
			if err := runStage("pipeline"); err != nil {
				r.log.Error("pipeline run failed: ", err)
			}
		})
		if err != nil {
			return err
		}
		r.log.Info("running pipeline every ", interval, " minutes")
		s.StartBlocking()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().IntVar(&scheduleIntervalMins, "interval-mins", 0, "Minutes between pipeline runs (default from config)")
	applyEnvDefault(scheduleCmd.Flags(), "interval-mins")
}
