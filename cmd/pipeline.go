package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run extract, transform and load back to back",
	Long:  `Run one full cycle of the pipeline: extract, then transform, then load.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newPipelineRuntime()
		if err != nil {
			return err
		}
		return r.runPipeline(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
}
