package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load new transformation blobs into the warehouse",
	Long: `Insert every transformation blob not yet in the manifest into its
warehouse table, dimensions before facts, and record each applied blob in
the manifest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newPipelineRuntime()
		if err != nil {
			return err
		}
		return r.runLoad(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
