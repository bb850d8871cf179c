package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Shape new extraction blobs into dimension and fact blobs",
	Long: `Diff the extraction bucket against the transformation bucket and shape
every new JSON blob into its dimension or fact parquet blob. The date
dimension is generated once, on the first run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newPipelineRuntime()
		if err != nil {
			return err
		}
		return r.runTransform(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(transformCmd)
}
