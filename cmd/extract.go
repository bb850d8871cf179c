package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract new source rows to JSON blobs in the extraction bucket",
	Long: `Read the stored watermark, find source rows updated since, and write one
JSON blob per table with new data. The watermark is advanced once, after
every table has been extracted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newPipelineRuntime()
		if err != nil {
			return err
		}
		return r.runExtract(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
