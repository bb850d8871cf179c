package cmd

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/alixiazul/data-engineering-project/helper"
)

var (
	// Default values may be set at compile time.
	version          = "0.1.0"
	buildDate        = "2022-11-03T14:20+0000"
	stackDumpOnPanic bool
)

var rootCmd = &cobra.Command{
	Use: "totesys-pipeline",
	Long: `Totesys data pipeline.

Moves sales data from the operational database into the warehouse in three
stages: extract new rows to JSON blobs, transform them into dimension and
fact blobs, and load new blobs into the warehouse. Run the stages
individually, run them back to back with 'pipeline', or keep them running
on an interval with 'schedule'.`,
}

func init() {
	cobra.EnableCommandSorting = false
	rootCmd.PersistentFlags().BoolVar(&stackDumpOnPanic, "print-stack", false, "Print a stack dump if there is a panic")
	_ = rootCmd.PersistentFlags().MarkHidden("print-stack")
}

// Execute runs the root command, or a single stage under the lambda runtime
// when TOTESYS_LAMBDA_STAGE is set (each stage was originally deployed as its
// own function).
func Execute() {
	if stage := helper.ReadValueFromEnvWithDefault(helper.GetPipelineEnvVarName("lambda-stage"), ""); stage != "" {
		lambda.Start(func() error { return runStage(stage) })
	} else {
		if err := rootCmd.Execute(); err != nil {
			// Execute() prints the error.
			os.Exit(1)
		}
	}
}
