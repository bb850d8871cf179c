package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/alixiazul/data-engineering-project/helper"
)

// applyEnvDefault presets the named flag from its pipeline environment
// variable so cobra treats it as set and --help shows the effective value.
func applyEnvDefault(f *pflag.FlagSet, name string) {
	if v := helper.ReadValueFromEnvWithDefault(helper.GetPipelineEnvVarName(name), ""); v != "" {
		mustSetFlag(f, name, v)
	}
}

func mustSetFlag(f *pflag.FlagSet, name string, val string) {
	if err := f.Set(name, val); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
