// Package config resolves pipeline configuration from an optional YAML file
// in the user's home directory, a .env file, and environment variables, in
// that order (env wins).
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strconv"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/joho/godotenv"

	"github.com/alixiazul/data-engineering-project/constants"
	"github.com/alixiazul/data-engineering-project/helper"
)

type PipelineConfig struct {
	Region               string `mapstructure:"region"`
	ExtractionBucket     string `mapstructure:"extractionBucket"`
	TransformationBucket string `mapstructure:"transformationBucket"`
	WarehouseBucket      string `mapstructure:"warehouseBucket"`
	SourceSecretId       string `mapstructure:"sourceSecretId"`
	WarehouseSecretId    string `mapstructure:"warehouseSecretId"`
	WatermarkParameter   string `mapstructure:"watermarkParameter"`
	LogLevel             string `mapstructure:"logLevel"`
	DateDays             int    `mapstructure:"dateDays"`
	DateEndDate          string `mapstructure:"dateEndDate"` // optional YYYY-MM-DD; bounds the date dimension instead of DateDays.
	ScheduleIntervalMins int    `mapstructure:"scheduleIntervalMins"`
}

// FileNotFoundError denotes failing to find a configuration file.
type FileNotFoundError struct {
	name string
}

func (f FileNotFoundError) Error() string {
	return fmt.Sprintf("config file %q not found", f.name)
}

func defaults() PipelineConfig {
	return PipelineConfig{
		Region:               constants.AwsRegionDefault,
		ExtractionBucket:     constants.ExtractionBucketDefault,
		TransformationBucket: constants.TransformationBucketDefault,
		WarehouseBucket:      constants.WarehouseBucketDefault,
		SourceSecretId:       constants.SourceSecretIdDefault,
		WarehouseSecretId:    constants.WarehouseSecretIdDefault,
		WatermarkParameter:   constants.WatermarkParameterDefault,
		LogLevel:             constants.LogLevelDefault,
		DateDays:             constants.DateDimensionDaysDefault,
		ScheduleIntervalMins: constants.ScheduleIntervalMinsDefault,
	}
}

// Load resolves the effective pipeline configuration.
func Load() (PipelineConfig, error) {
	cfg := defaults()
	_ = godotenv.Load() // a missing .env file is fine.
	if err := applyConfigFile(&cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyConfigFile(cfg *PipelineConfig) error {
	home, err := homedir.Dir()
	if err != nil {
		return errors.Wrap(err, "resolving home directory")
	}
	fullPath := path.Join(home, constants.ConfigDirName, constants.ConfigFileName)
	data, err := ioutil.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) { // config file is optional...
			return nil
		}
		return errors.Wrapf(err, "reading config file %v", fullPath)
	}
	raw := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(err, "parsing config file %v", fullPath)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return errors.Wrapf(decoder.Decode(raw), "decoding config file %v", fullPath)
}

func applyEnv(cfg *PipelineConfig) {
	cfg.Region = helper.ReadValueFromEnvWithDefault(helper.GetPipelineEnvVarName("region"), cfg.Region)
	cfg.ExtractionBucket = helper.ReadValueFromEnvWithDefault(helper.GetPipelineEnvVarName("extraction-bucket"), cfg.ExtractionBucket)
	cfg.TransformationBucket = helper.ReadValueFromEnvWithDefault(helper.GetPipelineEnvVarName("transformation-bucket"), cfg.TransformationBucket)
	cfg.WarehouseBucket = helper.ReadValueFromEnvWithDefault(helper.GetPipelineEnvVarName("warehouse-bucket"), cfg.WarehouseBucket)
	cfg.SourceSecretId = helper.ReadValueFromEnvWithDefault(helper.GetPipelineEnvVarName("source-secret-id"), cfg.SourceSecretId)
	cfg.WarehouseSecretId = helper.ReadValueFromEnvWithDefault(helper.GetPipelineEnvVarName("warehouse-secret-id"), cfg.WarehouseSecretId)
	cfg.WatermarkParameter = helper.ReadValueFromEnvWithDefault(helper.GetPipelineEnvVarName("watermark-parameter"), cfg.WatermarkParameter)
	cfg.LogLevel = helper.ReadValueFromEnvWithDefault(helper.GetPipelineEnvVarName("log-level"), cfg.LogLevel)
	cfg.DateEndDate = helper.ReadValueFromEnvWithDefault(helper.GetPipelineEnvVarName("date-end-date"), cfg.DateEndDate)
	cfg.DateDays = readIntFromEnv("date-days", cfg.DateDays)
	cfg.ScheduleIntervalMins = readIntFromEnv("schedule-interval-mins", cfg.ScheduleIntervalMins)
}

func readIntFromEnv(name string, defaultValue int) int {
	v := helper.ReadValueFromEnvWithDefault(helper.GetPipelineEnvVarName(name), "")
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}
