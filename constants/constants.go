package constants

import "time"

const (
	AwsRegionDefault            = "eu-west-2"
	ExtractionBucketDefault     = "extraction-bucket-sorceress"
	TransformationBucketDefault = "transformation-bucket-sorceress"
	WarehouseBucketDefault      = "warehouse-bucket-sorceress"
	ManifestKey                 = "used_parquet_files.txt"
	WatermarkParameterDefault   = "latest_date"
	SourceSecretIdDefault       = "totesysinfo"
	WarehouseSecretIdDefault    = "warehouseinfo"
	TimeFormatWatermark         = "2006-01-02 15:04:05.000000" // format of the externally stored watermark parameter.
	TimeFormatSourceStamp       = "2006-01-02T15:04:05.000"    // timestamps inside extraction blob JSON (no zone).
	TimeFormatDate              = "2006-01-02"
	TimeFormatTimeOfDay         = "15:04:05.000"
	ExtractionBlobExtension     = "json"
	TransformationBlobExtension = "parquet"
	LoadCommitBatchSize         = 100000 // rows per commit batch when applying a blob to the warehouse.
	LoadStatementBatchSize      = 1000   // rows inlined per generated INSERT statement.
	DateDimensionStart          = "2022-11-01"
	DateDimensionDaysDefault    = 1000
	MigrationMetadataTable      = "_prisma_migrations" // excluded from source table discovery.
	EnvVarPrefix                = "TOTESYS"
	ConfigDirName               = ".totesys-pipeline"
	ConfigFileName              = "config.yaml"
	DimensionBlobPrefix         = "dim"
	FactBlobPrefix              = "facts"
	WatermarkLabelLength        = 26 // len("2006-01-02 15:04:05.000000"), used to recover labels from blob keys.
	ScheduleIntervalMinsDefault = 30
	LogLevelDefault             = "info"
	LogServiceNameDefault       = "totesys-pipeline"
)

// SentinelEpoch seeds the latest-update search across source tables.
// Comparisons against it are strictly greater-than.
var SentinelEpoch = time.Date(1990, 11, 3, 14, 20, 49, 962000000, time.UTC)
