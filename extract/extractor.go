// Package extract implements the watermark-driven incremental extraction of
// source tables into JSON blobs in the extraction bucket.
package extract

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/alixiazul/data-engineering-project/aws/s3"
	"github.com/alixiazul/data-engineering-project/lake"
	"github.com/alixiazul/data-engineering-project/logger"
	"github.com/alixiazul/data-engineering-project/rdbms"
)

type ExtractorConfig struct {
	Log       logger.Logger
	Source    rdbms.Source
	Bucket    s3.BasicClient // the extraction bucket.
	Watermark *lake.WatermarkStore
}

type Extractor struct {
	log       logger.Logger
	source    rdbms.Source
	bucket    s3.BasicClient
	watermark *lake.WatermarkStore
}

func NewExtractor(cfg *ExtractorConfig) *Extractor {
	if cfg.Log == nil || cfg.Source == nil || cfg.Bucket == nil || cfg.Watermark == nil {
		panic("extractor config is missing a dependency")
	}
	return &Extractor{
		log:       cfg.Log,
		source:    cfg.Source,
		bucket:    cfg.Bucket,
		watermark: cfg.Watermark,
	}
}

// CycleResult describes what one extraction cycle did.
type CycleResult struct {
	Watermark    time.Time // the watermark value after the cycle.
	Advanced     bool
	BlobsWritten []string
	TablesNoData []string
}

// Run performs one extraction cycle:
// read the watermark, find the latest update across all source tables, and if
// it is strictly newer, write one JSON blob per table that has rows updated
// after the watermark. The watermark is advanced exactly once, to the global
// latest, only after every table has been processed successfully.
func (e *Extractor) Run(ctx context.Context) (*CycleResult, error) {
	current, err := e.watermark.Get()
	if err != nil {
		return nil, err // the watermark must be seeded before the first run.
	}
	tables, err := e.source.DiscoverTables(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := e.source.LatestUpdateAcrossTables(ctx, tables)
	if err != nil {
		return nil, err
	}
	res := &CycleResult{Watermark: current}
	if !latest.After(current) { // if the source has nothing newer than the watermark...
		e.log.Info("no new data since watermark ", lake.FormatTimestamp(current))
		return res, nil
	}
	for _, table := range tables {
		data, err := e.source.ExtractTableJson(ctx, table, current)
		if err != nil {
			// Any table failure aborts the cycle before the watermark moves.
			return nil, errors.Wrapf(err, "extracting table %v", table)
		}
		if len(data) == 0 { // the aggregate is SQL NULL when no rows qualified...
			e.log.Info("there is no new data in ", table)
			res.TablesNoData = append(res.TablesNoData, table)
			continue
		}
		key := lake.ExtractionKey(table, latest)
		if err := e.bucket.Put(key, data); err != nil {
			return nil, err
		}
		e.log.Info("table ", table, " saved to ", key)
		res.BlobsWritten = append(res.BlobsWritten, key)
	}
	if err := e.watermark.Put(latest); err != nil {
		return nil, err
	}
	res.Watermark = latest
	res.Advanced = true
	return res, nil
}
