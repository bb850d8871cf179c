package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/xid"

	"github.com/alixiazul/data-engineering-project/aws/s3"
	"github.com/alixiazul/data-engineering-project/aws/secrets"
	"github.com/alixiazul/data-engineering-project/aws/ssm"
	"github.com/alixiazul/data-engineering-project/config"
	"github.com/alixiazul/data-engineering-project/constants"
	"github.com/alixiazul/data-engineering-project/extract"
	"github.com/alixiazul/data-engineering-project/lake"
	"github.com/alixiazul/data-engineering-project/load"
	"github.com/alixiazul/data-engineering-project/logger"
	"github.com/alixiazul/data-engineering-project/rdbms"
	"github.com/alixiazul/data-engineering-project/transform"
)

// pipelineRuntime wires resolved config and a run-scoped logger to the
// pipeline stages. Each command builds one per invocation so every log entry
// of a run carries the same run id.
type pipelineRuntime struct {
	cfg config.PipelineConfig
	log *logger.LoggerImpl
}

func newPipelineRuntime() (*pipelineRuntime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.NewLogger(constants.LogServiceNameDefault, cfg.LogLevel, stackDumpOnPanic).
		WithRunId(xid.New().String())
	return &pipelineRuntime{cfg: cfg, log: log}, nil
}

// runStage dispatches one named stage, used by the lambda entry point and the
// scheduler.
func runStage(stage string) error {
	r, err := newPipelineRuntime()
	if err != nil {
		return err
	}
	ctx := context.Background()
	switch stage {
	case "extract":
		return r.runExtract(ctx)
	case "transform":
		return r.runTransform(ctx)
	case "load":
		return r.runLoad(ctx)
	case "pipeline":
		return r.runPipeline(ctx)
	default:
		return errors.Errorf("unknown pipeline stage %q", stage)
	}
}

func (r *pipelineRuntime) runExtract(ctx context.Context) error {
	dbSecret, err := secrets.NewGetter(r.cfg.Region).Get(r.cfg.SourceSecretId)
	if err != nil {
		return err
	}
	conn, err := rdbms.OpenDbConnection(ctx, r.log, dbSecret)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close(ctx) }()
	e := extract.NewExtractor(&extract.ExtractorConfig{
		Log:       r.log,
		Source:    rdbms.NewSourceDatabase(r.log, conn),
		Bucket:    s3.NewBasicClient(r.cfg.ExtractionBucket, r.cfg.Region, ""),
		Watermark: lake.NewWatermarkStore(r.log, ssm.NewParameterStore(r.cfg.Region), r.cfg.WatermarkParameter),
	})
	res, err := e.Run(ctx)
	if err != nil {
		return err
	}
	if res.Advanced {
		r.log.Info("extraction wrote ", len(res.BlobsWritten), " blobs, watermark now ", lake.FormatTimestamp(res.Watermark))
	}
	return nil
}

func (r *pipelineRuntime) runTransform(ctx context.Context) error {
	t := transform.NewTransformer(&transform.TransformerConfig{
		Log:            r.log,
		Extraction:     s3.NewBasicClient(r.cfg.ExtractionBucket, r.cfg.Region, ""),
		Transformation: s3.NewBasicClient(r.cfg.TransformationBucket, r.cfg.Region, ""),
		DateDays:       r.cfg.DateDays,
		DateEndDate:    r.cfg.DateEndDate,
	})
	_, err := t.Run(ctx)
	return err
}

func (r *pipelineRuntime) runLoad(ctx context.Context) error {
	secretsGetter := secrets.NewGetter(r.cfg.Region)
	l := load.NewLoader(&load.LoaderConfig{
		Log:            r.log,
		Transformation: s3.NewBasicClient(r.cfg.TransformationBucket, r.cfg.Region, ""),
		Warehouse:      s3.NewBasicClient(r.cfg.WarehouseBucket, r.cfg.Region, ""),
		Connect: func(ctx context.Context) (rdbms.Connector, error) {
			dbSecret, err := secretsGetter.Get(r.cfg.WarehouseSecretId)
			if err != nil {
				return nil, err
			}
			return rdbms.OpenDbConnection(ctx, r.log, dbSecret)
		},
	})
	res, err := l.Run(ctx)
	if err != nil {
		return err
	}
	for _, b := range res.Blobs {
		if b.Status == load.StatusPartiallyApplied {
			r.log.Warn("blob ", b.Key, " only partially applied: ", b.ChunksFailed, " chunks failed")
		}
	}
	return nil
}

// runPipeline runs the three stages back to back; a stage failure stops the
// run before the next stage starts.
func (r *pipelineRuntime) runPipeline(ctx context.Context) error {
	if err := r.runExtract(ctx); err != nil {
		return errors.Wrap(err, "extract stage")
	}
	if err := r.runTransform(ctx); err != nil {
		return errors.Wrap(err, "transform stage")
	}
	if err := r.runLoad(ctx); err != nil {
		return errors.Wrap(err, "load stage")
	}
	return nil
}
