package transform

import (
	"context"

	"github.com/pkg/errors"

	"github.com/alixiazul/data-engineering-project/aws/s3"
	"github.com/alixiazul/data-engineering-project/lake"
	"github.com/alixiazul/data-engineering-project/logger"
)

const dimDatePrefix = "dim_date"

// TransformerConfig carries the dependencies for a Transformer.
type TransformerConfig struct {
	Log            logger.Logger
	Extraction     s3.BasicClient // bucket holding raw table blobs.
	Transformation s3.BasicClient // bucket receiving shaped columnar blobs.
	DateDays       int            // span of the generated date dimension.
	DateEndDate    string         // optional YYYY-MM-DD upper bound overriding DateDays.
}

// Transformer shapes new extraction blobs into dimension and fact blobs.
// The per-entity steps are bound once at construction.
type Transformer struct {
	log            logger.Logger
	extraction     s3.BasicClient
	transformation s3.BasicClient
	dateDays       int
	dateEndDate    string
	steps          []step
}

type step struct {
	name string
	run  func(ctx context.Context) (int, error)
}

// Result summarises one transformation cycle.
type Result struct {
	BlobsWritten int
}

func NewTransformer(cfg *TransformerConfig) *Transformer {
	if cfg.Log == nil || cfg.Extraction == nil || cfg.Transformation == nil {
		panic("incomplete transformer config")
	}
	t := &Transformer{
		log:            cfg.Log,
		extraction:     cfg.Extraction,
		transformation: cfg.Transformation,
		dateDays:       cfg.DateDays,
		dateEndDate:    cfg.DateEndDate,
	}
	t.steps = []step{
		singleStep(t, "dim_currency", "currency", ShapeCurrency),
		joinedStep(t, "dim_staff", "staff", "department", ShapeStaff),
		joinedStep(t, "dim_counterparty", "counterparty", "address", ShapeCounterparty),
		singleStep(t, "dim_design", "design", ShapeDesign),
		singleStep(t, "dim_location", "address", ShapeLocation),
		singleStep(t, "dim_transaction", "transaction", ShapeTransaction),
		{name: dimDatePrefix, run: t.runDateDimension},
		singleStep(t, "facts_sales_order", "sales_order", ShapeSalesOrder),
	}
	return t
}

// Run executes every step in order; any failure aborts the cycle. A blob
// whose rows all shaped away raises an empty-input error like any other:
// "no new data" is decided at discovery, an empty shaped row-set is not
// expected and must fail loud.
func (t *Transformer) Run(ctx context.Context) (Result, error) {
	var res Result
	for _, s := range t.steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		n, err := s.run(ctx)
		res.BlobsWritten += n
		if err != nil {
			return res, errors.Wrapf(err, "transforming %v", s.name)
		}
	}
	t.log.Info("transformation cycle complete, blobs written = ", res.BlobsWritten)
	return res, nil
}

// singleStep binds a one-table shaper: each new extraction blob is decoded,
// shaped and saved under the table's target prefix with the blob's label.
func singleStep[R any, W any](t *Transformer, name, table string, shape func([]R) ([]W, error)) step {
	return step{name: name, run: func(ctx context.Context) (int, error) {
		blobs, err := t.NewBlobsFor(table)
		if err != nil {
			return 0, err
		}
		written := 0
		for _, b := range blobs {
			rows, err := decodeRows[R](b.Data)
			if err != nil {
				return written, errors.Wrapf(err, "decoding %v", b.Key)
			}
			shaped, err := shape(rows)
			if err != nil {
				return written, err
			}
			targetPrefix, _ := lake.TargetPrefixFor(table)
			if _, err := SavePartition(t.log, t.transformation, targetPrefix, b.Label, shaped); err != nil {
				return written, err
			}
			written++
		}
		return written, nil
	}}
}

// joinedStep binds a two-table shaper. New blobs are discovered for the left
// table; the right-side blob is the extraction blob sharing the same
// timestamp label, since one extraction cycle stamps every table it touches
// with the same watermark. An unmatched label is logged and skipped rather
// than failing the cycle.
func joinedStep[L any, R any, W any](t *Transformer, name, leftTable, rightTable string, shape func([]L, []R) ([]W, error)) step {
	return step{name: name, run: func(ctx context.Context) (int, error) {
		blobs, err := t.NewBlobsFor(leftTable)
		if err != nil {
			return 0, err
		}
		written := 0
		for _, b := range blobs {
			peer, ok, err := t.peerBlob(rightTable, b.Label)
			if err != nil {
				return written, err
			}
			if !ok {
				t.log.Warn("no ", rightTable, " blob with label ", b.Label, " to join against ", b.Key)
				continue
			}
			left, err := decodeRows[L](b.Data)
			if err != nil {
				return written, errors.Wrapf(err, "decoding %v", b.Key)
			}
			right, err := decodeRows[R](peer)
			if err != nil {
				return written, errors.Wrapf(err, "decoding %v blob with label %v", rightTable, b.Label)
			}
			shaped, err := shape(left, right)
			if err != nil {
				return written, err
			}
			targetPrefix, _ := lake.TargetPrefixFor(leftTable)
			if _, err := SavePartition(t.log, t.transformation, targetPrefix, b.Label, shaped); err != nil {
				return written, err
			}
			written++
		}
		return written, nil
	}}
}

// peerBlob fetches the extraction blob for table carrying the given label.
func (t *Transformer) peerBlob(table, label string) ([]byte, bool, error) {
	keys, err := t.extraction.List(table)
	if err != nil {
		return nil, false, err
	}
	for _, k := range keys {
		if lake.LabelFromKey(k) == label {
			data, err := t.extraction.Get(k)
			if err != nil {
				return nil, false, err
			}
			return data, true, nil
		}
	}
	return nil, false, nil
}

// runDateDimension generates the calendar once: if any dim_date blob already
// exists the step is a no-op.
func (t *Transformer) runDateDimension(ctx context.Context) (int, error) {
	existing, err := t.transformation.List(dimDatePrefix)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		t.log.Debug("date dimension already generated")
		return 0, nil
	}
	rows, last, err := GenerateDateDimension(t.dateDays, t.dateEndDate)
	if err != nil {
		return 0, err
	}
	label := lake.FormatTimestamp(last)
	if _, err := SavePartition(t.log, t.transformation, dimDatePrefix, label, rows); err != nil {
		return 0, err
	}
	return 1, nil
}
