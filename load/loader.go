package load

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/alixiazul/data-engineering-project/aws/s3"
	"github.com/alixiazul/data-engineering-project/constants"
	"github.com/alixiazul/data-engineering-project/entity"
	"github.com/alixiazul/data-engineering-project/helper"
	"github.com/alixiazul/data-engineering-project/logger"
	"github.com/alixiazul/data-engineering-project/rdbms"
	"github.com/alixiazul/data-engineering-project/rdbms/shared"
)

// BlobStatus is the outcome of applying one blob.
type BlobStatus string

const (
	StatusApplied          BlobStatus = "Applied"
	StatusPartiallyApplied BlobStatus = "PartiallyApplied"
)

// BatchInsertError records one failed commit chunk. The chunk is rolled back
// and the loader carries on with the rest of the blob.
type BatchInsertError struct {
	Blob  string
	Chunk int
	Err   error
}

func (e *BatchInsertError) Error() string {
	return fmt.Sprintf("batch insert failed for blob %v chunk %v: %v", e.Blob, e.Chunk, e.Err)
}

func (e *BatchInsertError) Unwrap() error {
	return e.Err
}

// LoaderConfig carries the dependencies for a Loader. Connect opens a fresh
// warehouse connection; the loader opens and closes one per blob.
type LoaderConfig struct {
	Log            logger.Logger
	Transformation s3.BasicClient // bucket holding shaped columnar blobs.
	Warehouse      s3.BasicClient // bucket holding the applied-blob manifest.
	Connect        func(ctx context.Context) (rdbms.Connector, error)
}

// Loader inserts new transformation blobs into the warehouse and tracks them
// in the manifest.
type Loader struct {
	log            logger.Logger
	transformation s3.BasicClient
	warehouse      s3.BasicClient
	connect        func(ctx context.Context) (rdbms.Connector, error)
	dml            shared.DmlGeneratorTxtBatch
}

// BlobResult summarises one applied blob.
type BlobResult struct {
	Key          string
	Status       BlobStatus
	RowsInserted int
	ChunksFailed int
}

// Result summarises one load cycle.
type Result struct {
	Blobs []BlobResult
}

func NewLoader(cfg *LoaderConfig) *Loader {
	if cfg.Log == nil || cfg.Transformation == nil || cfg.Warehouse == nil || cfg.Connect == nil {
		panic("incomplete loader config")
	}
	return &Loader{
		log:            cfg.Log,
		transformation: cfg.Transformation,
		warehouse:      cfg.Warehouse,
		connect:        cfg.Connect,
	}
}

// PendingBlobs lists transformation blobs not yet in the manifest, dimension
// blobs first so fact rows never land before the dimensions they reference.
func (l *Loader) PendingBlobs(m *Manifest) ([]string, error) {
	dims, err := l.transformation.List(constants.DimensionBlobPrefix)
	if err != nil {
		return nil, err
	}
	facts, err := l.transformation.List(constants.FactBlobPrefix)
	if err != nil {
		return nil, err
	}
	pending := make([]string, 0, len(dims)+len(facts))
	for _, k := range append(dims, facts...) {
		if !m.Contains(k) {
			pending = append(pending, k)
		}
	}
	return pending, nil
}

// Run fetches the manifest, applies every pending blob in order and rewrites
// the manifest after each one. A blob that only partially applied is still
// recorded so it is not retried.
func (l *Loader) Run(ctx context.Context) (Result, error) {
	var res Result
	m, err := FetchManifest(l.warehouse)
	if err != nil {
		return res, err
	}
	pending, err := l.PendingBlobs(m)
	if err != nil {
		return res, err
	}
	if len(pending) == 0 {
		l.log.Info("there are no new files to load")
		return res, nil
	}
	for _, key := range pending {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		br, err := l.ApplyBlob(ctx, key)
		if err != nil {
			return res, errors.Wrapf(err, "applying blob %v", key)
		}
		res.Blobs = append(res.Blobs, br)
		m.Add(key)
		if err := StoreManifest(l.warehouse, m); err != nil {
			return res, err
		}
		l.log.Info("blob ", key, " loaded with status ", br.Status)
	}
	return res, nil
}

// ApplyBlob decodes one blob and inserts its rows over a fresh warehouse
// connection. Rows are applied in commit chunks; a chunk whose INSERT fails
// is rolled back, logged and skipped, leaving the blob PartiallyApplied.
func (l *Loader) ApplyBlob(ctx context.Context, key string) (BlobResult, error) {
	br := BlobResult{Key: key, Status: StatusApplied}
	r, ok := routeFor(key)
	if !ok {
		return br, errors.Errorf("no warehouse route for blob %v", key)
	}
	data, err := l.transformation.Get(key)
	if err != nil {
		return br, err
	}
	rows, err := r.decode(data)
	if err != nil {
		return br, err
	}
	conn, err := l.connect(ctx)
	if err != nil {
		return br, err
	}
	defer conn.Close(ctx)

	gen, err := l.insertGenerator(r)
	if err != nil {
		return br, err
	}
	for chunkIdx := 0; chunkIdx*constants.LoadCommitBatchSize < len(rows); chunkIdx++ {
		start := chunkIdx * constants.LoadCommitBatchSize
		end := start + constants.LoadCommitBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		n, err := l.applyChunk(ctx, conn, gen, rows[start:end])
		br.RowsInserted += n
		if err != nil {
			bie := &BatchInsertError{Blob: key, Chunk: chunkIdx, Err: err}
			if rdbms.IsUniqueViolation(err) {
				l.log.Warn("chunk ", chunkIdx, " of ", key, " contains rows already present in the warehouse")
			}
			l.log.Error(bie.Error())
			br.ChunksFailed++
			br.Status = StatusPartiallyApplied
		}
	}
	return br, nil
}

// applyChunk inserts one commit chunk inside a transaction, issuing batched
// INSERT statements of up to LoadStatementBatchSize rows each.
func (l *Loader) applyChunk(ctx context.Context, conn rdbms.Connector, gen shared.SqlStmtTxtBatcher, rows []entity.WarehouseRow) (int, error) {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, err
	}
	inserted := 0
	flush := func() error {
		vals := gen.GetValues()
		if len(vals) == 0 {
			return nil
		}
		if err := tx.Exec(ctx, gen.GetStatement(), vals...); err != nil {
			return err
		}
		return nil
	}
	gen.InitBatch(constants.LoadStatementBatchSize)
	pendingInBatch := 0
	for _, row := range rows {
		full, err := gen.AddValuesToBatch(row.Values())
		if err != nil {
			_ = tx.Rollback(ctx)
			return 0, err
		}
		pendingInBatch++
		if full {
			if err := flush(); err != nil {
				_ = tx.Rollback(ctx)
				return 0, err
			}
			inserted += pendingInBatch
			pendingInBatch = 0
			gen.InitBatch(constants.LoadStatementBatchSize)
		}
	}
	if err := flush(); err != nil {
		_ = tx.Rollback(ctx)
		return 0, err
	}
	inserted += pendingInBatch
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}

// insertGenerator builds the shared batch INSERT generator for a route, the
// leading id column as the key column and the rest as data columns.
func (l *Loader) insertGenerator(r route) (shared.SqlStmtTxtBatcher, error) {
	cfg := &shared.SqlStatementGeneratorConfig{
		Log:             l.log,
		OutputTable:     r.table,
		TargetKeyCols:   helper.StringSliceToOrderedMap(r.columns[:1]),
		TargetOtherCols: helper.StringSliceToOrderedMap(r.columns[1:]),
	}
	gen, ok := l.dml.NewInsertGenerator(cfg).(shared.SqlStmtTxtBatcher)
	if !ok {
		return nil, errors.New("insert generator does not support text batching")
	}
	return gen, nil
}
