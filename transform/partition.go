package transform

import (
	"bytes"
	"encoding/json"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"

	"github.com/alixiazul/data-engineering-project/aws/s3"
	"github.com/alixiazul/data-engineering-project/lake"
	"github.com/alixiazul/data-engineering-project/logger"
)

// SavePartition writes one columnar blob of shaped rows under the target
// prefix, partitioned by the year-month of the timestamp label.
// It fails with EmptyInputError if rows is empty.
func SavePartition[T any](log logger.Logger, bucket s3.BasicClient, targetPrefix, label string, rows []T) (string, error) {
	if len(rows) == 0 {
		return "", errors.Wrapf(&EmptyInputError{Entity: targetPrefix}, "saving partition %v-%v", targetPrefix, label)
	}
	key, err := lake.TransformationKey(targetPrefix, label)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if err := parquet.Write(buf, rows); err != nil {
		return "", errors.Wrapf(err, "encoding parquet for %v", key)
	}
	if err := bucket.Put(key, buf.Bytes()); err != nil {
		return "", err
	}
	log.Info("file ", key, " has been created successfully")
	return key, nil
}

// ReadPartition decodes a columnar blob back into shaped rows.
func ReadPartition[T any](data []byte) ([]T, error) {
	rows, err := parquet.Read[T](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "decoding parquet blob")
	}
	return rows, nil
}

// decodeRows unmarshals an extraction blob's JSON array into named-field
// records at the boundary, so nothing downstream addresses columns by
// position.
func decodeRows[T any](data []byte) ([]T, error) {
	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrap(err, "decoding extraction blob JSON")
	}
	return rows, nil
}
