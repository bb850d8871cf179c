// Package lake holds the conventions shared by all three pipeline stages:
// the externally persisted watermark, blob key naming and partitioning, the
// source-to-target prefix mapping and key diffing between buckets.
package lake

import (
	"time"

	"github.com/pkg/errors"

	"github.com/alixiazul/data-engineering-project/aws/ssm"
	"github.com/alixiazul/data-engineering-project/constants"
	"github.com/alixiazul/data-engineering-project/logger"
)

// FormatTimestamp renders t in the externally stored watermark format,
// e.g. "2022-11-03 14:20:52.187000".
func FormatTimestamp(t time.Time) string {
	return t.Format(constants.TimeFormatWatermark)
}

// ParseTimestamp parses a watermark format string back into a time.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(constants.TimeFormatWatermark, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing watermark value %q", s)
	}
	return t, nil
}

// WatermarkStore reads and writes the single global high-water mark.
// The parameter must be seeded before the first pipeline run; a missing
// parameter is a fatal precondition, not an empty watermark.
type WatermarkStore struct {
	Log   logger.Logger
	Store ssm.ParameterStore
	Name  string
}

func NewWatermarkStore(log logger.Logger, store ssm.ParameterStore, name string) *WatermarkStore {
	return &WatermarkStore{Log: log, Store: store, Name: name}
}

func (w *WatermarkStore) Get() (time.Time, error) {
	v, err := w.Store.Get(w.Name)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "fetching watermark parameter %q", w.Name)
	}
	t, err := ParseTimestamp(v)
	if err != nil {
		return time.Time{}, err
	}
	w.Log.Debug("fetched watermark ", v)
	return t, nil
}

func (w *WatermarkStore) Put(t time.Time) error {
	v := FormatTimestamp(t)
	if err := w.Store.Put(w.Name, v); err != nil {
		return errors.Wrapf(err, "writing watermark parameter %q", w.Name)
	}
	w.Log.Info("advanced watermark to ", v)
	return nil
}
