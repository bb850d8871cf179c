package transform

import (
	"github.com/pkg/errors"

	"github.com/alixiazul/data-engineering-project/lake"
)

// Blob is one extraction blob awaiting transformation.
type Blob struct {
	Key   string
	Label string // the watermark-format timestamp recovered from the key.
	Data  []byte
}

// NewBlobsFor lists the extraction bucket under the table prefix and the
// transformation bucket under the mapped target prefix, and returns the
// extraction blobs whose computed target key is not present yet. For the
// "payment" table, "payment_type" keys are excluded from both listings before
// diffing so the two prefixes don't collide.
func (t *Transformer) NewBlobsFor(table string) ([]Blob, error) {
	targetPrefix, ok := lake.TargetPrefixFor(table)
	if !ok {
		return nil, errors.Errorf("source table %q has no transformation target", table)
	}
	extractionKeys, err := t.extraction.List(table)
	if err != nil {
		return nil, err
	}
	transformationKeys, err := t.transformation.List(targetPrefix)
	if err != nil {
		return nil, err
	}
	newKeys := lake.DiffNewKeys(table, targetPrefix, extractionKeys, transformationKeys)
	if len(newKeys) == 0 {
		t.log.Info("there is no new data in ", table)
		return nil, nil
	}
	t.log.Info("there is new data in ", table)
	blobs := make([]Blob, 0, len(newKeys))
	for _, k := range newKeys {
		data, err := t.extraction.Get(k)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, Blob{Key: k, Label: lake.LabelFromKey(k), Data: data})
	}
	return blobs, nil
}
