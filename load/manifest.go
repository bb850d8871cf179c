// Package load applies transformation blobs to the warehouse with batched
// INSERT statements, tracking applied blobs in a bucket-resident manifest.
package load

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/alixiazul/data-engineering-project/aws/s3"
	"github.com/alixiazul/data-engineering-project/constants"
)

// Manifest is the set of blob keys already applied to the warehouse. It
// round-trips through a newline-joined serialization at a fixed bucket key.
type Manifest struct {
	keys  map[string]struct{}
	order []string // insertion order, preserved across serialization.
}

func NewManifest() *Manifest {
	return &Manifest{keys: map[string]struct{}{}}
}

// ParseManifest splits the stored form into a set, ignoring blank lines.
func ParseManifest(data []byte) *Manifest {
	m := NewManifest()
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			m.Add(line)
		}
	}
	return m
}

func (m *Manifest) Contains(key string) bool {
	_, ok := m.keys[key]
	return ok
}

// Add records key, returning false if it was already present.
func (m *Manifest) Add(key string) bool {
	if m.Contains(key) {
		return false
	}
	m.keys[key] = struct{}{}
	m.order = append(m.order, key)
	return true
}

func (m *Manifest) Len() int {
	return len(m.order)
}

func (m *Manifest) Bytes() []byte {
	return []byte(strings.Join(m.order, "\n"))
}

// FetchManifest reads the manifest from the bucket. A missing key means no
// blob has ever been applied and yields an empty manifest.
func FetchManifest(bucket s3.BasicClient) (*Manifest, error) {
	data, err := bucket.Get(constants.ManifestKey)
	if err != nil {
		if errors.Is(err, s3.ErrKeyNotFound) {
			return NewManifest(), nil
		}
		return nil, err
	}
	return ParseManifest(data), nil
}

// StoreManifest rewrites the manifest in full.
func StoreManifest(bucket s3.BasicClient, m *Manifest) error {
	return bucket.Put(constants.ManifestKey, m.Bytes())
}
