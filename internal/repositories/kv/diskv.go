package kv

import (
	"context"
	"fmt"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvRepository stores each field as a file under a base directory.
type DiskvRepository struct {
	d *diskv.Diskv
}

// NewDiskvRepository opens (creating on first write) a flat store at dir.
// Up to cacheSize bytes of values are kept in memory.
func NewDiskvRepository(dir string, cacheSize uint64) *DiskvRepository {
	d := diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: cacheSize,
	})
	return &DiskvRepository{d: d}
}

func (r *DiskvRepository) SetAll(_ context.Context, values map[string][]byte) error {
	for _, k := range sortedKeys(values) {
		if err := r.d.Write(k, values[k]); err != nil {
			return fmt.Errorf("failed to set field[%s]: %w", k, err)
		}
	}
	return nil
}

func (r *DiskvRepository) List(_ context.Context) (map[string][]byte, error) {
	cancel := make(chan struct{})
	defer close(cancel)

	result := make(map[string][]byte)
	for key := range r.d.Keys(cancel) {
		v, err := r.d.Read(key)
		if err != nil {
			return nil, fmt.Errorf("failed to read field[%s]: %w", key, err)
		}
		result[key] = v
	}
	return result, nil
}
