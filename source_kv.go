package morphdict

import (
	"context"
	"fmt"

	"github.com/akrylysov/pogreb"
	"github.com/lwch/logging"
)

// KVSource reads resources from a pogreb store filled by Pack. Values are
// stored decompressed, keys are resolved resource names.
type KVSource struct {
	db *pogreb.DB
}

func NewKVSource(db *pogreb.DB) *KVSource {
	return &KVSource{db: db}
}

// OpenKVSource opens (or creates) the store at dir.
func OpenKVSource(dir string) (*KVSource, error) {
	db, err := pogreb.Open(dir, nil)
	if err != nil {
		return nil, err
	}
	return &KVSource{db: db}, nil
}

func (s *KVSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := []byte(name)
	ok, err := s.db.Has(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	data, err := s.db.Get(key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

func (s *KVSource) Close() error {
	return s.db.Close()
}

// Pack copies every catalog resource found under from in src into the store
// of s, keyed under the location to. Resources are fetched one by one in
// catalog order and the first failure stops the copy.
func (s *KVSource) Pack(ctx context.Context, src ByteSource, from, to string) (int, error) {
	var total int
	for _, g := range Catalog() {
		for _, r := range g.Resources {
			data, err := src.Fetch(ctx, Resolve(from, r.ID))
			if err != nil {
				return total, &AcquisitionError{Group: g.Name, Resource: r.ID, Err: err}
			}
			if err := s.db.Put([]byte(Resolve(to, r.ID)), data); err != nil {
				return total, fmt.Errorf("put %s: %w", r.ID, err)
			}
			total += len(data)
			logging.Info("packed %s, %s", r.ID, size(len(data)))
		}
	}
	if err := s.db.Sync(); err != nil {
		return total, err
	}
	logging.Info("packed %s into %s", size(total), to)
	return total, nil
}
