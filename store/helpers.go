package store

import (
	"fmt"

	"github.com/nftbazaar/bazaar/errors"
)

// EmptyKVStore holds nothing and accepts everything. It is the base
// layer under MemStore and a convenient backing for cache tests.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (e EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

func (e EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

func (e EmptyKVStore) Set(key, value []byte) error { return nil }

func (e EmptyKVStore) Delete(key []byte) error { return nil }

func (e EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return emptyIterator{}, nil
}

func (e EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return emptyIterator{}, nil
}

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

type emptyIterator struct{}

var _ Iterator = emptyIterator{}

func (emptyIterator) Next() ([]byte, []byte, error) {
	return nil, nil, errors.ErrIteratorDone
}

func (emptyIterator) Release() {}

// batchOp is one queued mutation. A nil value slot cannot stand in
// for delete since empty values are legal, hence the flag.
type batchOp struct {
	delete bool
	key    []byte
	value  []byte
}

func (o batchOp) apply(out SetDeleter) error {
	if o.delete {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch queues mutations and replays them on Write. Only
// suitable over in-memory stores, a failure mid-replay leaves the
// target half written.
type NonAtomicBatch struct {
	out SetDeleter
	ops []batchOp
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch returns an empty batch writing to out.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

// Set queues a write.
func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, batchOp{key: key, value: value})
	return nil
}

// Delete queues a delete.
func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, batchOp{delete: true, key: key})
	return nil
}

// Write replays all queued mutations in order and empties the batch.
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

func (b *NonAtomicBatch) String() string {
	return fmt.Sprintf("NonAtomicBatch: %d ops", len(b.ops))
}
