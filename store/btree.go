package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/nftbazaar/bazaar/errors"
)

// DefaultFreeListSize is how many spare btree nodes we keep around.
const DefaultFreeListSize = btree.DefaultFreeListSize

// BTreeCacheable upgrades any KVStore with a btree-backed CacheWrap.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a wrap that buffers all writes in a btree until
// Write is called, or drops them on Discard.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a purely in-memory store, mainly for tests.
// Nothing survives the process.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap is a btree overlay on a read-only backing store.
// Reads check the overlay first, writes go to the overlay and to a
// batch that can push them down into the backing store.
type BTreeCacheWrap struct {
	overlay *btree.BTree
	free    *btree.FreeList
	back    ReadOnlyKVStore
	batch   Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap sets up an overlay over the given store. The
// ReadOnlyKVStore type makes sure every mutation passes through the
// batch. Pass a free list to share node allocations, or nil for a
// fresh one.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		overlay: btree.NewWithFreeList(2, free),
		free:    free,
		back:    kv,
		batch:   batch,
	}
}

// CacheWrap stacks a second overlay on this one, sharing the free
// list. The inner batch is non-atomic since it only feeds another
// in-memory layer.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a batch whose writes land in this wrap.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes the buffered writes into the backing store and resets
// the overlay.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard throws away all buffered writes, returning the nodes to the
// free list.
func (b BTreeCacheWrap) Discard() {
	for b.overlay.DeleteMin() != nil {
	}
}

// Set buffers a write in the overlay and records it in the batch.
func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.overlay.ReplaceOrInsert(writeRecord{treeKey{key}, value})
	return b.batch.Set(key, value)
}

// Delete buffers a tombstone in the overlay and records the delete in
// the batch.
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.overlay.ReplaceOrInsert(tombstone{treeKey{key}})
	return b.batch.Delete(key)
}

// Get returns the overlay value if the key was touched, otherwise
// asks the backing store.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	switch rec := b.overlay.Get(treeKey{key}).(type) {
	case nil:
		return b.back.Get(key)
	case writeRecord:
		return rec.value, nil
	case tombstone:
		return nil, nil
	default:
		return nil, errors.Wrapf(errors.ErrDatabase, "unexpected overlay entry: %#v", rec)
	}
}

// Has reports whether the key is visible through the overlay.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	switch rec := b.overlay.Get(treeKey{key}).(type) {
	case nil:
		return b.back.Has(key)
	case writeRecord:
		return true, nil
	case tombstone:
		return false, nil
	default:
		return false, errors.Wrapf(errors.ErrDatabase, "unexpected overlay entry: %#v", rec)
	}
}

// Iterator walks [start, end) ascending, merging overlay entries with
// the backing store.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parentIter, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	items := ascendBtree(b.overlay, start, end)
	return newItemIter(items, parentIter, false), nil
}

// ReverseIterator walks [start, end) descending, merging overlay
// entries with the backing store.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parentIter, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	items := descendBtree(b.overlay, start, end)
	return newItemIter(items, parentIter, true), nil
}

// every overlay entry exposes its key so entries and probe keys can
// be ordered together
type keyed interface {
	Key() []byte
}

// treeKey is the bare probe key, also embedded in real entries
type treeKey struct {
	key []byte
}

var _ keyed = treeKey{}
var _ btree.Item = treeKey{}

func (k treeKey) Key() []byte {
	return k.key
}

func (k treeKey) Less(item btree.Item) bool {
	return bytes.Compare(k.key, item.(keyed).Key()) < 0
}

// tombstone marks a key deleted in this layer
type tombstone struct {
	treeKey
}

// writeRecord holds a value written in this layer
type writeRecord struct {
	treeKey
	value []byte
}

// beforeKey sorts just under an exact key match, so it can serve as
// an exclusive pivot in descending range scans
type beforeKey struct {
	key []byte
}

var _ keyed = beforeKey{}
var _ btree.Item = beforeKey{}

func (k beforeKey) Key() []byte {
	return k.key
}

func (k beforeKey) Less(item btree.Item) bool {
	return bytes.Compare(k.key, item.(keyed).Key()) <= 0
}
