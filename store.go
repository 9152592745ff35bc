package bazaar

// KVStore is a simple interface to get/set data.
//
// For simplicity, we require all backing stores to implement this
// interface. They *may* implement other methods as well, but
// at least these are required.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch that can write multiple ops atomically.
	NewBatch() Batch
}

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is
	// exclusive. Start must be less than end, or the Iterator is
	// invalid. Iterator must be released when done.
	// A nil start is interpreted as an empty byte slice.
	// A nil end is interpreted as "all keys above start".
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order.
	// End is exclusive. Start must be less than end, or the Iterator
	// is invalid.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is a minimal interface for writing.
type SetDeleter interface {
	Set(key, value []byte) error // CONTRACT: key, value readonly []byte
	Delete(key []byte) error     // CONTRACT: key readonly []byte
}

// Batch groups writes to be committed together.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator allows us to access a set of items within a range of keys.
// These may all be preloaded, or loaded on demand.
//
//   var itr Iterator = ...
//   defer itr.Release()
//
//   for {
//     key, value, err := itr.Next()
//     if errors.ErrIteratorDone.Is(err) {
//       break
//     } else if err != nil {
//       return err
//     }
//     // ...
//   }
type Iterator interface {
	// Next returns the next key-value pair, or ErrIteratorDone when
	// the iterator is exhausted.
	Next() (key, value []byte, err error)

	// Release frees all resources held by the iterator. It is safe to
	// call it more than once.
	Release()
}

// CacheableKVStore is a KVStore that supports CacheWrapping.
//
// CacheWrap() should not return a Committer, since Commit() on
// cache-wraps make no sense.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap allows us to maintain a scratch-pad of uncommitted data
// that we can view with all queries.
//
// At the end, call Write to use the cached data, or Discard to drop it.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this Cache recursively
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data
	Discard()
}
