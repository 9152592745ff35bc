//nolint
package store

import "github.com/nftbazaar/bazaar"

// Move references for all storage types into this package
// for shorter names everywhere

type KVStore = bazaar.KVStore
type ReadOnlyKVStore = bazaar.ReadOnlyKVStore
type SetDeleter = bazaar.SetDeleter
type Batch = bazaar.Batch
type Iterator = bazaar.Iterator
type CacheableKVStore = bazaar.CacheableKVStore
type KVCacheWrap = bazaar.KVCacheWrap
type Model = bazaar.Model
