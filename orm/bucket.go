/*
Package orm splits the key-value state space into prefixed sections
called Buckets. A bucket holds exactly one type of object under a
primary key and exposes simple get, save, delete and prefix-query
operations, plus named sequences for counters and id generation.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
)

// SeqID is the conventional name of a bucket's id sequence.
const SeqID = "id"

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a prefixed subspace of the database holding one model
// type. Embed it in a type-safe wrapper so callers never handle raw
// Objects of the wrong type.
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

var _ bazaar.QueryHandler = Bucket{}

// NewBucket sets up a bucket under the given name prefix. The proto
// object is cloned for every parsed record.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the bucket name.
func (b Bucket) Name() string {
	return b.name
}

// Register claims "/<name>" on the query router for this bucket. The
// query name may differ from the storage prefix; empty falls back to
// the bucket name.
func (b Bucket) Register(name string, r bazaar.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
}

// Query answers key and prefix queries routed to this bucket.
func (b Bucket) Query(db bazaar.ReadOnlyKVStore, mod string, data []byte) ([]bazaar.Model, error) {
	switch mod {
	case bazaar.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// a miss is an empty result, not an error
		if value == nil {
			return nil, nil
		}
		return []bazaar.Model{{Key: key, Value: value}}, nil
	case bazaar.PrefixQueryMod:
		prefix := b.DBKey(data)
		return queryPrefix(db, prefix)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query modifier: %s", mod)
	}
}

// DBKey prepends the bucket prefix. Always a fresh allocation so
// consecutive calls never share backing arrays.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get loads one object by key, nil without error when missing.
func (b Bucket) Get(db bazaar.ReadOnlyKVStore, key []byte) (Object, error) {
	bz, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Parse rebuilds an object of this bucket's type from raw key and
// value bytes. Get uses it internally; it is exported for code that
// consumes query results.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", b.name)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates the object and writes it under its key.
func (b Bucket) Save(db bazaar.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}

	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete removes the value under the key. Deleting a missing key is
// not an error.
func (b Bucket) Delete(db bazaar.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// Sequence returns the named sequence scoped to this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}
