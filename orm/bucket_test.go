package orm

import (
	"testing"

	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/store"
	"github.com/nftbazaar/bazaar/bazaartest/assert"
)

func countObj(key []byte, count int64) Object {
	return NewSimpleObj(key, &Counter{Count: count})
}

func TestBucketSaveGet(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket("cnts", NewCounter(nil))

	// missing is nil, no error
	obj, err := bucket.Get(db, []byte("bad"))
	assert.Nil(t, err)
	assert.Nil(t, obj)

	// saving and loading gives the same value back
	assert.Nil(t, bucket.Save(db, countObj([]byte("first"), 55)))
	obj, err = bucket.Get(db, []byte("first"))
	assert.Nil(t, err)
	if obj == nil {
		t.Fatal("loaded object is nil")
	}
	assert.Equal(t, []byte("first"), obj.Key())
	assert.Equal(t, int64(55), obj.Value().(*Counter).Count)

	// deleted is gone
	assert.Nil(t, bucket.Delete(db, []byte("first")))
	obj, err = bucket.Get(db, []byte("first"))
	assert.Nil(t, err)
	assert.Nil(t, obj)
}

func TestBucketRefusesInvalidObject(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket("cnts", NewCounter(nil))

	// an empty key must not save
	err := bucket.Save(db, countObj(nil, 1))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestBucketSeparatesNamespaces(t *testing.T) {
	db := store.MemStore()
	one := NewBucket("one", NewCounter(nil))
	two := NewBucket("two", NewCounter(nil))

	assert.Nil(t, one.Save(db, countObj([]byte("key"), 1)))
	assert.Nil(t, two.Save(db, countObj([]byte("key"), 2)))

	obj, err := one.Get(db, []byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, int64(1), obj.Value().(*Counter).Count)

	obj, err = two.Get(db, []byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, int64(2), obj.Value().(*Counter).Count)
}

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket("cnts", NewCounter(nil))

	assert.Nil(t, bucket.Save(db, countObj([]byte("aaa"), 1)))
	assert.Nil(t, bucket.Save(db, countObj([]byte("abc"), 2)))
	assert.Nil(t, bucket.Save(db, countObj([]byte("bcd"), 3)))

	// exact key query
	models, err := bucket.Query(db, bazaar.KeyQueryMod, []byte("abc"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(models))
	assert.Equal(t, bucket.DBKey([]byte("abc")), models[0].Key)

	// miss returns nothing with no error
	models, err = bucket.Query(db, bazaar.KeyQueryMod, []byte("missing"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(models))

	// prefix scan is ordered by key
	models, err = bucket.Query(db, bazaar.PrefixQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(models))
	assert.Equal(t, bucket.DBKey([]byte("aaa")), models[0].Key)
	assert.Equal(t, bucket.DBKey([]byte("abc")), models[1].Key)

	// empty prefix data scans the whole bucket
	models, err = bucket.Query(db, bazaar.PrefixQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(models))
}

func TestBucketNameValidation(t *testing.T) {
	assert.Panics(t, func() {
		NewBucket("Bad Name", NewCounter(nil))
	})
}
