package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nftbazaar/bazaar/errors"
)

func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	k, v := []byte("french"), []byte("fry")

	// nothing there
	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
	has, err := base.Has(k)
	require.NoError(t, err)
	assert.False(t, has)

	// set and get
	require.NoError(t, base.Set(k, v))
	got, err = base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)
	has, err = base.Has(k)
	require.NoError(t, err)
	assert.True(t, has)

	// delete and gone
	require.NoError(t, base.Delete(k))
	got, err = base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheWrapWriteDiscard(t *testing.T) {
	base := MemStore()
	k, v := []byte("name"), []byte("guadalupe")
	k2, v2 := []byte("food"), []byte("tacos")
	require.NoError(t, base.Set(k, v))

	// discarded writes never reach the base layer
	cache := base.CacheWrap()
	require.NoError(t, cache.Set(k2, v2))
	require.NoError(t, cache.Delete(k))
	cache.Discard()

	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)
	got, err = base.Get(k2)
	require.NoError(t, err)
	assert.Nil(t, got)

	// committed writes do, all of them
	cache = base.CacheWrap()
	require.NoError(t, cache.Set(k2, v2))
	require.NoError(t, cache.Delete(k))
	require.NoError(t, cache.Write())

	got, err = base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = base.Get(k2)
	require.NoError(t, err)
	assert.Equal(t, v2, got)
}

func TestCacheWrapReadThrough(t *testing.T) {
	base := MemStore()
	k, v := []byte("base"), []byte("value")
	require.NoError(t, base.Set(k, v))

	cache := base.CacheWrap()
	got, err := cache.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	// a cached delete shadows the base value
	require.NoError(t, cache.Delete(k))
	got, err = cache.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
	has, err := cache.Has(k)
	require.NoError(t, err)
	assert.False(t, has)
}

func consume(t *testing.T, it Iterator) []Model {
	t.Helper()
	defer it.Release()

	var res []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		require.NoError(t, err)
		res = append(res, Model{Key: key, Value: value})
	}
}

func TestIteratorOverCacheWrap(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte{1}, []byte("a")))
	require.NoError(t, base.Set([]byte{3}, []byte("c")))
	require.NoError(t, base.Set([]byte{5}, []byte("e")))

	cache := base.CacheWrap()
	// overwrite, delete and add on top of the base data
	require.NoError(t, cache.Set([]byte{3}, []byte("C")))
	require.NoError(t, cache.Delete([]byte{5}))
	require.NoError(t, cache.Set([]byte{2}, []byte("b")))

	it, err := cache.Iterator(nil, nil)
	require.NoError(t, err)
	models := consume(t, it)

	want := []Model{
		{Key: []byte{1}, Value: []byte("a")},
		{Key: []byte{2}, Value: []byte("b")},
		{Key: []byte{3}, Value: []byte("C")},
	}
	assert.Equal(t, want, models)

	// reverse order as well
	it, err = cache.ReverseIterator(nil, nil)
	require.NoError(t, err)
	models = consume(t, it)
	for i := range want {
		assert.Equal(t, want[len(want)-1-i], models[i])
	}
}

func TestIteratorRange(t *testing.T) {
	base := MemStore()
	keys := [][]byte{{1}, {2}, {3}, {4}}
	for _, k := range keys {
		require.NoError(t, base.Set(k, k))
	}

	it, err := base.Iterator([]byte{2}, []byte{4})
	require.NoError(t, err)
	models := consume(t, it)
	require.Len(t, models, 2)
	assert.True(t, bytes.Equal([]byte{2}, models[0].Key))
	assert.True(t, bytes.Equal([]byte{3}, models[1].Key))
}

func TestIteratorReleased(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte{1}, []byte("a")))

	it, err := base.Iterator(nil, nil)
	require.NoError(t, err)
	it.Release()
	// releasing twice must not panic
	it.Release()

	_, _, err = it.Next()
	assert.True(t, errors.ErrIteratorDone.Is(err))
}
