package utils

import (
	"context"
	"testing"

	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/bazaartest"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	r := NewRecovery()
	ctx := context.Background()
	db := store.MemStore()

	panics := handlerFunc(func(bazaar.Context, bazaar.KVStore, bazaar.Tx) (*bazaar.DeliverResult, error) {
		panic("boom")
	})

	_, err := r.Check(ctx, db, nil, panics)
	assert.True(t, errors.ErrPanic.Is(err))

	_, err = r.Deliver(ctx, db, nil, panics)
	assert.True(t, errors.ErrPanic.Is(err))

	// Without a panic results pass through untouched.
	var h bazaartest.Handler
	_, err = r.Deliver(ctx, db, nil, &h)
	require.NoError(t, err)
	assert.Equal(t, 1, h.DeliverCallCount())
}
