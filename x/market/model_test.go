package market

import (
	"testing"

	"github.com/nftbazaar/bazaar/bazaartest"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem() *MarketItem {
	return &MarketItem{
		TokenId: bazaartest.SequenceID(1),
		Seller:  bazaartest.NewCondition().Address(),
		Owner:   EscrowAddress(),
		Price:   100,
		Listed:  true,
	}
}

func TestMarketItemValidate(t *testing.T) {
	assert.NoError(t, validItem().Validate())

	noID := validItem()
	noID.TokenId = nil
	assert.Error(t, noID.Validate())

	badSeller := validItem()
	badSeller.Seller = []byte{1, 2, 3}
	assert.Error(t, badSeller.Validate())

	freePrice := validItem()
	freePrice.Price = 0
	assert.True(t, errors.ErrAmount.Is(freePrice.Validate()))

	soldAndListed := validItem()
	soldAndListed.Sold = true
	assert.True(t, errors.ErrState.Is(soldAndListed.Validate()))
}

func TestMarketItemCopy(t *testing.T) {
	item := validItem()
	cpy := item.Copy().(*MarketItem)
	require.Equal(t, item, cpy)

	// mutating the copy must not touch the original
	cpy.TokenId[0] = 0xff
	cpy.Price = 1
	assert.Equal(t, bazaartest.SequenceID(1), item.TokenId)
	assert.Equal(t, int64(100), item.Price)
}

func TestItemBucketRoundtrip(t *testing.T) {
	db := store.MemStore()
	bucket := NewItemBucket()

	item := validItem()
	require.NoError(t, bucket.Save(db, NewItemObj(item)))

	loaded, err := bucket.GetItem(db, item.TokenId)
	require.NoError(t, err)
	assert.Equal(t, item, loaded)

	missing, err := bucket.GetItem(db, bazaartest.SequenceID(99))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSoldCounter(t *testing.T) {
	db := store.MemStore()
	bucket := NewItemBucket()

	count, err := bucket.SoldCount(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for i := int64(1); i <= 3; i++ {
		got, err := bucket.MarkSold(db)
		require.NoError(t, err)
		assert.Equal(t, i, got)
	}

	count, err = bucket.SoldCount(db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
