package market

import (
	"testing"

	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/bazaartest"
	"github.com/nftbazaar/bazaar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func delistTx(tokenID []byte) bazaar.Tx {
	return &bazaartest.Tx{Msg: &DelistMsg{TokenId: tokenID}}
}

func TestQueryViews(t *testing.T) {
	f := newFixture(t)

	qr := bazaar.NewQueryRouter()
	RegisterQuery(qr)

	// three listings; the second is bought, the third delisted
	first := f.list(t, testPrice)
	second := f.list(t, testPrice)
	third := f.list(t, testPrice)
	f.buy(t, second, testPrice)
	dh := DelistHandler{f.auth(f.seller), f.bucket, f.reg}
	_, err := dh.Deliver(nil, f.db, delistTx(third))
	require.NoError(t, err)

	// /items returns a single record by token id
	itemsQ := qr.Handler("/items")
	require.NotNil(t, itemsQ)
	models, err := itemsQ.Query(f.db, bazaar.KeyQueryMod, first)
	require.NoError(t, err)
	require.Len(t, models, 1)
	var item MarketItem
	require.NoError(t, item.Unmarshal(models[0].Value))
	assert.Equal(t, first, item.TokenId)

	// the raw prefix scan sees every record
	models, err = itemsQ.Query(f.db, bazaar.PrefixQueryMod, nil)
	require.NoError(t, err)
	assert.Len(t, models, 3)

	// only the unsold, undelisted listing is on sale
	listedQ := qr.Handler("/items/listed")
	require.NotNil(t, listedQ)
	models, err = listedQ.Query(f.db, bazaar.PrefixQueryMod, nil)
	require.NoError(t, err)
	require.Len(t, models, 1)
	require.NoError(t, item.Unmarshal(models[0].Value))
	assert.Equal(t, first, item.TokenId)

	// the buyer holds the purchased item
	ownerQ := qr.Handler("/items/owner")
	require.NotNil(t, ownerQ)
	models, err = ownerQ.Query(f.db, bazaar.PrefixQueryMod, f.buyer.Address())
	require.NoError(t, err)
	require.Len(t, models, 1)
	require.NoError(t, item.Unmarshal(models[0].Value))
	assert.Equal(t, second, item.TokenId)

	// the seller view shows all their listings regardless of state
	sellerQ := qr.Handler("/items/seller")
	require.NotNil(t, sellerQ)
	models, err = sellerQ.Query(f.db, bazaar.PrefixQueryMod, f.seller.Address())
	require.NoError(t, err)
	assert.Len(t, models, 3)
}

func TestQueryScanOrder(t *testing.T) {
	f := newFixture(t)
	first := f.list(t, testPrice)
	second := f.list(t, testPrice)
	third := f.list(t, testPrice)

	qr := bazaar.NewQueryRouter()
	RegisterQuery(qr)
	models, err := qr.Handler("/items/listed").Query(f.db, bazaar.PrefixQueryMod, nil)
	require.NoError(t, err)
	require.Len(t, models, 3)

	// results come back in ascending token id order
	var got [][]byte
	for _, m := range models {
		var item MarketItem
		require.NoError(t, item.Unmarshal(m.Value))
		got = append(got, item.TokenId)
	}
	assert.Equal(t, [][]byte{first, second, third}, got)
}

func TestQueryBadAddress(t *testing.T) {
	f := newFixture(t)
	qr := bazaar.NewQueryRouter()
	RegisterQuery(qr)

	_, err := qr.Handler("/items/owner").Query(f.db, bazaar.PrefixQueryMod, []byte{1, 2, 3})
	assert.Error(t, err)
}

func TestConfigQuery(t *testing.T) {
	f := newFixture(t)
	qr := bazaar.NewQueryRouter()
	RegisterQuery(qr)

	confQ := qr.Handler("/config/market")
	require.NotNil(t, confQ)

	models, err := confQ.Query(f.db, bazaar.KeyQueryMod, nil)
	require.NoError(t, err)
	require.Len(t, models, 1)

	var conf Configuration
	require.NoError(t, conf.Unmarshal(models[0].Value))
	assert.Equal(t, f.platform.Address(), conf.OwnerAddress())
	assert.Equal(t, testFee, conf.ListingFee)

	// only exact key lookups are supported
	_, err = confQ.Query(f.db, bazaar.PrefixQueryMod, nil)
	assert.Error(t, err)
}

func TestConfigQueryUnset(t *testing.T) {
	qr := bazaar.NewQueryRouter()
	RegisterQuery(qr)

	models, err := qr.Handler("/config/market").Query(store.MemStore(), bazaar.KeyQueryMod, nil)
	require.NoError(t, err)
	assert.Len(t, models, 0)
}

func TestTokensQueryRegistered(t *testing.T) {
	f := newFixture(t)
	tokenID := f.list(t, testPrice)

	qr := bazaar.NewQueryRouter()
	RegisterQuery(qr)
	tokensQ := qr.Handler("/tokens")
	require.NotNil(t, tokensQ)

	models, err := tokensQ.Query(f.db, bazaar.KeyQueryMod, tokenID)
	require.NoError(t, err)
	require.Len(t, models, 1)
}
