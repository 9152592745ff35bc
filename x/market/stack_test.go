package market

import (
	"context"
	"testing"

	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/app"
	"github.com/nftbazaar/bazaar/bazaartest"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/x/cash"
	"github.com/nftbazaar/bazaar/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStack wires the full production decorator chain over a router
// with all market routes.
func newStack(f *fixture, signer bazaar.Condition) bazaar.Handler {
	router := app.NewRouter()
	RegisterRoutes(router, f.auth(signer), f.ctrl, f.reg)
	return app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewReentrancy(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(router)
}

func TestStackDispatch(t *testing.T) {
	f := newFixture(t)
	stack := newStack(f, f.seller)

	res, err := stack.Deliver(context.Background(), f.db, &bazaartest.Tx{Msg: &CreateListingMsg{
		TokenUri:   "ipfs://meta/1",
		Price:      testPrice,
		ListingFee: testFee,
	}})
	require.NoError(t, err)
	assert.Equal(t, bazaartest.SequenceID(1), res.Data)

	item, err := f.bucket.GetItem(f.db, res.Data)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, item.Listed)
}

func TestStackUnknownPath(t *testing.T) {
	f := newFixture(t)
	stack := newStack(f, f.seller)

	_, err := stack.Deliver(context.Background(), f.db, &bazaartest.Tx{Msg: &bazaartest.Msg{
		RoutePath: "market/unknown",
	}})
	assert.True(t, errors.ErrNotFound.Is(err))
}

// A partial settlement must leave no trace. The pool is drained
// between listing and purchase, so the buyer's payment succeeds but
// the fee disbursement fails, and the savepoint rolls everything
// back.
func TestStackRollsBackPartialSettlement(t *testing.T) {
	f := newFixture(t)

	tokenID := f.list(t, testPrice)

	// the platform owner empties the pool
	wh := WithdrawHandler{f.auth(f.platform), f.ctrl}
	_, err := wh.Deliver(context.Background(), f.db, &bazaartest.Tx{Msg: &WithdrawMsg{}})
	require.NoError(t, err)

	buyerBefore := f.balance(t, f.buyer.Address())
	sellerBefore := f.balance(t, f.seller.Address())

	stack := newStack(f, f.buyer)
	_, err = stack.Deliver(context.Background(), f.db, &bazaartest.Tx{Msg: &BuyMsg{
		TokenId: tokenID,
		Payment: testPrice,
	}})
	assert.True(t, cash.ErrTransfer.Is(err), "unexpected error: %+v", err)

	// the payment that went through before the failure was rolled back
	assert.Equal(t, buyerBefore, f.balance(t, f.buyer.Address()))
	assert.Equal(t, sellerBefore, f.balance(t, f.seller.Address()))

	// still listed, still escrowed
	item, err := f.bucket.GetItem(f.db, tokenID)
	require.NoError(t, err)
	assert.True(t, item.Listed)
	assert.False(t, item.Sold)
	token, err := f.reg.Load(f.db, tokenID)
	require.NoError(t, err)
	assert.Equal(t, EscrowAddress(), token.OwnerAddress())
}

func TestStackRecoversPanic(t *testing.T) {
	f := newFixture(t)

	router := app.NewRouter()
	router.Handle("market/panic", panicHandler{})
	RegisterRoutes(router, f.auth(f.seller), f.ctrl, f.reg)
	stack := app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewReentrancy(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(router)

	_, err := stack.Deliver(context.Background(), f.db, &bazaartest.Tx{Msg: &bazaartest.Msg{
		RoutePath: "market/panic",
	}})
	assert.True(t, errors.ErrPanic.Is(err))

	// the same guard must be released after the panic
	_, err = stack.Deliver(context.Background(), f.db, &bazaartest.Tx{Msg: &CreateListingMsg{
		TokenUri:   "ipfs://meta/1",
		Price:      testPrice,
		ListingFee: testFee,
	}})
	require.NoError(t, err)
}

type panicHandler struct{}

func (panicHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	panic("check boom")
}

func (panicHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	panic("deliver boom")
}
