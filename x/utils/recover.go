package utils

import (
	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
)

// Recovery converts panics anywhere below it in the stack into
// regular ErrPanic failures.
type Recovery struct{}

var _ bazaar.Decorator = Recovery{}

// NewRecovery returns the panic-recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check shields the check phase from panics.
func (r Recovery) Check(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (_ *bazaar.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver shields the deliver phase from panics.
func (r Recovery) Deliver(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (_ *bazaar.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
