package utils

import (
	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
)

// Reentrancy is a decorator that rejects any attempt to enter the
// handler stack while another operation is still executing on it.
//
// Fund moving operations may trigger nested calls back into the
// ledger (eg. a transfer hook). Without the guard such a call would
// observe and mutate half-updated state. The lock is an explicit
// flag, acquired on entry and released on every exit path, including
// a panic further down the stack.
type Reentrancy struct {
	busy *bool
}

var _ bazaar.Decorator = Reentrancy{}

// NewReentrancy creates a Reentrancy decorator. One instance guards
// one handler stack; do not share it between independent stacks.
func NewReentrancy() Reentrancy {
	var busy bool
	return Reentrancy{busy: &busy}
}

// Check rejects re-entrant calls with ErrState.
func (r Reentrancy) Check(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.exit()
	return next.Check(ctx, store, tx)
}

// Deliver rejects re-entrant calls with ErrState.
func (r Reentrancy) Deliver(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.exit()
	return next.Deliver(ctx, store, tx)
}

func (r Reentrancy) enter() error {
	if *r.busy {
		return errors.Wrap(errors.ErrState, "re-entrant call")
	}
	*r.busy = true
	return nil
}

func (r Reentrancy) exit() {
	*r.busy = false
}
