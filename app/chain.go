package app

import (
	"reflect"

	"github.com/nftbazaar/bazaar"
)

// Decorators is a decorator chain waiting for its final Handler.
type Decorators struct {
	chain []bazaar.Decorator
}

/*
ChainDecorators collects decorators in execution order. Resolving the
chain with a final Handler (usually a Router) produces a Handler that
runs the whole stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    utils.NewReentrancy(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(
    myapp.NewRouter(),
  )
*/
func ChainDecorators(chain ...bazaar.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain appends more decorators, dropping nil entries.
func (d Decorators) Chain(chain ...bazaar.Decorator) Decorators {
	newChain := append(d.chain, dropNil(chain)...)
	return Decorators{newChain}
}

// dropNil compacts the slice in place, removing nil decorators and
// typed nil pointers.
func dropNil(ds []bazaar.Decorator) []bazaar.Decorator {
	keep := ds[:0]
	for _, d := range ds {
		if d == nil {
			continue
		}
		if v := reflect.ValueOf(d); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		keep = append(keep, d)
	}
	return keep
}

// WithHandler resolves the chain around the given Handler. The first
// decorator in the chain runs first, the Handler last.
func (d Decorators) WithHandler(h bazaar.Handler) bazaar.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = layer{d: d.chain[i], next: h}
	}
	return h
}

// layer binds one decorator to the rest of the resolved stack below
// it.
type layer struct {
	d    bazaar.Decorator
	next bazaar.Handler
}

var _ bazaar.Handler = layer{}

func (l layer) Check(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	return l.d.Check(ctx, store, tx, l.next)
}

func (l layer) Deliver(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	return l.d.Deliver(ctx, store, tx, l.next)
}
