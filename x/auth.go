/*
Package x contains the extensions built on top of the ledger
framework. Each sub-package combines handlers, models and decorators
for one concern; this package holds the helpers they share.
*/
package x

import (
	"github.com/nftbazaar/bazaar"
)

// Authenticator extracts the authentication information from a
// context. Handlers take one in their constructor so the signature
// scheme stays pluggable.
type Authenticator interface {
	// GetConditions reveals all conditions fulfilled,
	// you may want GetAddresses helper instead
	GetConditions(bazaar.Context) []bazaar.Condition

	// HasAddress checks if any condition matches this address
	HasAddress(bazaar.Context, bazaar.Address) bool
}

// MultiAuth combines several authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups authenticators; they are consulted in order.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions concatenates the conditions of every chained
// authenticator.
func (m MultiAuth) GetConditions(ctx bazaar.Context) []bazaar.Condition {
	var res []bazaar.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress succeeds when any chained authenticator approves.
func (m MultiAuth) HasAddress(ctx bazaar.Context, addr bazaar.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer, or nil when nothing signed.
func MainSigner(ctx bazaar.Context, auth Authenticator) bazaar.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// GetAddresses returns the addresses of all fulfilled conditions.
func GetAddresses(ctx bazaar.Context, auth Authenticator) []bazaar.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]bazaar.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// HasAllAddresses checks that every required address is authorized in
// the context.
func HasAllAddresses(ctx bazaar.Context, auth Authenticator, required []bazaar.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
