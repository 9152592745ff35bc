package cash

import (
	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
)

// Controller is the functionality needed by other handlers to move
// funds around. BaseController is the standard implementation.
type Controller interface {
	// MoveCoins removes amount from src wallet and adds it to dest
	// wallet. The sum of both balances is unchanged.
	MoveCoins(db bazaar.KVStore, src, dest bazaar.Address, amount int64) error

	// IssueCoins adds amount to the dest wallet out of thin air.
	// Used only during genesis to fund initial accounts.
	IssueCoins(db bazaar.KVStore, dest bazaar.Address, amount int64) error

	// Balance returns the current balance of the given address.
	// A missing wallet reports a zero balance.
	Balance(db bazaar.KVStore, addr bazaar.Address) (int64, error)
}

// BaseController implements Controller using one Bucket as the backing
// wallet storage.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient funds, it fails
// with ErrTransfer so no partial update is ever written.
func (c BaseController) MoveCoins(db bazaar.KVStore, src, dest bazaar.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(ErrTransfer, "empty wallet %s", src)
	}

	// a self transfer leaves the balance unchanged but still
	// requires sufficient funds
	if src.Equals(dest) {
		return AsWallet(sender).Add(-amount)
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := AsWallet(sender).Add(-amount); err != nil {
		return err
	}
	if err := AsWallet(recipient).Add(amount); err != nil {
		return err
	}

	// save them and return
	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// IssueCoins attempts to add the given amount to the destination
// address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db bazaar.KVStore, dest bazaar.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := AsWallet(recipient).Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// Balance returns the balance at the address, zero for a missing wallet.
func (c BaseController) Balance(db bazaar.KVStore, addr bazaar.Address) (int64, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	return AsWallet(obj).Balance(), nil
}
