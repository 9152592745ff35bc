package cash

import (
	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/orm"
)

// BucketName is the storage prefix for all wallets
const BucketName = "cash"

//---- Set

// Validate requires the balance to be non-negative
func (s *Set) Validate() error {
	if s.Balance < 0 {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// Copy makes a new set with the same balance
func (s *Set) Copy() orm.CloneableData {
	return &Set{Balance: s.Balance}
}

//--- Wallet (Set object, wallet + key)

// Wallet pairs an address with its balance. This is the object the
// controller code passes around and stores in the cash bucket.
type Wallet struct {
	key   []byte
	value *Set
}

var _ orm.Object = (*Wallet)(nil)

// NewWallet returns a zero-balance wallet for the address
func NewWallet(key bazaar.Address) *Wallet {
	return &Wallet{
		key:   key,
		value: new(Set),
	}
}

// Value returns the stored balance set
func (w *Wallet) Value() bazaar.Persistent {
	return w.value
}

// Key is the owning address
func (w *Wallet) Key() []byte {
	return w.key
}

// Validate requires a key and a valid balance
func (w *Wallet) Validate() error {
	if len(w.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "wallet key")
	}
	return w.value.Validate()
}

// SetKey rebinds the wallet to another address
func (w *Wallet) SetKey(key []byte) {
	w.key = key
}

// Clone returns an independent copy
func (w *Wallet) Clone() orm.Object {
	res := &Wallet{
		value: w.value.Copy().(*Set),
	}
	if len(w.key) > 0 {
		res.key = append([]byte(nil), w.key...)
	}
	return res
}

// Balance returns the balance stored in the wallet
func (w *Wallet) Balance() int64 {
	return w.value.Balance
}

// Add modifies the wallet balance by delta, which may be negative.
// Fails on overflow and if the result would drop below zero.
func (w *Wallet) Add(delta int64) error {
	next := w.value.Balance + delta
	if delta > 0 && next < w.value.Balance {
		return errors.Wrap(errors.ErrOverflow, "wallet balance")
	}
	if next < 0 {
		return errors.Wrap(ErrTransfer, "insufficient funds")
	}
	w.value.Balance = next
	return nil
}

// AsWallet casts the object to a Wallet, nil when impossible
func AsWallet(obj orm.Object) *Wallet {
	if obj == nil {
		return nil
	}
	wal, ok := obj.(*Wallet)
	if !ok {
		return nil
	}
	return wal
}

//--- cash.Bucket - type-safe bucket

// Bucket is the typed orm bucket holding wallets
type Bucket struct {
	orm.Bucket
}

// NewBucket returns a bucket under the default cash prefix
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

// GetOrCreate will return the wallet at the given address, creating an
// empty one if none is stored yet.
func (b Bucket) GetOrCreate(db bazaar.KVStore, key bazaar.Address) (orm.Object, error) {
	obj, err := b.Get(db, key)
	if err == nil && obj == nil {
		obj = NewWallet(key)
	}
	return obj, err
}
