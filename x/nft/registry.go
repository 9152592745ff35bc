package nft

import (
	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
)

// Registry is the functionality other handlers need to mint and move
// tokens. BaseRegistry is the standard implementation.
type Registry interface {
	// Mint creates a new token owned by owner and returns its ID.
	Mint(db bazaar.KVStore, owner bazaar.Address, uri string) ([]byte, error)

	// Transfer moves the token from the current owner to dest. It
	// fails with ErrUnauthorized unless from is the current owner.
	Transfer(db bazaar.KVStore, from, dest bazaar.Address, id []byte) error

	// Load returns the token under the given ID, ErrNotFound if
	// no such token was minted.
	Load(db bazaar.ReadOnlyKVStore, id []byte) (*Token, error)
}

// BaseRegistry implements Registry backed by a TokenBucket.
type BaseRegistry struct {
	bucket TokenBucket
}

var _ Registry = BaseRegistry{}

// NewRegistry returns a base registry implementation.
func NewRegistry(bucket TokenBucket) BaseRegistry {
	return BaseRegistry{bucket: bucket}
}

// Mint creates a new token and returns the assigned ID.
func (r BaseRegistry) Mint(db bazaar.KVStore, owner bazaar.Address, uri string) ([]byte, error) {
	obj, err := r.bucket.Create(db, owner, uri)
	if err != nil {
		return nil, errors.Wrap(err, "minting token")
	}
	return obj.Key(), nil
}

// Transfer reassigns token ownership after checking the current owner.
func (r BaseRegistry) Transfer(db bazaar.KVStore, from, dest bazaar.Address, id []byte) error {
	obj, err := r.bucket.Get(db, id)
	if err != nil {
		return err
	}
	if obj == nil {
		return errors.Wrapf(errors.ErrNotFound, "token %x", id)
	}
	token := AsToken(obj)
	if !token.OwnerAddress().Equals(from) {
		return errors.Wrapf(errors.ErrUnauthorized, "token owned by %s", token.OwnerAddress())
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	token.Owner = dest
	return r.bucket.Save(db, NewTokenObj(id, token))
}

// Load returns the token stored under the ID.
func (r BaseRegistry) Load(db bazaar.ReadOnlyKVStore, id []byte) (*Token, error) {
	obj, err := r.bucket.Get(db, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "token %x", id)
	}
	return AsToken(obj), nil
}
