package nft

import (
	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/orm"
)

// BucketName is where we store the tokens
const BucketName = "nft"

//---- Token

var _ orm.CloneableData = (*Token)(nil)

// Validate requires a well formed owner address. The metadata URI is
// stored verbatim and may be empty.
func (t *Token) Validate() error {
	if err := bazaar.Address(t.Owner).Validate(); err != nil {
		return errors.Wrap(err, "token owner")
	}
	return nil
}

// Copy makes a new token with the same content
func (t *Token) Copy() orm.CloneableData {
	return &Token{
		Uri:   t.Uri,
		Owner: append([]byte(nil), t.Owner...),
	}
}

// OwnerAddress returns the owner as a typed address
func (t *Token) OwnerAddress() bazaar.Address {
	return bazaar.Address(t.Owner)
}

// NewTokenObj wraps a token with its ID for bucket storage
func NewTokenObj(id []byte, token *Token) orm.Object {
	return orm.NewSimpleObj(id, token)
}

// AsToken safely extracts a Token value from any object
func AsToken(obj orm.Object) *Token {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Token)
}

//--- TokenBucket - type-safe bucket

// TokenBucket stores all minted tokens keyed by their sequence ID.
type TokenBucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewTokenBucket initializes a TokenBucket with default name
func NewTokenBucket() TokenBucket {
	bucket := orm.NewBucket(BucketName,
		NewTokenObj(nil, new(Token)))
	return TokenBucket{
		Bucket: bucket,
		idSeq:  bucket.Sequence(orm.SeqID),
	}
}

// Create mints a new token for the owner and returns the stored object.
// The object key is the freshly assigned token ID.
func (b TokenBucket) Create(db bazaar.KVStore, owner bazaar.Address, uri string) (orm.Object, error) {
	id, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, err
	}
	obj := NewTokenObj(id, &Token{
		Uri:   uri,
		Owner: owner,
	})
	if err := b.Save(db, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// RegisterQuery will register this bucket as "/tokens"
func RegisterQuery(qr bazaar.QueryRouter) {
	NewTokenBucket().Register("tokens", qr)
}
