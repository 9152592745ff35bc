package market

import (
	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/orm"
)

// BucketName is where we store the market items
const BucketName = "market"

// soldSeqName tracks how many items were ever sold
const soldSeqName = "sold"

//---- MarketItem

var _ orm.CloneableData = (*MarketItem)(nil)

// Validate enforces the listing record invariants
func (i *MarketItem) Validate() error {
	if err := orm.ValidateSequence(i.TokenId); err != nil {
		return errors.Wrap(err, "token id")
	}
	if err := bazaar.Address(i.Seller).Validate(); err != nil {
		return errors.Wrap(err, "seller")
	}
	if err := bazaar.Address(i.Owner).Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if i.Price <= 0 {
		return errors.Wrap(errors.ErrAmount, "price must be positive")
	}
	if i.Sold && i.Listed {
		return errors.Wrap(errors.ErrState, "sold item cannot stay listed")
	}
	return nil
}

// Copy makes a new item with the same content
func (i *MarketItem) Copy() orm.CloneableData {
	return &MarketItem{
		TokenId: append([]byte(nil), i.TokenId...),
		Seller:  append([]byte(nil), i.Seller...),
		Owner:   append([]byte(nil), i.Owner...),
		Price:   i.Price,
		Sold:    i.Sold,
		Listed:  i.Listed,
	}
}

// SellerAddress returns the seller as a typed address
func (i *MarketItem) SellerAddress() bazaar.Address {
	return bazaar.Address(i.Seller)
}

// OwnerAddress returns the current holder as a typed address
func (i *MarketItem) OwnerAddress() bazaar.Address {
	return bazaar.Address(i.Owner)
}

// NewItemObj wraps an item keyed by its token ID for bucket storage
func NewItemObj(item *MarketItem) orm.Object {
	return orm.NewSimpleObj(item.TokenId, item)
}

// AsItem safely extracts a MarketItem value from any object
func AsItem(obj orm.Object) *MarketItem {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*MarketItem)
}

//--- ItemBucket - type-safe bucket

// ItemBucket stores the listing records keyed by token ID.
type ItemBucket struct {
	orm.Bucket
	soldSeq orm.Sequence
}

// NewItemBucket initializes an ItemBucket with default name
func NewItemBucket() ItemBucket {
	bucket := orm.NewBucket(BucketName,
		orm.NewSimpleObj(nil, new(MarketItem)))
	return ItemBucket{
		Bucket:  bucket,
		soldSeq: bucket.Sequence(soldSeqName),
	}
}

// GetItem returns the listing record for the token, nil if none
func (b ItemBucket) GetItem(db bazaar.ReadOnlyKVStore, tokenID []byte) (*MarketItem, error) {
	obj, err := b.Get(db, tokenID)
	if err != nil {
		return nil, err
	}
	return AsItem(obj), nil
}

// MarkSold increments the sold counter and returns the new total
func (b ItemBucket) MarkSold(db bazaar.KVStore) (int64, error) {
	return b.soldSeq.NextInt(db)
}

// SoldCount returns how many items were sold so far
func (b ItemBucket) SoldCount(db bazaar.ReadOnlyKVStore) (int64, error) {
	count, _, err := b.soldSeq.Latest(db)
	return count, err
}
