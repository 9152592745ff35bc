package market

import (
	"bytes"

	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/gconf"
)

// The filtered views scan all listing records in ascending token ID
// order and keep the matching ones. There is no secondary index to
// maintain, so a scan is O(n) over all items.

type listedQuery struct {
	bucket ItemBucket
}

var _ bazaar.QueryHandler = listedQuery{}

// Query returns all items currently on sale.
func (q listedQuery) Query(db bazaar.ReadOnlyKVStore, mod string, data []byte) ([]bazaar.Model, error) {
	return scanItems(q.bucket, db, mod, func(item *MarketItem) bool {
		return item.Listed && !item.Sold
	})
}

type ownerQuery struct {
	bucket ItemBucket
}

var _ bazaar.QueryHandler = ownerQuery{}

// Query returns all items held by the given address. Listed items are
// excluded by construction since the escrow address holds them.
func (q ownerQuery) Query(db bazaar.ReadOnlyKVStore, mod string, data []byte) ([]bazaar.Model, error) {
	if err := bazaar.Address(data).Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	return scanItems(q.bucket, db, mod, func(item *MarketItem) bool {
		return bytes.Equal(item.Owner, data)
	})
}

type sellerQuery struct {
	bucket ItemBucket
}

var _ bazaar.QueryHandler = sellerQuery{}

// Query returns all items ever listed by the given address,
// regardless of their current state.
func (q sellerQuery) Query(db bazaar.ReadOnlyKVStore, mod string, data []byte) ([]bazaar.Model, error) {
	if err := bazaar.Address(data).Validate(); err != nil {
		return nil, errors.Wrap(err, "seller")
	}
	return scanItems(q.bucket, db, mod, func(item *MarketItem) bool {
		return bytes.Equal(item.Seller, data)
	})
}

type configQuery struct{}

var _ bazaar.QueryHandler = configQuery{}

// Query returns the current market configuration, or nothing when the
// genesis never set one.
func (configQuery) Query(db bazaar.ReadOnlyKVStore, mod string, data []byte) ([]bazaar.Model, error) {
	if mod != bazaar.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query modifier: %s", mod)
	}
	key := gconf.DBKey(configPkg)
	raw, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return []bazaar.Model{bazaar.Pair(key, raw)}, nil
}

func scanItems(bucket ItemBucket, db bazaar.ReadOnlyKVStore, mod string, match func(*MarketItem) bool) ([]bazaar.Model, error) {
	if mod != bazaar.PrefixQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query modifier: %s", mod)
	}
	models, err := bucket.Query(db, bazaar.PrefixQueryMod, nil)
	if err != nil {
		return nil, err
	}
	var out []bazaar.Model
	for _, m := range models {
		var item MarketItem
		if err := item.Unmarshal(m.Value); err != nil {
			return nil, errors.Wrap(err, "parsing item")
		}
		if match(&item) {
			out = append(out, m)
		}
	}
	return out, nil
}
