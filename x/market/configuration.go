package market

import (
	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/gconf"
)

// configPkg is the gconf namespace of this package
const configPkg = "market"

// Validate requires a platform owner and a non-negative fee
func (c *Configuration) Validate() error {
	if err := bazaar.Address(c.Owner).Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if c.ListingFee < 0 {
		return errors.Wrap(errors.ErrAmount, "negative listing fee")
	}
	return nil
}

// OwnerAddress returns the platform owner as a typed address
func (c *Configuration) OwnerAddress() bazaar.Address {
	return bazaar.Address(c.Owner)
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, configPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

func saveConf(db gconf.Store, conf *Configuration) error {
	return gconf.Save(db, configPkg, conf)
}

// escrowCondition is the condition guarding all market held assets.
// Its address owns every listed token and the pooled listing fees.
var escrowCondition = bazaar.NewCondition("market", "escrow", []byte("pool"))

// EscrowAddress returns the address holding listed tokens and pooled
// listing fees.
func EscrowAddress() bazaar.Address {
	return escrowCondition.Address()
}
