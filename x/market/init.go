package market

import (
	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/gconf"
)

// Initializer fulfils the Initializer interface to load the market
// configuration from the genesis file
type Initializer struct{}

var _ bazaar.Initializer = Initializer{}

// genesisConf is the human friendly form of the configuration, with
// the owner address hex encoded.
type genesisConf struct {
	Owner      bazaar.Address `json:"owner"`
	ListingFee int64          `json:"listing_fee"`
}

// FromGenesis will parse the market configuration from genesis and
// store it in the database
func (Initializer) FromGenesis(opts bazaar.Options, kv bazaar.KVStore) error {
	var confOptions bazaar.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[configPkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", configPkg)
	}
	var gc genesisConf
	if err := confOptions.ReadOptions(configPkg, &gc); err != nil {
		return errors.Wrap(err, "read market configuration")
	}
	conf := Configuration{
		Owner:      gc.Owner,
		ListingFee: gc.ListingFee,
	}
	return gconf.Save(kv, configPkg, &conf)
}
