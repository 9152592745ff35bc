package cash

import (
	"github.com/nftbazaar/bazaar"
)

const optKey = "cash"

// GenesisAccount is one funded account in the genesis file. The
// bazaar.Address type makes the json hex, not base64.
type GenesisAccount struct {
	Address bazaar.Address `json:"address"`
	Balance int64          `json:"balance"`
}

// Initializer seeds wallets from the genesis file.
type Initializer struct{}

var _ bazaar.Initializer = Initializer{}

// FromGenesis reads the initial accounts and stores a wallet for
// each.
func (Initializer) FromGenesis(opts bazaar.Options, kv bazaar.KVStore) error {
	accts := []GenesisAccount{}
	err := opts.ReadOptions(optKey, &accts)
	if err != nil {
		return err
	}
	bucket := NewBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return err
		}
		wallet := NewWallet(acct.Address)
		if err := wallet.Add(acct.Balance); err != nil {
			return err
		}
		if err := bucket.Save(kv, wallet); err != nil {
			return err
		}
	}
	return nil
}
