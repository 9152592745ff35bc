package market

import (
	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/orm"
)

// Path constants for the router
const (
	pathCreateListing = "market/create"
	pathBuy           = "market/buy"
	pathDelist        = "market/delist"
	pathUpdatePrice   = "market/update_price"
	pathUpdateConfig  = "market/update_config"
	pathWithdraw      = "market/withdraw"
	pathRecoverToken  = "market/recover"
)

// Ensure all messages fulfil the bazaar.Msg interface
var (
	_ bazaar.Msg = (*CreateListingMsg)(nil)
	_ bazaar.Msg = (*BuyMsg)(nil)
	_ bazaar.Msg = (*DelistMsg)(nil)
	_ bazaar.Msg = (*UpdatePriceMsg)(nil)
	_ bazaar.Msg = (*UpdateConfigurationMsg)(nil)
	_ bazaar.Msg = (*WithdrawMsg)(nil)
	_ bazaar.Msg = (*RecoverTokenMsg)(nil)
)

// Path fulfils bazaar.Msg to allow routing
func (CreateListingMsg) Path() string {
	return pathCreateListing
}

// Validate makes sure a listing request is self consistent. The fee
// amount is checked against the configuration in the handler. An
// absent token id mints a new token from the uri, which may be empty.
func (m *CreateListingMsg) Validate() error {
	if len(m.TokenId) != 0 {
		if err := orm.ValidateSequence(m.TokenId); err != nil {
			return errors.Wrap(err, "token id")
		}
	}
	if m.Price <= 0 {
		return errors.Wrap(errors.ErrAmount, "price must be positive")
	}
	if m.ListingFee < 0 {
		return errors.Wrap(errors.ErrAmount, "negative listing fee")
	}
	return nil
}

// Path fulfils bazaar.Msg to allow routing
func (BuyMsg) Path() string {
	return pathBuy
}

// Validate makes sure a purchase request is self consistent
func (m *BuyMsg) Validate() error {
	if err := orm.ValidateSequence(m.TokenId); err != nil {
		return errors.Wrap(err, "token id")
	}
	if m.Payment <= 0 {
		return errors.Wrap(errors.ErrAmount, "payment must be positive")
	}
	return nil
}

// Path fulfils bazaar.Msg to allow routing
func (DelistMsg) Path() string {
	return pathDelist
}

// Validate makes sure a delist request is self consistent
func (m *DelistMsg) Validate() error {
	if err := orm.ValidateSequence(m.TokenId); err != nil {
		return errors.Wrap(err, "token id")
	}
	return nil
}

// Path fulfils bazaar.Msg to allow routing
func (UpdatePriceMsg) Path() string {
	return pathUpdatePrice
}

// Validate makes sure a price update is self consistent
func (m *UpdatePriceMsg) Validate() error {
	if err := orm.ValidateSequence(m.TokenId); err != nil {
		return errors.Wrap(err, "token id")
	}
	if m.Price <= 0 {
		return errors.Wrap(errors.ErrAmount, "price must be positive")
	}
	return nil
}

// Path fulfils bazaar.Msg to allow routing
func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfig
}

// Validate makes sure the patch is a complete valid configuration
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return m.Patch.Validate()
}

// Path fulfils bazaar.Msg to allow routing
func (WithdrawMsg) Path() string {
	return pathWithdraw
}

// Validate fulfils bazaar.Msg, there is nothing to check
func (m *WithdrawMsg) Validate() error {
	return nil
}

// Path fulfils bazaar.Msg to allow routing
func (RecoverTokenMsg) Path() string {
	return pathRecoverToken
}

// Validate makes sure a recovery request is self consistent
func (m *RecoverTokenMsg) Validate() error {
	if err := orm.ValidateSequence(m.TokenId); err != nil {
		return errors.Wrap(err, "token id")
	}
	if err := bazaar.Address(m.Destination).Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return nil
}
