package cash

import "github.com/nftbazaar/bazaar/errors"

// ErrTransfer is returned when moving funds between wallets fails,
// most notably when the source wallet cannot cover the amount.
var ErrTransfer = errors.Register(1000, "transfer failed")
