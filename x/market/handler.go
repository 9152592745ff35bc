package market

import (
	"encoding/hex"
	"strconv"

	"github.com/tendermint/tendermint/libs/common"

	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/x"
	"github.com/nftbazaar/bazaar/x/cash"
	"github.com/nftbazaar/bazaar/x/nft"
)

const (
	createListingCost int64 = 300
	buyCost           int64 = 200
	delistCost        int64 = 100
	updatePriceCost   int64 = 50
	updateConfigCost  int64 = 50
	withdrawCost      int64 = 100
	recoverTokenCost  int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, ctrl cash.Controller, reg nft.Registry) {
	bucket := NewItemBucket()
	r.Handle(pathCreateListing, CreateListingHandler{auth, bucket, ctrl, reg})
	r.Handle(pathBuy, BuyHandler{auth, bucket, ctrl, reg})
	r.Handle(pathDelist, DelistHandler{auth, bucket, reg})
	r.Handle(pathUpdatePrice, UpdatePriceHandler{auth, bucket})
	r.Handle(pathUpdateConfig, UpdateConfigurationHandler{auth})
	r.Handle(pathWithdraw, WithdrawHandler{auth, ctrl})
	r.Handle(pathRecoverToken, RecoverTokenHandler{auth, bucket, reg})
}

// RegisterQuery will register the items bucket, its filtered views
// and the configuration singleton.
func RegisterQuery(qr bazaar.QueryRouter) {
	bucket := NewItemBucket()
	bucket.Register("items", qr)
	qr.Register("/items/listed", listedQuery{bucket})
	qr.Register("/items/owner", ownerQuery{bucket})
	qr.Register("/items/seller", sellerQuery{bucket})
	qr.Register("/config/market", configQuery{})
	nft.RegisterQuery(qr)
}

//---- CreateListingHandler

// CreateListingHandler lists a token for sale, minting it first when
// the message carries no token ID.
type CreateListingHandler struct {
	auth   x.Authenticator
	bucket ItemBucket
	ctrl   cash.Controller
	reg    nft.Registry
}

var _ bazaar.Handler = CreateListingHandler{}

// Check verifies the message but does not mutate anything permanent
func (h CreateListingHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: createListingCost}, nil
}

// Deliver charges the listing fee, escrows the token and writes a
// fresh listing record.
func (h CreateListingHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	seller := x.MainSigner(ctx, h.auth).Address()
	escrow := EscrowAddress()

	// the fee goes into the pooled balance, not to the platform owner
	if conf.ListingFee > 0 {
		if err := h.ctrl.MoveCoins(db, seller, escrow, conf.ListingFee); err != nil {
			return nil, errors.Wrap(err, "charging listing fee")
		}
	}

	tokenID := msg.TokenId
	minted := false
	if len(tokenID) == 0 {
		tokenID, err = h.reg.Mint(db, seller, msg.TokenUri)
		if err != nil {
			return nil, err
		}
		minted = true
	} else {
		item, err := h.bucket.GetItem(db, tokenID)
		if err != nil {
			return nil, err
		}
		if item != nil && item.Listed {
			return nil, errors.Wrap(errors.ErrState, "already listed")
		}
	}
	if err := h.reg.Transfer(db, seller, escrow, tokenID); err != nil {
		return nil, errors.Wrap(err, "escrowing token")
	}

	// a relisting replaces the whole record
	item := &MarketItem{
		TokenId: tokenID,
		Seller:  seller,
		Owner:   escrow,
		Price:   msg.Price,
		Sold:    false,
		Listed:  true,
	}
	if err := h.bucket.Save(db, NewItemObj(item)); err != nil {
		return nil, err
	}

	res := &bazaar.DeliverResult{
		Data: tokenID,
		Tags: itemTags(tokenID, "listed"),
	}
	if minted {
		res.Tags = append(itemTags(tokenID, "created"), res.Tags...)
	}
	return res, nil
}

func (h CreateListingHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*CreateListingMsg, *Configuration, error) {
	var msg CreateListingMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if msg.ListingFee != conf.ListingFee {
		return nil, nil, errors.Wrapf(errors.ErrAmount, "listing fee must be %d", conf.ListingFee)
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	if len(msg.TokenId) != 0 {
		// relisting requires the signer to still hold the token
		token, err := h.reg.Load(db, msg.TokenId)
		if err != nil {
			return nil, nil, err
		}
		if !token.OwnerAddress().Equals(signer.Address()) {
			return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not token owner")
		}
	}
	return &msg, conf, nil
}

//---- BuyHandler

// BuyHandler settles a purchase: payment to the seller, fee from the
// pool to the platform owner, token to the buyer.
type BuyHandler struct {
	auth   x.Authenticator
	bucket ItemBucket
	ctrl   cash.Controller
	reg    nft.Registry
}

var _ bazaar.Handler = BuyHandler{}

// Check verifies the purchase is possible right now
func (h BuyHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: buyCost}, nil
}

// Deliver performs the settlement. Any failed fund movement aborts
// with an error so the savepoint rolls back all partial writes.
func (h BuyHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, item, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	buyer := x.MainSigner(ctx, h.auth).Address()
	escrow := EscrowAddress()

	// full payment to the seller
	if err := h.ctrl.MoveCoins(db, buyer, item.SellerAddress(), msg.Payment); err != nil {
		return nil, errors.Wrap(err, "paying seller")
	}
	// the platform fee is drawn from the pooled listing fees
	if conf.ListingFee > 0 {
		if err := h.ctrl.MoveCoins(db, escrow, conf.OwnerAddress(), conf.ListingFee); err != nil {
			return nil, errors.Wrap(err, "disbursing fee")
		}
	}
	if err := h.reg.Transfer(db, escrow, buyer, msg.TokenId); err != nil {
		return nil, errors.Wrap(err, "releasing token")
	}

	item.Owner = buyer
	item.Sold = true
	item.Listed = false
	if err := h.bucket.Save(db, NewItemObj(item)); err != nil {
		return nil, err
	}
	if _, err := h.bucket.MarkSold(db); err != nil {
		return nil, err
	}

	tags := itemTags(msg.TokenId, "sold")
	tags = append(tags,
		common.KVPair{Key: []byte("market:seller"), Value: []byte(item.SellerAddress().String())},
		common.KVPair{Key: []byte("market:buyer"), Value: []byte(buyer.String())},
		common.KVPair{Key: []byte("market:price"), Value: []byte(strconv.FormatInt(item.Price, 10))},
	)
	return &bazaar.DeliverResult{Data: msg.TokenId, Tags: tags}, nil
}

func (h BuyHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*BuyMsg, *MarketItem, error) {
	var msg BuyMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	item, err := h.bucket.GetItem(db, msg.TokenId)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "item %x", msg.TokenId)
	}
	if !item.Listed || item.Sold {
		return nil, nil, errors.Wrap(errors.ErrState, "not for sale")
	}
	if msg.Payment != item.Price {
		return nil, nil, errors.Wrapf(errors.ErrAmount, "price is %d", item.Price)
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	if signer.Address().Equals(item.SellerAddress()) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "seller cannot buy own item")
	}
	return &msg, item, nil
}

//---- DelistHandler

// DelistHandler takes an unsold listing off the market and returns
// the token to the seller.
type DelistHandler struct {
	auth   x.Authenticator
	bucket ItemBucket
	reg    nft.Registry
}

var _ bazaar.Handler = DelistHandler{}

// Check verifies the delisting is allowed
func (h DelistHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: delistCost}, nil
}

// Deliver returns the token and unlists the item. No funds move, the
// listing fee is not refunded.
func (h DelistHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, item, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	seller := item.SellerAddress()
	if err := h.reg.Transfer(db, EscrowAddress(), seller, msg.TokenId); err != nil {
		return nil, errors.Wrap(err, "returning token")
	}

	item.Owner = seller
	item.Listed = false
	if err := h.bucket.Save(db, NewItemObj(item)); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{
		Data: msg.TokenId,
		Tags: itemTags(msg.TokenId, "delisted"),
	}, nil
}

func (h DelistHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*DelistMsg, *MarketItem, error) {
	var msg DelistMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	item, err := h.bucket.GetItem(db, msg.TokenId)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "item %x", msg.TokenId)
	}
	if !h.auth.HasAddress(ctx, item.SellerAddress()) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the seller can delist")
	}
	if !item.Listed || item.Sold {
		return nil, nil, errors.Wrap(errors.ErrState, "not listed")
	}
	return &msg, item, nil
}

//---- UpdatePriceHandler

// UpdatePriceHandler changes the asking price of an active listing
// in place, without re-escrow.
type UpdatePriceHandler struct {
	auth   x.Authenticator
	bucket ItemBucket
}

var _ bazaar.Handler = UpdatePriceHandler{}

// Check verifies the price update is allowed
func (h UpdatePriceHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: updatePriceCost}, nil
}

// Deliver mutates the price of the listing record
func (h UpdatePriceHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, item, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	item.Price = msg.Price
	if err := h.bucket.Save(db, NewItemObj(item)); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{Data: msg.TokenId}, nil
}

func (h UpdatePriceHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*UpdatePriceMsg, *MarketItem, error) {
	var msg UpdatePriceMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	item, err := h.bucket.GetItem(db, msg.TokenId)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "item %x", msg.TokenId)
	}
	if !h.auth.HasAddress(ctx, item.SellerAddress()) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the seller can update the price")
	}
	if !item.Listed || item.Sold {
		return nil, nil, errors.Wrap(errors.ErrState, "not listed")
	}
	return &msg, item, nil
}

//---- UpdateConfigurationHandler

// UpdateConfigurationHandler lets the platform owner replace the
// market configuration.
type UpdateConfigurationHandler struct {
	auth x.Authenticator
}

var _ bazaar.Handler = UpdateConfigurationHandler{}

// Check verifies the caller and the patch
func (h UpdateConfigurationHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: updateConfigCost}, nil
}

// Deliver stores the new configuration
func (h UpdateConfigurationHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := saveConf(db, msg.Patch); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*UpdateConfigurationMsg, error) {
	var msg UpdateConfigurationMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.OwnerAddress()) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the platform owner can configure")
	}
	return &msg, nil
}

//---- WithdrawHandler

// WithdrawHandler sweeps the entire pooled listing fee balance to the
// platform owner.
type WithdrawHandler struct {
	auth x.Authenticator
	ctrl cash.Controller
}

var _ bazaar.Handler = WithdrawHandler{}

// Check verifies the caller and that there is something to withdraw
func (h WithdrawHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver moves the whole pool to the platform owner
func (h WithdrawHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	conf, amount, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, EscrowAddress(), conf.OwnerAddress(), amount); err != nil {
		return nil, errors.Wrap(err, "withdrawing pool")
	}
	return &bazaar.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("market:action"), Value: []byte("withdrawn")},
		},
	}, nil
}

func (h WithdrawHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*Configuration, int64, error) {
	var msg WithdrawMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, 0, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, 0, err
	}
	if !h.auth.HasAddress(ctx, conf.OwnerAddress()) {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "only the platform owner can withdraw")
	}
	amount, err := h.ctrl.Balance(db, EscrowAddress())
	if err != nil {
		return nil, 0, err
	}
	if amount == 0 {
		return nil, 0, errors.Wrap(errors.ErrEmpty, "nothing to withdraw")
	}
	return conf, amount, nil
}

//---- RecoverTokenHandler

// RecoverTokenHandler force-transfers an escrowed token and drops its
// listing record. Admin escape hatch for stranded escrow state.
type RecoverTokenHandler struct {
	auth   x.Authenticator
	bucket ItemBucket
	reg    nft.Registry
}

var _ bazaar.Handler = RecoverTokenHandler{}

// Check verifies the recovery is possible
func (h RecoverTokenHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: recoverTokenCost}, nil
}

// Deliver moves the token out of escrow and deletes the listing
// record unconditionally.
func (h RecoverTokenHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.reg.Transfer(db, EscrowAddress(), bazaar.Address(msg.Destination), msg.TokenId); err != nil {
		return nil, errors.Wrap(err, "recovering token")
	}
	if err := h.bucket.Delete(db, msg.TokenId); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{
		Data: msg.TokenId,
		Tags: itemTags(msg.TokenId, "recovered"),
	}, nil
}

func (h RecoverTokenHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*RecoverTokenMsg, error) {
	var msg RecoverTokenMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.OwnerAddress()) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the platform owner can recover")
	}
	token, err := h.reg.Load(db, msg.TokenId)
	if err != nil {
		return nil, err
	}
	if !token.OwnerAddress().Equals(EscrowAddress()) {
		return nil, errors.Wrap(errors.ErrState, "token not held in escrow")
	}
	return &msg, nil
}

func itemTags(tokenID []byte, action string) []common.KVPair {
	return []common.KVPair{
		{Key: []byte("market:action"), Value: []byte(action)},
		{Key: []byte("market:token"), Value: []byte(hex.EncodeToString(tokenID))},
	}
}
