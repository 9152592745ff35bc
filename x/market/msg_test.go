package market

import (
	"testing"

	"github.com/nftbazaar/bazaar/bazaartest"
	"github.com/nftbazaar/bazaar/bazaartest/assert"
	"github.com/nftbazaar/bazaar/errors"
)

func TestCreateListingMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     CreateListingMsg
		wantErr *errors.Error
	}{
		"mint and list": {
			msg: CreateListingMsg{TokenUri: "ipfs://x", Price: 10, ListingFee: 1},
		},
		"relist by id": {
			msg: CreateListingMsg{TokenId: bazaartest.SequenceID(4), Price: 10, ListingFee: 1},
		},
		"zero fee is valid": {
			msg: CreateListingMsg{TokenUri: "ipfs://x", Price: 10},
		},
		"mint with empty uri": {
			msg: CreateListingMsg{Price: 10, ListingFee: 1},
		},
		"zero price": {
			msg:     CreateListingMsg{TokenUri: "ipfs://x", ListingFee: 1},
			wantErr: errors.ErrAmount,
		},
		"negative price": {
			msg:     CreateListingMsg{TokenUri: "ipfs://x", Price: -4, ListingFee: 1},
			wantErr: errors.ErrAmount,
		},
		"negative fee": {
			msg:     CreateListingMsg{TokenUri: "ipfs://x", Price: 10, ListingFee: -1},
			wantErr: errors.ErrAmount,
		},
		"bad token id": {
			msg: CreateListingMsg{TokenId: []byte{1, 2}, Price: 10},
			// sequence ids are always 8 bytes
			wantErr: errors.ErrInput,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestBuyMsgValidate(t *testing.T) {
	good := BuyMsg{TokenId: bazaartest.SequenceID(1), Payment: 5}
	assert.Nil(t, good.Validate())

	bad := BuyMsg{TokenId: bazaartest.SequenceID(1)}
	if err := bad.Validate(); !errors.ErrAmount.Is(err) {
		t.Fatalf("want amount error, got %+v", err)
	}

	short := BuyMsg{TokenId: []byte{1}, Payment: 5}
	assert.IsErr(t, errors.ErrInput, short.Validate())
}

func TestUpdateConfigurationMsgValidate(t *testing.T) {
	empty := UpdateConfigurationMsg{}
	if err := empty.Validate(); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty error, got %+v", err)
	}

	msg := UpdateConfigurationMsg{Patch: &Configuration{
		Owner:      bazaartest.NewCondition().Address(),
		ListingFee: 5,
	}}
	assert.Nil(t, msg.Validate())
}

func TestRecoverTokenMsgValidate(t *testing.T) {
	good := RecoverTokenMsg{
		TokenId:     bazaartest.SequenceID(1),
		Destination: bazaartest.NewCondition().Address(),
	}
	assert.Nil(t, good.Validate())

	bad := RecoverTokenMsg{
		TokenId:     bazaartest.SequenceID(1),
		Destination: []byte("too-short"),
	}
	assert.IsErr(t, errors.ErrInput, bad.Validate())
}

func TestMsgPaths(t *testing.T) {
	assert.Equal(t, "market/create", CreateListingMsg{}.Path())
	assert.Equal(t, "market/buy", BuyMsg{}.Path())
	assert.Equal(t, "market/delist", DelistMsg{}.Path())
	assert.Equal(t, "market/update_price", UpdatePriceMsg{}.Path())
	assert.Equal(t, "market/update_config", UpdateConfigurationMsg{}.Path())
	assert.Equal(t, "market/withdraw", WithdrawMsg{}.Path())
	assert.Equal(t, "market/recover", RecoverTokenMsg{}.Path())
}
