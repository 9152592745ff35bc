package cash

import (
	"math"
	"testing"

	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/bazaartest"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveCoins(t *testing.T) {
	alice := bazaartest.NewCondition().Address()
	bob := bazaartest.NewCondition().Address()
	carl := bazaartest.NewCondition().Address()

	ctrl := NewController(NewBucket())

	cases := map[string]struct {
		funds   map[string]int64
		src     bazaar.Address
		dest    bazaar.Address
		amount  int64
		wantErr *errors.Error
		// balances after the move, only checked on success
		want map[string]int64
	}{
		"simple move": {
			funds:  map[string]int64{string(alice): 100},
			src:    alice,
			dest:   bob,
			amount: 60,
			want:   map[string]int64{string(alice): 40, string(bob): 60},
		},
		"whole balance": {
			funds:  map[string]int64{string(alice): 100},
			src:    alice,
			dest:   bob,
			amount: 100,
			want:   map[string]int64{string(alice): 0, string(bob): 100},
		},
		"insufficient funds": {
			funds:   map[string]int64{string(alice): 50},
			src:     alice,
			dest:    bob,
			amount:  51,
			wantErr: ErrTransfer,
		},
		"missing source wallet": {
			funds:   map[string]int64{string(alice): 50},
			src:     carl,
			dest:    bob,
			amount:  10,
			wantErr: ErrTransfer,
		},
		"zero amount": {
			funds:   map[string]int64{string(alice): 50},
			src:     alice,
			dest:    bob,
			amount:  0,
			wantErr: errors.ErrAmount,
		},
		"move to self": {
			funds:  map[string]int64{string(alice): 100},
			src:    alice,
			dest:   alice,
			amount: 60,
			want:   map[string]int64{string(alice): 100},
		},
		"move to self without funds": {
			funds:   map[string]int64{string(alice): 50},
			src:     alice,
			dest:    alice,
			amount:  51,
			wantErr: ErrTransfer,
		},
		"negative amount": {
			funds:   map[string]int64{string(alice): 50},
			src:     alice,
			dest:    bob,
			amount:  -5,
			wantErr: errors.ErrAmount,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			for addr, balance := range tc.funds {
				require.NoError(t, ctrl.IssueCoins(db, bazaar.Address(addr), balance))
			}

			total := int64(0)
			for _, b := range tc.funds {
				total += b
			}

			err := ctrl.MoveCoins(db, tc.src, tc.dest, tc.amount)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)

			for addr, want := range tc.want {
				got, err := ctrl.Balance(db, bazaar.Address(addr))
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}

			// moving funds must not create or destroy them
			sum := int64(0)
			for addr := range tc.want {
				got, _ := ctrl.Balance(db, bazaar.Address(addr))
				sum += got
			}
			assert.Equal(t, total, sum)
		})
	}
}

func TestIssueCoins(t *testing.T) {
	addr := bazaartest.NewCondition().Address()
	ctrl := NewController(NewBucket())
	db := store.MemStore()

	require.NoError(t, ctrl.IssueCoins(db, addr, 500))
	require.NoError(t, ctrl.IssueCoins(db, addr, 250))

	got, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, int64(750), got)

	if err := ctrl.IssueCoins(db, addr, 0); !errors.ErrAmount.Is(err) {
		t.Fatalf("want amount error, got %+v", err)
	}
}

func TestIssueCoinsOverflow(t *testing.T) {
	addr := bazaartest.NewCondition().Address()
	ctrl := NewController(NewBucket())
	db := store.MemStore()

	require.NoError(t, ctrl.IssueCoins(db, addr, math.MaxInt64))
	if err := ctrl.IssueCoins(db, addr, 1); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want overflow error, got %+v", err)
	}
}

func TestBalanceMissingWallet(t *testing.T) {
	addr := bazaartest.NewCondition().Address()
	ctrl := NewController(NewBucket())
	db := store.MemStore()

	got, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}
