package cash

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/bazaartest"
	"github.com/nftbazaar/bazaar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFromGenesis(t *testing.T) {
	addr := bazaartest.NewCondition().Address()

	genesis := fmt.Sprintf(`[{"address": "%s", "balance": 123456789}]`, addr)
	opts := bazaar.Options{
		"cash": json.RawMessage(genesis),
	}

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController(NewBucket())
	got, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, int64(123456789), got)
}

func TestInitFromGenesisInvalidAddress(t *testing.T) {
	opts := bazaar.Options{
		"cash": json.RawMessage(`[{"address": "0102", "balance": 5}]`),
	}
	db := store.MemStore()
	if err := (Initializer{}).FromGenesis(opts, db); err == nil {
		t.Fatal("expected an error for a truncated address")
	}
}
