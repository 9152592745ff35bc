package utils

import (
	"context"
	"testing"

	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/bazaartest"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	nope := errors.Wrap(errors.ErrInput, "not today")

	cases := map[string]struct {
		save      Savepoint
		handler   bazaar.Handler
		isCheck   bool
		wantErr   error
		// key written by the handler should survive iff committed
		committed bool
	}{
		"check, passthrough, success": {
			save:      NewSavepoint(),
			handler:   writeHandler("a", "1", nil),
			isCheck:   true,
			committed: true,
		},
		"check, passthrough, failure writes through": {
			save:      NewSavepoint(),
			handler:   writeHandler("a", "1", nope),
			isCheck:   true,
			wantErr:   nope,
			committed: true,
		},
		"check, savepoint, success": {
			save:      NewSavepoint().OnCheck(),
			handler:   writeHandler("a", "1", nil),
			isCheck:   true,
			committed: true,
		},
		"check, savepoint, failure rolls back": {
			save:      NewSavepoint().OnCheck(),
			handler:   writeHandler("a", "1", nope),
			isCheck:   true,
			wantErr:   nope,
			committed: false,
		},
		"deliver, savepoint, success": {
			save:      NewSavepoint().OnDeliver(),
			handler:   writeHandler("a", "1", nil),
			committed: true,
		},
		"deliver, savepoint, failure rolls back": {
			save:      NewSavepoint().OnDeliver(),
			handler:   writeHandler("a", "1", nope),
			wantErr:   nope,
			committed: false,
		},
		"deliver, check-only savepoint, failure writes through": {
			save:      NewSavepoint().OnCheck(),
			handler:   writeHandler("a", "1", nope),
			wantErr:   nope,
			committed: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()

			var err error
			if tc.isCheck {
				_, err = tc.save.Check(ctx, db, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, db, nil, tc.handler)
			}
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.ErrInput.Is(err))
			} else {
				require.NoError(t, err)
			}

			val, err := db.Get([]byte("a"))
			require.NoError(t, err)
			if tc.committed {
				assert.Equal(t, []byte("1"), val)
			} else {
				assert.Nil(t, val)
			}
		})
	}
}

// writeHandler writes the key, value pair on every call and returns err.
func writeHandler(key, value string, err error) bazaar.Handler {
	h := bazaartest.Handler{CheckErr: err, DeliverErr: err}
	return &writingHandler{h: &h, key: []byte(key), value: []byte(value)}
}

type writingHandler struct {
	h     bazaar.Handler
	key   []byte
	value []byte
}

func (w *writingHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if err := db.Set(w.key, w.value); err != nil {
		return nil, err
	}
	return w.h.Check(ctx, db, tx)
}

func (w *writingHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	if err := db.Set(w.key, w.value); err != nil {
		return nil, err
	}
	return w.h.Deliver(ctx, db, tx)
}
