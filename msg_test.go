package bazaar_test

import (
	"testing"

	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/bazaartest"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMsg(t *testing.T) {
	msg := &bazaartest.Msg{RoutePath: "test/loadmsg"}
	tx := &bazaartest.Tx{Msg: msg}

	var dest bazaartest.Msg
	require.NoError(t, bazaar.LoadMsg(tx, &dest))
	assert.Equal(t, "test/loadmsg", dest.Path())
}

func TestLoadMsgInvalid(t *testing.T) {
	msg := &bazaartest.Msg{
		RoutePath: "test/loadmsg",
		Err:       errors.ErrMsg.New("crashed"),
	}
	tx := &bazaartest.Tx{Msg: msg}

	var dest bazaartest.Msg
	err := bazaar.LoadMsg(tx, &dest)
	assert.True(t, errors.ErrMsg.Is(err))
}

func TestLoadMsgWrongDestination(t *testing.T) {
	tx := &bazaartest.Tx{Msg: &bazaartest.Msg{RoutePath: "test/loadmsg"}}

	var dest otherMsg
	err := bazaar.LoadMsg(tx, &dest)
	assert.True(t, errors.ErrType.Is(err))
}

func TestLoadMsgBrokenTx(t *testing.T) {
	tx := &bazaartest.Tx{Err: errors.ErrState.New("no message")}

	var dest bazaartest.Msg
	err := bazaar.LoadMsg(tx, &dest)
	assert.True(t, errors.ErrState.Is(err))
}

func TestGetPath(t *testing.T) {
	tx := &bazaartest.Tx{Msg: &bazaartest.Msg{RoutePath: "test/path"}}
	assert.Equal(t, "test/path", bazaar.GetPath(tx))

	broken := &bazaartest.Tx{Err: errors.ErrState.New("no message")}
	assert.Equal(t, "(missing)", bazaar.GetPath(broken))
}

type otherMsg struct {
	bazaartest.Msg
}
