package app

import (
	"context"
	"testing"

	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/bazaartest"
	"github.com/nftbazaar/bazaar/bazaartest/assert"
	"github.com/nftbazaar/bazaar/errors"
)

func TestRouterSuccess(t *testing.T) {
	r := NewRouter()

	var h bazaartest.Handler
	r.Handle("test/good", &h)

	tx := &bazaartest.Tx{Msg: &bazaartest.Msg{RoutePath: "test/good"}}

	if _, err := r.Check(context.Background(), nil, tx); err != nil {
		t.Fatalf("unexpected check error: %+v", err)
	}
	if _, err := r.Deliver(context.Background(), nil, tx); err != nil {
		t.Fatalf("unexpected deliver error: %+v", err)
	}
	assert.Equal(t, 2, h.CallCount())
}

func TestRouterNoHandler(t *testing.T) {
	r := NewRouter()

	tx := &bazaartest.Tx{Msg: &bazaartest.Msg{RoutePath: "test/secret"}}

	if _, err := r.Check(context.Background(), nil, tx); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
	if _, err := r.Deliver(context.Background(), nil, tx); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestRouterInvalidPath(t *testing.T) {
	r := NewRouter()
	assert.Panics(t, func() {
		r.Handle("Bad Path!", &bazaartest.Handler{})
	})
}

func TestRouterDuplicatePath(t *testing.T) {
	r := NewRouter()
	r.Handle("test/dup", &bazaartest.Handler{})
	assert.Panics(t, func() {
		r.Handle("test/dup", &bazaartest.Handler{})
	})
}

var _ bazaar.Handler = (*Router)(nil)
