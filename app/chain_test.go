package app

import (
	"context"
	"testing"

	"github.com/nftbazaar/bazaar/bazaartest"
	"github.com/nftbazaar/bazaar/bazaartest/assert"
	"github.com/nftbazaar/bazaar/errors"
)

func TestChainCallsAllDecorators(t *testing.T) {
	var d1, d2, d3 bazaartest.Decorator
	var h bazaartest.Handler

	stack := ChainDecorators(&d1, &d2, nil, &d3).WithHandler(&h)

	_, err := stack.Check(context.Background(), nil, nil)
	assert.Nil(t, err)
	_, err = stack.Deliver(context.Background(), nil, nil)
	assert.Nil(t, err)

	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 2, d3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainAbortsOnError(t *testing.T) {
	d1 := bazaartest.Decorator{}
	d2 := bazaartest.Decorator{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrUnauthorized,
	}
	var h bazaartest.Handler

	stack := ChainDecorators(&d1, &d2).WithHandler(&h)

	if _, err := stack.Check(context.Background(), nil, nil); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %+v", err)
	}
	if _, err := stack.Deliver(context.Background(), nil, nil); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %+v", err)
	}

	// the failing decorator never called further down
	assert.Equal(t, 0, h.CallCount())
}

func TestChainExtension(t *testing.T) {
	var d1, d2 bazaartest.Decorator
	var h bazaartest.Handler

	stack := ChainDecorators(&d1).Chain(&d2).WithHandler(&h)
	_, err := stack.Deliver(context.Background(), nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, 1, d1.DeliverCallCount())
	assert.Equal(t, 1, d2.DeliverCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}
