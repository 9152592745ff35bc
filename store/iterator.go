package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/nftbazaar/bazaar/errors"
)

///////////////////////////////////////////////////////
// From btree range to items

// ascendBtree collects all items in the half-open range [start, end)
// in ascending order. The cached layer is fully in memory, so
// materializing the range is cheap compared to the round trips a
// lazy cursor would save.
func ascendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var res []btree.Item
	insert := func(item btree.Item) bool {
		res = append(res, item)
		return true
	}

	if start == nil && end == nil {
		bt.Ascend(insert)
	} else if start == nil { // end != nil
		bt.AscendLessThan(treeKey{end}, insert)
	} else if end == nil { // start != nil
		bt.AscendGreaterOrEqual(treeKey{start}, insert)
	} else { // both != nil
		bt.AscendRange(treeKey{start}, treeKey{end}, insert)
	}
	return res
}

// descendBtree collects all items in the half-open range [start, end)
// in descending order.
func descendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var res []btree.Item
	insert := func(item btree.Item) bool {
		res = append(res, item)
		return true
	}

	if start == nil && end == nil {
		bt.Descend(insert)
	} else if start == nil { // end != nil
		bt.DescendLessOrEqual(beforeKey{end}, insert)
	} else if end == nil { // start != nil
		bt.DescendGreaterThan(beforeKey{start}, insert)
	} else { // both != nil
		bt.DescendRange(beforeKey{end}, beforeKey{start}, insert)
	}
	return res
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// itemIter merges the materialized cache layer with the backing
// iterator, respecting overwrites and deletes recorded in the cache.
type itemIter struct {
	items []btree.Item
	idx   int
	// if we are iterating in a cache-wrap (and who isn't),
	// we need to combine this iterator with the parent
	parentIter Iterator
	parentKey  []byte
	parentVal  []byte
	parentDone bool
	primed     bool
	reverse    bool
	released   bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(items []btree.Item, parentIter Iterator, reverse bool) *itemIter {
	return &itemIter{
		items:      items,
		parentIter: parentIter,
		reverse:    reverse,
	}
}

// Next returns the next key-value pair, combining the cached writes
// with the parent data, or ErrIteratorDone when both are exhausted.
func (i *itemIter) Next() ([]byte, []byte, error) {
	if i.released {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "iterator released")
	}
	if !i.primed {
		if err := i.advanceParent(); err != nil {
			return nil, nil, err
		}
		i.primed = true
	}

	for {
		switch i.firstKey() {
		case none:
			return nil, nil, errors.ErrIteratorDone
		case parent:
			key, value := i.parentKey, i.parentVal
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		case us, both:
			item := i.items[i.idx]
			sameKey := i.firstKey() == both
			i.idx++
			if sameKey {
				// cached write shadows the parent entry
				if err := i.advanceParent(); err != nil {
					return nil, nil, err
				}
			}
			if set, ok := item.(writeRecord); ok {
				return set.Key(), set.value, nil
			}
			// deleted in the cache layer, skip and continue
		}
	}
}

// Release frees all iterator resources. Safe to call many times.
func (i *itemIter) Release() {
	if !i.released {
		i.released = true
		i.items = nil
		i.parentIter.Release()
	}
}

// advanceParent reads the next parent entry into the lookahead slot.
func (i *itemIter) advanceParent() error {
	if i.parentDone {
		return nil
	}
	key, value, err := i.parentIter.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		i.parentDone = true
		i.parentKey = nil
		i.parentVal = nil
	case err != nil:
		return err
	default:
		i.parentKey = key
		i.parentVal = value
	}
	return nil
}

// firstKey selects the iterator holding the next key in iteration order
func (i *itemIter) firstKey() source {
	usValid := i.idx < len(i.items)
	parValid := !i.parentDone

	// if only one or none is valid, it is clear which to use
	if !parValid {
		if !usValid {
			return none
		}
		return us
	} else if !usValid {
		return parent
	}

	// both are valid... compare keys....
	usKey := i.items[i.idx].(keyed).Key()
	cmp := bytes.Compare(i.parentKey, usKey)
	if i.reverse {
		cmp = -cmp
	}
	if cmp < 0 {
		return parent
	} else if cmp > 0 {
		return us
	}
	return both
}
