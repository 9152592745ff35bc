package orm

import (
	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
)

var (
	errEmptySequence     = errors.Wrap(errors.ErrEmpty, "sequence missing")
	errBadSequenceLength = errors.Wrap(errors.ErrInput, "sequence is invalid length (expect 8 bytes)")
)

// queryPrefix returns all models with this prefix, in ascending key
// order. The full scan is intentional: buckets maintain no secondary
// indexes and favor write simplicity over read throughput.
func queryPrefix(db bazaar.ReadOnlyKVStore, prefix []byte) ([]bazaar.Model, error) {
	iter, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(iter)
}

// ConsumeIterator will read all remaining data into a slice
// and release the iterator.
func ConsumeIterator(itr bazaar.Iterator) ([]bazaar.Model, error) {
	defer itr.Release()

	var res []bazaar.Model
	for {
		key, value, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, bazaar.Model{Key: key, Value: value})
	}
}

// prefixRange turns a prefix into (start, end) to create
// an iterator over all keys with this prefix.
//
// In the special case of empty prefix, it iterates over everything.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and increment it by one, dropping any byte that
	// overflows. If all bytes were 0xff there is no upper limit.
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for {
		l := len(end) - 1
		end[l]++
		if end[l] != 0 {
			break
		}
		end = end[:l]
		if len(end) == 0 {
			return prefix, nil
		}
	}
	return prefix, end
}
