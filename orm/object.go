package orm

import (
	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
)

var _ Object = (*SimpleObj)(nil)

// SimpleObj is the plain key plus value pairing most buckets store.
// Typed wrappers usually embed or construct it.
type SimpleObj struct {
	key   []byte
	value CloneableData
}

// NewSimpleObj binds a key to a value.
func NewSimpleObj(key []byte, value CloneableData) *SimpleObj {
	return &SimpleObj{
		key:   key,
		value: value,
	}
}

// Value returns the stored data.
func (o SimpleObj) Value() bazaar.Persistent {
	return o.value
}

// Key returns the storage key.
func (o SimpleObj) Key() []byte {
	return o.key
}

// Validate requires both fields and defers to the value's own
// validation.
func (o SimpleObj) Validate() error {
	if len(o.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	if o.value == nil {
		return errors.Wrap(errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

// SetKey rebinds the object to another key.
func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

// Clone deep-copies the object.
func (o *SimpleObj) Clone() Object {
	res := &SimpleObj{
		value: o.value.Copy(),
	}
	if len(o.key) > 0 {
		res.key = append([]byte(nil), o.key...)
	}
	return res
}
