package orm

import (
	"github.com/nftbazaar/bazaar"
)

// Validater can check its own consistency.
type Validater interface {
	Validate() error
}

// Object is a bucket entry: a key, joined with the bucket prefix in
// storage, and a value, typically a thin wrapper over a protobuf
// type.
type Object interface {
	Keyed
	Cloneable
	// Validate returns error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validater
	Value() bazaar.Persistent
}

// Reader loads objects from the database.
type Reader interface {
	Get(db bazaar.ReadOnlyKVStore, key []byte) (Object, error)
}

// Keyed carries its own storage key.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable produces a fresh object to unmarshal into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is the value side of a SimpleObj: validatable,
// serializable and copyable.
type CloneableData interface {
	Validater
	bazaar.Persistent
	Copy() CloneableData
}
