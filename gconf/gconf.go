package gconf

import (
	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/errors"
)

// ReadStore is the read-only subset of bazaar.KVStore this package
// needs.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store extends ReadStore with writes.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// DBKey returns the database key under which the configuration
// singleton of the given package lives.
func DBKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// ValidMarshaler can validate and serialize itself. Marshal comes for
// free with protobuf messages, Validate must be written by hand.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler can load its state from a binary representation. All
// protobuf messages qualify.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is what a package configuration object must support.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

// Save validates src and stores it as the configuration singleton of
// the given package.
func Save(db Store, pkg string, src ValidMarshaler) error {
	key := DBKey(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s configuration", pkg)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "serialize %s configuration", pkg)
	}
	return db.Set(key, raw)
}

// Load reads the configuration singleton of the given package into
// dst. A package that was never configured returns ErrNotFound.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	key := DBKey(pkg)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "corrupted %s configuration", pkg)
	}
	return nil
}

// InitConfig parses opts["conf"][pkg] into conf and persists it.
// Intended for genesis initializers.
func InitConfig(db Store, opts bazaar.Options, pkg string, conf Configuration) error {
	var confOptions bazaar.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "conf section")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s genesis configuration", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "parse %s configuration", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "store %s configuration", pkg)
	}
	return nil
}
