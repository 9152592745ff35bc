package gconf

import (
	"encoding/json"
	"testing"

	"github.com/nftbazaar/bazaar"
	"github.com/nftbazaar/bazaar/bazaartest/assert"
	"github.com/nftbazaar/bazaar/errors"
	"github.com/nftbazaar/bazaar/store"
)

// confFixture is a minimal configuration implementation for tests. The
// binary serialization is JSON to keep the fixture self contained.
type confFixture struct {
	Name string `json:"name"`
	Num  int64  `json:"num"`
}

func (c *confFixture) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *confFixture) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func (c *confFixture) Validate() error {
	if c.Num < 0 {
		return errors.Wrap(errors.ErrInput, "negative num")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	saved := confFixture{Name: "gconf", Num: 42}
	assert.Nil(t, Save(db, "testpkg", &saved))

	var loaded confFixture
	assert.Nil(t, Load(db, "testpkg", &loaded))
	assert.Equal(t, saved, loaded)
}

func TestSaveInvalid(t *testing.T) {
	db := store.MemStore()
	bad := confFixture{Num: -1}
	if err := Save(db, "testpkg", &bad); !errors.ErrInput.Is(err) {
		t.Fatalf("want invalid input, got %+v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	var c confFixture
	if err := Load(db, "testpkg", &c); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestInitConfig(t *testing.T) {
	db := store.MemStore()
	opts := bazaar.Options{
		"conf": []byte(`{"testpkg": {"name": "genesis", "num": 7}}`),
	}

	var c confFixture
	assert.Nil(t, InitConfig(db, opts, "testpkg", &c))
	assert.Equal(t, confFixture{Name: "genesis", Num: 7}, c)

	var loaded confFixture
	assert.Nil(t, Load(db, "testpkg", &loaded))
	assert.Equal(t, c, loaded)
}

func TestInitConfigMissingPackage(t *testing.T) {
	db := store.MemStore()
	opts := bazaar.Options{
		"conf": []byte(`{"otherpkg": {}}`),
	}

	var c confFixture
	if err := InitConfig(db, opts, "testpkg", &c); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}
