package orm

import (
	"encoding/binary"

	"github.com/nftbazaar/bazaar"
)

// Sequence is a persistent counter. Values grow strictly, both as
// integers from NextInt and under bytes.Compare on NextVal output.
type Sequence struct {
	id []byte
}

// NewSequence returns the sequence stored under "_s.<bucket>:<name>".
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s *Sequence) NextVal(db bazaar.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db, 1)
	return bz, err
}

// NextInt increments the sequence and returns its state as int.
func (s *Sequence) NextInt(db bazaar.KVStore) (int64, error) {
	val, _, err := s.increment(db, 1)
	return val, err
}

// Latest peeks at the most recently handed out value without
// advancing the counter.
func (s *Sequence) Latest(db bazaar.ReadOnlyKVStore) (int64, []byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, nil, err
	}
	return DecodeSequence(raw), raw, nil
}

func (s *Sequence) increment(db bazaar.KVStore, inc int64) (int64, []byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, nil, err
	}
	val := DecodeSequence(raw)
	if inc == 0 {
		return val, raw, nil
	}
	val += inc
	raw = EncodeSequence(val)
	err = db.Set(s.id, raw)
	return val, raw, err
}

// DecodeSequence reads the persisted counter state, nil meaning
// zero.
func DecodeSequence(bz []byte) int64 {
	if bz == nil {
		return 0
	}
	val := binary.BigEndian.Uint64(bz)
	return int64(val)
}

// EncodeSequence renders the counter as its 8-byte storage form.
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}

// ValidateSequence rejects anything that is not a well formed
// 8-byte sequence-generated key.
func ValidateSequence(id []byte) error {
	if len(id) == 0 {
		return errEmptySequence
	}
	if len(id) != 8 {
		return errBadSequenceLength
	}
	return nil
}
