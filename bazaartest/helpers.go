package bazaartest

import "encoding/binary"

// SequenceID returns an ID encoded as if it was generated by a bucket
// sequence. This is a helper to get the serialized form of a numeric ID.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
