package bazaartest

import (
	"crypto/rand"

	"github.com/nftbazaar/bazaar"
)

// NewCondition returns a random condition. Each call produces a unique
// condition with a unique address.
func NewCondition() bazaar.Condition {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		panic(err)
	}
	return bazaar.NewCondition("sigs", "ed25519", raw)
}
