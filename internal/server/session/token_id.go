package session

import (
	"crypto/rand"
	"math/big"
)

const (
	// TokenIDLength is the length of the generated token ids.
	TokenIDLength = 24

	base58 = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

// NewTokenID returns a random base58 identifier used as `jti` claim.
func NewTokenID() string {
	id := make([]byte, TokenIDLength)
	max := big.NewInt(int64(len(base58)))

	for i := range id {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		id[i] = base58[n.Int64()]
	}

	return string(id)
}
