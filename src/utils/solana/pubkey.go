package solana

import (
	"errors"

	"github.com/mr-tron/base58"
)

type Pubkey [32]byte

var SystemProgramId = MustPubkeyFromBase58("11111111111111111111111111111111")

func PubkeyFromBase58(s string) (self Pubkey, err error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return
	}
	if len(decoded) != 32 {
		err = errors.New("invalid pubkey length")
		return
	}
	copy(self[:], decoded)
	return
}

func MustPubkeyFromBase58(s string) Pubkey {
	self, err := PubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return self
}

func (self Pubkey) String() string {
	return base58.Encode(self[:])
}

func (self Pubkey) Bytes() []byte {
	return self[:]
}
