package solana

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"os"

	"github.com/commitment-parties/agent/src/utils/config"

	"github.com/mr-tron/base58"
)

// Holds the agent's keypair used to sign verification and
// settlement transactions
type Signer struct {
	private ed25519.PrivateKey
	pubkey  Pubkey
}

// Loads the keypair from a solana-keygen style JSON file when KeypairPath
// is set, otherwise from the base58 encoded private key
func NewSigner(config *config.Solana) (self *Signer, err error) {
	self = new(Signer)

	var raw []byte
	switch {
	case config.KeypairPath != "":
		var content []byte
		content, err = os.ReadFile(config.KeypairPath)
		if err != nil {
			return
		}
		err = json.Unmarshal(content, &raw)
		if err != nil {
			return
		}
	case config.PrivateKey != "":
		raw, err = base58.Decode(config.PrivateKey)
		if err != nil {
			return
		}
	default:
		err = errors.New("no keypair configured")
		return
	}

	if len(raw) != ed25519.PrivateKeySize {
		err = errors.New("invalid keypair length")
		return
	}

	self.private = ed25519.PrivateKey(raw)
	copy(self.pubkey[:], self.private.Public().(ed25519.PublicKey))
	return
}

func (self *Signer) Pubkey() Pubkey {
	return self.pubkey
}

func (self *Signer) Sign(message []byte) []byte {
	return ed25519.Sign(self.private, message)
}
