package solana

import (
	"encoding/base64"
	"errors"

	"github.com/mr-tron/base58"
)

// Compact-u16 length used by the wire format
func appendShortvec(buf []byte, n int) []byte {
	for {
		if n < 0x80 {
			return append(buf, byte(n))
		}
		buf = append(buf, byte(n&0x7f)|0x80)
		n >>= 7
	}
}

type compiledKey struct {
	pubkey     Pubkey
	isSigner   bool
	isWritable bool
}

// Builds, signs and serializes a legacy transaction with the signer
// as the fee payer. Returns the base64 payload for sendTransaction and the
// base58 signature.
func BuildTransaction(instructions []Instruction, blockhash string, signer *Signer) (txBase64, signature string, err error) {
	if len(instructions) == 0 {
		err = errors.New("no instructions")
		return
	}

	// Gather unique account keys with merged flags
	feePayer := signer.Pubkey()
	keys := []compiledKey{{pubkey: feePayer, isSigner: true, isWritable: true}}
	index := map[Pubkey]int{feePayer: 0}

	upsert := func(pubkey Pubkey, isSigner, isWritable bool) {
		i, ok := index[pubkey]
		if !ok {
			index[pubkey] = len(keys)
			keys = append(keys, compiledKey{pubkey: pubkey, isSigner: isSigner, isWritable: isWritable})
			return
		}
		keys[i].isSigner = keys[i].isSigner || isSigner
		keys[i].isWritable = keys[i].isWritable || isWritable
	}

	for _, instruction := range instructions {
		for _, account := range instruction.Accounts {
			upsert(account.Pubkey, account.IsSigner, account.IsWritable)
		}
		upsert(instruction.ProgramId, false, false)
	}

	// Wire format order: writable signers, readonly signers,
	// writable non-signers, readonly non-signers
	ordered := make([]compiledKey, 0, len(keys))
	appendMatching := func(isSigner, isWritable bool) {
		for _, key := range keys {
			if key.isSigner == isSigner && key.isWritable == isWritable {
				ordered = append(ordered, key)
			}
		}
	}
	appendMatching(true, true)
	appendMatching(true, false)
	appendMatching(false, true)
	appendMatching(false, false)

	for i, key := range ordered {
		index[key.pubkey] = i
	}

	var numRequiredSignatures, numReadonlySigned, numReadonlyUnsigned int
	for _, key := range ordered {
		if key.isSigner {
			numRequiredSignatures++
			if !key.isWritable {
				numReadonlySigned++
			}
		} else if !key.isWritable {
			numReadonlyUnsigned++
		}
	}
	if numRequiredSignatures != 1 {
		err = errors.New("transaction requires more signers than the agent keypair")
		return
	}

	blockhashBytes, err := base58.Decode(blockhash)
	if err != nil {
		return
	}
	if len(blockhashBytes) != 32 {
		err = errors.New("invalid blockhash length")
		return
	}

	// Message
	message := []byte{byte(numRequiredSignatures), byte(numReadonlySigned), byte(numReadonlyUnsigned)}
	message = appendShortvec(message, len(ordered))
	for _, key := range ordered {
		message = append(message, key.pubkey[:]...)
	}
	message = append(message, blockhashBytes...)
	message = appendShortvec(message, len(instructions))
	for _, instruction := range instructions {
		message = append(message, byte(index[instruction.ProgramId]))
		message = appendShortvec(message, len(instruction.Accounts))
		for _, account := range instruction.Accounts {
			message = append(message, byte(index[account.Pubkey]))
		}
		message = appendShortvec(message, len(instruction.Data))
		message = append(message, instruction.Data...)
	}

	sig := signer.Sign(message)

	tx := appendShortvec(nil, 1)
	tx = append(tx, sig...)
	tx = append(tx, message...)

	txBase64 = base64.StdEncoding.EncodeToString(tx)
	signature = base58.Encode(sig)
	return
}
