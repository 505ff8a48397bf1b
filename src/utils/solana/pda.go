package solana

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"filippo.io/edwards25519"
)

var pdaMarker = []byte("ProgramDerivedAddress")

func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

func createProgramAddress(seeds [][]byte, programId Pubkey) (out Pubkey, err error) {
	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(programId[:])
	h.Write(pdaMarker)
	digest := h.Sum(nil)

	if isOnCurve(digest) {
		err = errors.New("derived address is on the curve")
		return
	}

	copy(out[:], digest)
	return
}

// Derives a program address by searching for the highest bump
// that lands off the curve
func FindProgramAddress(seeds [][]byte, programId Pubkey) (out Pubkey, bump uint8, err error) {
	for i := 255; i >= 0; i-- {
		bump = uint8(i)
		out, err = createProgramAddress(append(seeds, []byte{bump}), programId)
		if err == nil {
			return
		}
	}
	err = errors.New("could not find a program address")
	return
}

// PDA of the pool account, seeds: "pool" + pool id little endian
func PoolAddress(programId Pubkey, poolId uint64) (Pubkey, uint8, error) {
	idBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(idBytes, poolId)
	return FindProgramAddress([][]byte{[]byte("pool"), idBytes}, programId)
}

// PDA of the participant account, seeds: "participant" + pool + wallet
func ParticipantAddress(programId, pool, wallet Pubkey) (Pubkey, uint8, error) {
	return FindProgramAddress([][]byte{[]byte("participant"), pool[:], wallet[:]}, programId)
}

// PDA of the vault holding the staked lamports, seeds: "vault" + pool
func VaultAddress(programId, pool Pubkey) (Pubkey, uint8, error) {
	return FindProgramAddress([][]byte{[]byte("vault"), pool[:]}, programId)
}
