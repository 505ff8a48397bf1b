package solana

import (
	"crypto/sha256"
	"encoding/binary"
)

type AccountMeta struct {
	Pubkey     Pubkey
	IsSigner   bool
	IsWritable bool
}

type Instruction struct {
	ProgramId Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// First 8 bytes of sha256("global:<name>"), identifies the program method
func anchorDiscriminator(name string) []byte {
	digest := sha256.Sum256([]byte("global:" + name))
	return digest[:8]
}

// Logs the verification result on-chain for the given participant and day
func NewVerifyParticipantInstruction(programId, pool, participant, authority Pubkey, day uint8, passed bool) Instruction {
	data := anchorDiscriminator("verify_participant")
	data = append(data, day)
	if passed {
		data = append(data, 1)
	} else {
		data = append(data, 0)
	}

	return Instruction{
		ProgramId: programId,
		Accounts: []AccountMeta{
			{Pubkey: pool, IsWritable: true},
			{Pubkey: participant, IsWritable: true},
			{Pubkey: authority, IsSigner: true},
		},
		Data: data,
	}
}

// Marks an ended pool as settled
func NewDistributeRewardsInstruction(programId, pool, vault, authority Pubkey) Instruction {
	return Instruction{
		ProgramId: programId,
		Accounts: []AccountMeta{
			{Pubkey: pool, IsWritable: true},
			{Pubkey: vault, IsWritable: true},
			{Pubkey: authority, IsSigner: true},
			{Pubkey: SystemProgramId},
		},
		Data: anchorDiscriminator("distribute_rewards"),
	}
}

// System program transfer
func NewTransferInstruction(from, to Pubkey, lamports uint64) Instruction {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], 2)
	binary.LittleEndian.PutUint64(data[4:12], lamports)

	return Instruction{
		ProgramId: SystemProgramId,
		Accounts: []AccountMeta{
			{Pubkey: from, IsSigner: true, IsWritable: true},
			{Pubkey: to, IsWritable: true},
		},
		Data: data,
	}
}
