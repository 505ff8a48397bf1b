package solana

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/commitment-parties/agent/src/utils/config"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

var testProgramId = MustPubkeyFromBase58("GSvoKxVHbtAY2mAAU4RM3PVQC3buLSjRm24N7QhAoieH")

func testSigner(t *testing.T) *Signer {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	private := ed25519.NewKeyFromSeed(seed)

	signer, err := NewSigner(&config.Solana{PrivateKey: base58.Encode(private)})
	require.NoError(t, err)
	return signer
}

func TestShortvecEncoding(t *testing.T) {
	require.Equal(t, []byte{0x00}, appendShortvec(nil, 0))
	require.Equal(t, []byte{0x05}, appendShortvec(nil, 5))
	require.Equal(t, []byte{0x7f}, appendShortvec(nil, 0x7f))
	require.Equal(t, []byte{0x80, 0x01}, appendShortvec(nil, 0x80))
	require.Equal(t, []byte{0xff, 0x7f}, appendShortvec(nil, 0x3fff))
	require.Equal(t, []byte{0x80, 0x80, 0x01}, appendShortvec(nil, 0x4000))
}

func TestAnchorDiscriminator(t *testing.T) {
	verify := anchorDiscriminator("verify_participant")
	distribute := anchorDiscriminator("distribute_rewards")

	require.Len(t, verify, 8)
	require.Len(t, distribute, 8)
	require.NotEqual(t, verify, distribute)
	require.Equal(t, verify, anchorDiscriminator("verify_participant"))
}

func TestVerifyParticipantInstructionData(t *testing.T) {
	pool := MustPubkeyFromBase58("So11111111111111111111111111111111111111112")
	instruction := NewVerifyParticipantInstruction(testProgramId, pool, pool, pool, 3, true)

	require.Equal(t, anchorDiscriminator("verify_participant"), instruction.Data[:8])
	require.Equal(t, byte(3), instruction.Data[8])
	require.Equal(t, byte(1), instruction.Data[9])

	failed := NewVerifyParticipantInstruction(testProgramId, pool, pool, pool, 3, false)
	require.Equal(t, byte(0), failed.Data[9])
}

func TestTransferInstructionData(t *testing.T) {
	from := testSigner(t).Pubkey()
	to := MustPubkeyFromBase58("So11111111111111111111111111111111111111112")

	instruction := NewTransferInstruction(from, to, 123456789)

	require.Equal(t, SystemProgramId, instruction.ProgramId)
	require.Len(t, instruction.Data, 12)
	require.Equal(t, uint32(2), binary.LittleEndian.Uint32(instruction.Data[0:4]))
	require.Equal(t, uint64(123456789), binary.LittleEndian.Uint64(instruction.Data[4:12]))
	require.True(t, instruction.Accounts[0].IsSigner)
	require.True(t, instruction.Accounts[0].IsWritable)
	require.False(t, instruction.Accounts[1].IsSigner)
}

func TestPdaDerivationIsDeterministic(t *testing.T) {
	first, firstBump, err := PoolAddress(testProgramId, 42)
	require.NoError(t, err)

	second, secondBump, err := PoolAddress(testProgramId, 42)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, firstBump, secondBump)

	other, _, err := PoolAddress(testProgramId, 43)
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func TestPdaBumpReproducesAddress(t *testing.T) {
	idBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(idBytes, 42)

	derived, bump, err := PoolAddress(testProgramId, 42)
	require.NoError(t, err)

	recreated, err := createProgramAddress([][]byte{[]byte("pool"), idBytes, {bump}}, testProgramId)
	require.NoError(t, err)
	require.Equal(t, derived, recreated)
	require.False(t, isOnCurve(derived[:]))
}

func TestParticipantAndVaultAddressesDiffer(t *testing.T) {
	pool, _, err := PoolAddress(testProgramId, 1)
	require.NoError(t, err)

	wallet := MustPubkeyFromBase58("So11111111111111111111111111111111111111112")

	participant, _, err := ParticipantAddress(testProgramId, pool, wallet)
	require.NoError(t, err)

	vault, _, err := VaultAddress(testProgramId, pool)
	require.NoError(t, err)

	require.NotEqual(t, participant, vault)
	require.NotEqual(t, participant, pool)
}

func encodePoolAccount(winnerPercent bool) []byte {
	buf := make([]byte, 8)

	authority := MustPubkeyFromBase58("So11111111111111111111111111111111111111112")
	charity := MustPubkeyFromBase58("SysvarRent111111111111111111111111111111111")

	buf = append(buf, authority[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, 7)

	// LifestyleHabit goal
	buf = append(buf, GoalTypeLifestyleHabit)
	buf = binary.LittleEndian.AppendUint32(buf, 4)
	buf = append(buf, []byte("yoga")...)

	buf = binary.LittleEndian.AppendUint64(buf, 1_000_000)
	buf = append(buf, 30)
	buf = binary.LittleEndian.AppendUint16(buf, 100)
	buf = binary.LittleEndian.AppendUint16(buf, 2)
	buf = binary.LittleEndian.AppendUint16(buf, 5)
	buf = binary.LittleEndian.AppendUint64(buf, 5_000_000)
	buf = append(buf, charity[:]...)

	if winnerPercent {
		buf = append(buf, DistributionModeSplit, 60)
	} else {
		buf = append(buf, DistributionModeCompetitive)
	}

	buf = append(buf, PoolStatusActive)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(1700000000))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(1702592000))
	buf = append(buf, 254)
	return buf
}

func TestDecodePool(t *testing.T) {
	pool, err := DecodePool(encodePoolAccount(false))
	require.NoError(t, err)

	require.Equal(t, uint64(7), pool.PoolId)
	require.Equal(t, GoalTypeLifestyleHabit, pool.Goal.Kind)
	require.Equal(t, "yoga", pool.Goal.HabitName)
	require.Equal(t, uint64(1_000_000), pool.StakeAmount)
	require.Equal(t, uint8(30), pool.DurationDays)
	require.Equal(t, uint16(100), pool.MaxParticipants)
	require.Equal(t, uint16(5), pool.ParticipantCount)
	require.Equal(t, uint64(5_000_000), pool.TotalStaked)
	require.Equal(t, DistributionModeCompetitive, pool.DistributionMode)
	require.Equal(t, PoolStatusActive, pool.PoolStatus)
	require.Equal(t, int64(1700000000), pool.StartTimestamp)
	require.Equal(t, uint8(254), pool.Bump)
}

func TestDecodePoolSplitModeReadsWinnerPercent(t *testing.T) {
	pool, err := DecodePool(encodePoolAccount(true))
	require.NoError(t, err)

	require.Equal(t, DistributionModeSplit, pool.DistributionMode)
	require.Equal(t, uint8(60), pool.WinnerPercent)
	require.Equal(t, PoolStatusActive, pool.PoolStatus)
	require.Equal(t, uint8(254), pool.Bump)
}

func TestDecodePoolTooShort(t *testing.T) {
	_, err := DecodePool(encodePoolAccount(false)[:40])
	require.ErrorIs(t, err, ErrAccountTooShort)
}

func TestDecodeParticipant(t *testing.T) {
	pool := MustPubkeyFromBase58("So11111111111111111111111111111111111111112")
	wallet := MustPubkeyFromBase58("SysvarRent111111111111111111111111111111111")

	buf := make([]byte, 8)
	buf = append(buf, pool[:]...)
	buf = append(buf, wallet[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, 1_000_000)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(1700000000))
	buf = append(buf, ParticipantStatusActive, 12, 253)

	participant, err := DecodeParticipant(buf)
	require.NoError(t, err)

	require.Equal(t, pool, participant.Pool)
	require.Equal(t, wallet, participant.Wallet)
	require.Equal(t, uint64(1_000_000), participant.StakeAmount)
	require.Equal(t, int64(1700000000), participant.JoinTimestamp)
	require.Equal(t, ParticipantStatusActive, participant.Status)
	require.Equal(t, uint8(12), participant.DaysVerified)
	require.Equal(t, uint8(253), participant.Bump)
}

func TestBuildTransaction(t *testing.T) {
	signer := testSigner(t)
	to := MustPubkeyFromBase58("So11111111111111111111111111111111111111112")
	blockhash := base58.Encode(make([]byte, 32))

	instruction := NewTransferInstruction(signer.Pubkey(), to, 1000)
	txBase64, signature, err := BuildTransaction([]Instruction{instruction}, blockhash, signer)
	require.NoError(t, err)

	tx, err := base64.StdEncoding.DecodeString(txBase64)
	require.NoError(t, err)

	// One signature, then the message
	require.Equal(t, byte(1), tx[0])
	sig := tx[1:65]
	message := tx[65:]

	decodedSig, err := base58.Decode(signature)
	require.NoError(t, err)
	require.Equal(t, sig, decodedSig)

	pubkey := signer.Pubkey()
	require.True(t, ed25519.Verify(pubkey[:], message, sig))

	// Header: 1 required signature, 0 readonly signed, 1 readonly unsigned
	// (the system program)
	require.Equal(t, byte(1), message[0])
	require.Equal(t, byte(0), message[1])
	require.Equal(t, byte(1), message[2])

	// 3 account keys, fee payer first
	require.Equal(t, byte(3), message[3])
	require.Equal(t, pubkey[:], message[4:36])
}

func TestBuildTransactionRejectsExtraSigners(t *testing.T) {
	signer := testSigner(t)
	other := MustPubkeyFromBase58("So11111111111111111111111111111111111111112")
	blockhash := base58.Encode(make([]byte, 32))

	instruction := NewTransferInstruction(other, signer.Pubkey(), 1000)
	_, _, err := BuildTransaction([]Instruction{instruction}, blockhash, signer)
	require.Error(t, err)
}

func TestBuildTransactionRejectsEmptyInstructions(t *testing.T) {
	signer := testSigner(t)
	_, _, err := BuildTransaction(nil, base58.Encode(make([]byte, 32)), signer)
	require.Error(t, err)
}
