package solana

import (
	"encoding/binary"
	"errors"
)

// On-chain enums, borsh variant tags
const (
	GoalTypeDailyDCA uint8 = iota
	GoalTypeHodlToken
	GoalTypeLifestyleHabit
)

const (
	PoolStatusPending uint8 = iota
	PoolStatusActive
	PoolStatusEnded
	PoolStatusSettled
)

const (
	ParticipantStatusActive uint8 = iota
	ParticipantStatusSuccess
	ParticipantStatusFailed
	ParticipantStatusForfeit
)

const (
	DistributionModeCompetitive uint8 = iota
	DistributionModeCharity
	DistributionModeSplit
)

type ChainGoal struct {
	Kind uint8

	// DailyDCA
	Amount uint64

	// DailyDCA, HodlToken
	TokenMint Pubkey

	// HodlToken
	MinBalance uint64

	// LifestyleHabit
	HabitName string
}

type ChainPool struct {
	Authority        Pubkey
	PoolId           uint64
	Goal             ChainGoal
	StakeAmount      uint64
	DurationDays     uint8
	MaxParticipants  uint16
	MinParticipants  uint16
	ParticipantCount uint16
	TotalStaked      uint64
	CharityAddress   Pubkey
	DistributionMode uint8
	WinnerPercent    uint8
	PoolStatus       uint8
	StartTimestamp   int64
	EndTimestamp     int64
	Bump             uint8
}

type ChainParticipant struct {
	Pool          Pubkey
	Wallet        Pubkey
	StakeAmount   uint64
	JoinTimestamp int64
	Status        uint8
	DaysVerified  uint8
	Bump          uint8
}

var ErrAccountTooShort = errors.New("account data too short")

type borshReader struct {
	data []byte
	pos  int
	err  error
}

func (self *borshReader) read(n int) []byte {
	if self.err != nil {
		return nil
	}
	if self.pos+n > len(self.data) {
		self.err = ErrAccountTooShort
		return nil
	}
	out := self.data[self.pos : self.pos+n]
	self.pos += n
	return out
}

func (self *borshReader) u8() uint8 {
	b := self.read(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (self *borshReader) u16() uint16 {
	b := self.read(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (self *borshReader) u64() uint64 {
	b := self.read(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (self *borshReader) i64() int64 {
	return int64(self.u64())
}

func (self *borshReader) pubkey() (out Pubkey) {
	b := self.read(32)
	if b == nil {
		return
	}
	copy(out[:], b)
	return
}

func (self *borshReader) str() string {
	length := self.read(4)
	if length == nil {
		return ""
	}
	b := self.read(int(binary.LittleEndian.Uint32(length)))
	if b == nil {
		return ""
	}
	return string(b)
}

func (self *borshReader) goal() (out ChainGoal) {
	out.Kind = self.u8()
	switch out.Kind {
	case GoalTypeDailyDCA:
		out.Amount = self.u64()
		out.TokenMint = self.pubkey()
	case GoalTypeHodlToken:
		out.TokenMint = self.pubkey()
		out.MinBalance = self.u64()
	case GoalTypeLifestyleHabit:
		out.HabitName = self.str()
	default:
		self.err = errors.New("unknown goal type variant")
	}
	return
}

func DecodePool(data []byte) (out *ChainPool, err error) {
	r := &borshReader{data: data}

	// Skip the account discriminator
	r.read(8)

	out = &ChainPool{
		Authority:        r.pubkey(),
		PoolId:           r.u64(),
		Goal:             r.goal(),
		StakeAmount:      r.u64(),
		DurationDays:     r.u8(),
		MaxParticipants:  r.u16(),
		MinParticipants:  r.u16(),
		ParticipantCount: r.u16(),
		TotalStaked:      r.u64(),
		CharityAddress:   r.pubkey(),
	}

	out.DistributionMode = r.u8()
	if out.DistributionMode == DistributionModeSplit {
		out.WinnerPercent = r.u8()
	}
	out.PoolStatus = r.u8()
	out.StartTimestamp = r.i64()
	out.EndTimestamp = r.i64()
	out.Bump = r.u8()

	if r.err != nil {
		return nil, r.err
	}
	return
}

func DecodeParticipant(data []byte) (out *ChainParticipant, err error) {
	r := &borshReader{data: data}

	// Skip the account discriminator
	r.read(8)

	out = &ChainParticipant{
		Pool:          r.pubkey(),
		Wallet:        r.pubkey(),
		StakeAmount:   r.u64(),
		JoinTimestamp: r.i64(),
		Status:        r.u8(),
		DaysVerified:  r.u8(),
		Bump:          r.u8(),
	}

	if r.err != nil {
		return nil, r.err
	}
	return
}
