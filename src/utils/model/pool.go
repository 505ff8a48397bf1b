package model

import (
	"github.com/jackc/pgtype"
)

const TablePool = "pools"

type PoolStatus string

const (
	// Recruiting, waiting for the scheduled start
	PoolStatusPending PoolStatus = "pending"

	// Goal window running, verification eligible
	PoolStatusActive PoolStatus = "active"

	// Goal window closed, settlement not finished
	PoolStatusEnded PoolStatus = "ended"

	// All payouts issued
	PoolStatusSettled PoolStatus = "settled"
)

type GoalFamily string

const (
	// Minimum number of trades per day
	GoalFamilyTrading GoalFamily = "trading_activity"

	// Token balance kept above a threshold
	GoalFamilyBalance GoalFamily = "balance_threshold"

	// Daily habit check-ins
	GoalFamilyCheckin GoalFamily = "habit_checkin"
)

type DistributionMode string

const (
	// Losers' stakes go to winners
	DistributionModeCompetitive DistributionMode = "competitive"

	// Losers' stakes go to charity
	DistributionModeCharity DistributionMode = "charity"

	// Losers' stakes split between winners and charity
	DistributionModeSplit DistributionMode = "split"
)

// Off-chain mirror of an on-chain commitment pool.
// Created once by the REST layer's confirmation path, identified by the
// same pool id as the on-chain account.
type Pool struct {
	PoolId        uint64 `gorm:"primaryKey" json:"pool_id"`
	PoolPubkey    string `json:"pool_pubkey"`
	CreatorWallet string `json:"creator_wallet"`
	Name          string `json:"name"`
	Description   string `json:"description"`

	GoalFamily GoalFamily   `json:"goal_family"`
	GoalParams pgtype.JSONB `json:"goal_params"`

	// Lamports staked by each participant
	StakeAmount      int64 `json:"stake_amount"`
	DurationDays     int   `json:"duration_days"`
	MaxParticipants  int   `json:"max_participants"`
	MinParticipants  int   `json:"min_participants"`
	ParticipantCount int   `json:"participant_count"`

	DistributionMode DistributionMode `json:"distribution_mode"`

	// Percent of the forfeited stakes routed to winners in split mode
	WinnerPercent  int    `json:"winner_percent"`
	CharityAddress string `json:"charity_address"`

	Status PoolStatus `json:"status"`

	// If true the pool won't start until MinParticipants joined
	RequireMinParticipants bool `json:"require_min_participants"`

	// Unix timestamps
	ScheduledStartTime int64 `json:"scheduled_start_time"`
	ActualStartTime    int64 `json:"actual_start_time"`
	EndTimestamp       int64 `json:"end_timestamp"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

func (Pool) TableName() string {
	return TablePool
}

// Day index the pool is currently in, 1-based. 0 before the start.
func (self *Pool) CurrentDay(now int64) int {
	if self.ActualStartTime <= 0 || now < self.ActualStartTime {
		return 0
	}
	day := int((now-self.ActualStartTime)/86400) + 1
	if day > self.DurationDays {
		day = self.DurationDays
	}
	return day
}

// Unix window of the given 1-based day
func (self *Pool) DayWindow(day int) (from, to int64) {
	from = self.ActualStartTime + int64(day-1)*86400
	to = from + 86400
	return
}
