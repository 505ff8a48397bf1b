package model

const TableParticipant = "participants"

type ParticipantStatus string

const (
	// Still in the game
	ParticipantStatusActive ParticipantStatus = "active"

	// Missed the goal, stake forfeited on settlement
	ParticipantStatusEliminated ParticipantStatus = "eliminated"

	// Met the goal every day, stake returned
	ParticipantStatusCompleted ParticipantStatus = "completed"

	// Left before the pool ended
	ParticipantStatusForfeited ParticipantStatus = "forfeited"
)

// One wallet's membership in one pool. Created when a join transaction is
// confirmed, never deleted, only superseded in status.
type Participant struct {
	PoolId uint64 `gorm:"primaryKey" json:"pool_id"`
	Wallet string `gorm:"primaryKey" json:"wallet"`

	// Lamports escrowed on-chain
	StakeAmount   int64 `json:"stake_amount"`
	JoinTimestamp int64 `json:"join_timestamp"`

	Status ParticipantStatus `json:"status"`

	// Count of days with a passing verification
	DaysVerified int `json:"days_verified"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

func (Participant) TableName() string {
	return TableParticipant
}
