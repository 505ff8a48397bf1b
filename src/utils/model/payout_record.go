package model

const TablePayoutRecord = "payout_records"

type PayoutKind string

const (
	// Winner's own stake coming back
	PayoutKindStakeReturn PayoutKind = "stake_return"

	// Winner's share of the forfeited stakes
	PayoutKindWinnings PayoutKind = "winnings"

	// Forfeited stakes routed to the charity address
	PayoutKindCharity PayoutKind = "charity"
)

// One settlement transfer. The unique index on (pool_id, destination) is the
// distributor's idempotency check - a destination that already has a record
// is never paid again.
type PayoutRecord struct {
	Id     int64  `gorm:"primaryKey" json:"id"`
	PoolId uint64 `json:"pool_id"`

	// Wallet the lamports were sent to
	Destination string `json:"destination"`

	// Lamports transferred
	Amount int64 `json:"amount"`

	Kind PayoutKind `json:"kind"`

	TxSignature string `json:"tx_signature"`

	CreatedAt int64 `json:"created_at"`
}

func (PayoutRecord) TableName() string {
	return TablePayoutRecord
}
