package model

const TableVerificationRecord = "verification_records"

// Immutable evidence for one (pool, participant, day) triple.
// The unique index on that triple is the monitor's de-duplication boundary.
type VerificationRecord struct {
	Id     int64  `gorm:"primaryKey" json:"id"`
	PoolId uint64 `json:"pool_id"`
	Wallet string `json:"wallet"`

	// 1-based day index
	Day int `json:"day"`

	GoalFamily GoalFamily `json:"goal_family"`
	Passed     bool       `json:"passed"`

	// Transaction signature, balance snapshot, check-in id etc.
	Evidence string `json:"evidence"`

	// Signature of the on-chain verify_participant transaction,
	// empty when the flag was already set on-chain and only backfilled here
	TxSignature string `json:"tx_signature"`

	CreatedAt int64 `json:"created_at"`
}

func (VerificationRecord) TableName() string {
	return TableVerificationRecord
}
