package model

const TableCheckIn = "check_ins"

// Self-reported habit evidence written by the REST layer,
// read by the check-in verifier.
type CheckIn struct {
	Id     int64  `gorm:"primaryKey" json:"id"`
	PoolId uint64 `json:"pool_id"`
	Wallet string `json:"wallet"`

	// 1-based day index
	Day int `json:"day"`

	Success       bool   `json:"success"`
	ScreenshotUrl string `json:"screenshot_url"`

	CreatedAt int64 `json:"created_at"`
}

func (CheckIn) TableName() string {
	return TableCheckIn
}
