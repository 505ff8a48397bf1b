package model

const TableUser = "users"

// Wallet owner profile written by the REST layer. The verified GitHub
// username is required by the commit habit verifier.
type User struct {
	Wallet         string `gorm:"primaryKey" json:"wallet"`
	GithubUsername string `json:"github_username"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

func (User) TableName() string {
	return TableUser
}
