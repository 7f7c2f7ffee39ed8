package models

const (
	AccountTypeTraditional = "TRADITIONAL"
	AccountTypeWallet      = "WALLET"
)

type Account struct {
	BaseModel

	Owner   string  `json:"owner" gorm:"uniqueIndex;size:64"`
	AuthUID *string `json:"auth_uid" gorm:"uniqueIndex;size:128"`
	Type    string  `json:"type" gorm:"size:16"`

	Stations []Station `json:"stations" gorm:"foreignKey:AccountID"`
}
