package models

type Tip struct {
	BaseModel

	SenderID   string  `json:"sender_id" gorm:"index;size:36"`
	ReceiverID *string `json:"receiver_id" gorm:"index;size:36"`
	PublishID  *string `json:"publish_id" gorm:"index;size:36"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	Amount     float64 `json:"amount"`
	Fee        float64 `json:"fee"`
}
