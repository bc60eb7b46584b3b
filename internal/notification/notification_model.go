package notification

import (
	"time"

	"gorm.io/gorm"
)

const (
	TypeInfo    = "info"
	TypeAlert   = "alert"
	TypeSuccess = "success"
	TypeWarning = "warning"
)

// Notification is one in-app message for one recipient. Broadcasts fan out
// to one row per recipient, tied together by a shared BatchID.
type Notification struct {
	gorm.Model
	RecipientID uint    `json:"recipient_id" gorm:"index;not null"`
	SenderID    *uint   `json:"sender_id"`
	Message     string  `json:"message" gorm:"not null"`
	Type        string  `json:"type" gorm:"default:'info'"`
	IsRead      bool    `json:"is_read" gorm:"default:false"`
	BatchID     *string `json:"batch_id" gorm:"index"`
}

// BroadcastSummary is one row of the admin broadcast history: a batch
// collapsed to its shared message plus a recipient count.
type BroadcastSummary struct {
	BatchID         string    `json:"batch_id"`
	Message         string    `json:"message"`
	Type            string    `json:"type"`
	CreatedAt       time.Time `json:"created_at"`
	RecipientsCount int64     `json:"recipients_count"`
}
