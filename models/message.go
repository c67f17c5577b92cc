package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatMessage is append-only: rows are never updated after creation and only
// removed by account-deletion cascades.
type ChatMessage struct {
	gorm.Model
	ConnectionID uint      `gorm:"index;not null" json:"connection_id"`
	SenderID     uint      `gorm:"not null" json:"sender_id"`
	Body         string    `gorm:"not null" json:"body"`
	SentAt       time.Time `gorm:"index;not null" json:"sent_at"`
}
