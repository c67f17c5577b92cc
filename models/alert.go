package models

import "time"

type Alert struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"index" json:"user_id"`
	Type      string `gorm:"size:32" json:"type"` // connection.requested | connection.decided | chat.message | diary.reminder
	Message   string `gorm:"type:text" json:"message"`
	Read      bool   `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
