package models

import (
	"time"

	"gorm.io/gorm"
)

type ConnectionState string

const (
	StatePending  ConnectionState = "PENDING"
	StateApproved ConnectionState = "APPROVED"
	StateDeclined ConnectionState = "DECLINED"
	StateRevoked  ConnectionState = "REVOKED"
)

// Terminal states never transition again.
func (s ConnectionState) Terminal() bool {
	return s == StateDeclined || s == StateRevoked
}

// Connection links a patient to a specialist. It is a relation row owned by
// neither side alone; at most one Pending/Approved row may exist per pair.
type Connection struct {
	gorm.Model
	PatientID    uint            `gorm:"index;not null" json:"patient_id"`
	SpecialistID uint            `gorm:"index;not null" json:"specialist_id"`
	State        ConnectionState `gorm:"type:varchar(16);not null" json:"state"`
	Comment      string          `json:"comment,omitempty"`
	DecidedAt    *time.Time      `json:"decided_at,omitempty"`
}
